package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Ledger errors
var (
	ErrAmountNegative          = errors.New("amounts must not be negative")
	ErrPlanEntryCountInvalid   = errors.New("a disbursement plan update must contain exactly the twelve monthly entries of the allocation")
	ErrPlanEntryNotInPlan      = errors.New("a submitted plan entry does not belong to the allocation")
	ErrPlanTotalsMismatch      = errors.New("the submitted category totals do not match the sum of the monthly entries")
	ErrPlanMonthNotUnique      = errors.New("you can not create multiple plan entries for the same allocation and month")
	ErrRealizationNotUnique    = errors.New("a realization record for this sub-activity, agency and year already exists")
	ErrRealizationMonthInvalid = errors.New("the month must be between 1 and 12")
)

// Reference data errors
var (
	ErrFiscalYearNotUnique = errors.New("this fiscal year already exists")
	ErrAgencyNameNotUnique = errors.New("this agency name is already in use")
)
