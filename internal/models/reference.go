package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agency represents an organizational unit (dinas) that owns budget documents.
type Agency struct {
	DefaultModel
	Name string `json:"name" gorm:"uniqueIndex"`
	Note string `json:"note"`
}

func (a *Agency) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)
	return nil
}

// FiscalYear is a reference record for a year that has at least one budget
// document. It is created automatically when the first allocation for the
// year is submitted.
type FiscalYear struct {
	DefaultModel
	Year uint `json:"year" gorm:"uniqueIndex"`
}

// FundingSource represents a funding source (sumber dana) for sub-activity
// allocations.
type FundingSource struct {
	DefaultModel
	Name string `json:"name"`
}

func (f *FundingSource) BeforeSave(_ *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)
	return nil
}

// Activity is a work activity (kegiatan) in the government program structure.
type Activity struct {
	DefaultModel
	Code string `json:"code"`
	Name string `json:"name"`
}

// SubActivity is a funded work item (sub kegiatan) under an activity. It is
// the target that realization records track actual spend against.
type SubActivity struct {
	DefaultModel
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	ActivityID uuid.UUID `json:"activityId"`
	Activity   Activity  `json:"-"`
}

// SignatoryRole discriminates the two signatory lists of a budget document.
type SignatoryRole string

const (
	// SignatoryRoleUser is a budget user (pengguna anggaran).
	SignatoryRoleUser SignatoryRole = "user"
	// SignatoryRoleSigner signs the budget document (penandatangan).
	SignatoryRoleSigner SignatoryRole = "signer"
)

// Signatory is a person attached to a budget document, either as budget user
// or as document signer.
type Signatory struct {
	DefaultModel
	AllocationID uuid.UUID     `json:"allocationId"`
	Allocation   Allocation    `json:"-"`
	Role         SignatoryRole `json:"role"`
	Name         string        `json:"name"`
	NIP          string        `json:"nip"`
	Position     string        `json:"position"`
}
