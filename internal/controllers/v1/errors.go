package v1

import (
	"errors"
	"net/http"

	"github.com/pesibar-dev/sikera-backend/internal/models"
	"gorm.io/gorm"
)

type httpError struct {
	Error string `json:"error" example:"an ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// errorString returns a pointer to the error message, as used in response
// bodies.
func errorString(err error) *string {
	s := err.Error()
	return &s
}

var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
	errYearNotSetInQuery   = errors.New("the year query parameter must be set")
	errAllocationHasSubs   = errors.New("an allocation can not be deleted while sub-activity allocations reference it")
	errSignatoryRole       = errors.New("the signatory role must be 'user' or 'signer'")
)
