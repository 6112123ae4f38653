package response

import (
	"errors"
	"net/http"

	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/domain/auth"
	"github.com/workpulse/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Supplementary day errors
	case errors.Is(err, supplementary.ErrNotFound):
		NotFound(w, "Supplementary day not found")
	case errors.Is(err, supplementary.ErrNotPending):
		Conflict(w, "Supplementary day is not pending")
	case errors.Is(err, supplementary.ErrNotApproved):
		Conflict(w, "Supplementary day is not approved")
	case errors.Is(err, supplementary.ErrNotRejected):
		Conflict(w, "Supplementary day is not rejected")
	case errors.Is(err, supplementary.ErrAlreadyConverted):
		Conflict(w, "Supplementary day already converted to recovery")
	case errors.Is(err, supplementary.ErrDeleteNotPending):
		Conflict(w, "Only pending supplementary days can be deleted")
	case errors.Is(err, supplementary.ErrDuplicateForDate):
		Conflict(w, "A supplementary day already exists for this date")
	case errors.Is(err, supplementary.ErrReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)
	case errors.Is(err, supplementary.ErrNotSupplementary):
		BadRequest(w, "Date is not a weekend or holiday", nil)
	case errors.Is(err, supplementary.ErrNothingToConvert):
		BadRequest(w, "No approved hours available to convert", nil)
	case errors.Is(err, supplementary.ErrInsufficientBalance):
		BadRequest(w, "Requested days exceed the available balance", nil)
	case errors.Is(err, supplementary.ErrInvalidDayGranularity):
		BadRequest(w, "Days must be a positive multiple of 0.5", nil)
	case errors.Is(err, supplementary.ErrRecordNotConvertible):
		Conflict(w, "One or more records are not convertible")

	// Attendance errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No open clock-in found")
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Clock event not found")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
