package supplementary

import "errors"

// Supplementary day domain errors
var (
	ErrNotFound = errors.New("supplementary day record not found")

	// State machine errors
	ErrNotPending         = errors.New("supplementary day is not pending")
	ErrNotApproved        = errors.New("supplementary day is not approved")
	ErrNotRejected        = errors.New("supplementary day is not rejected")
	ErrAlreadyConverted   = errors.New("supplementary day has already been converted to recovery")
	ErrDeleteNotPending   = errors.New("only pending supplementary days can be deleted")
	ErrReasonRequired     = errors.New("a rejection reason is required")
	ErrDuplicateForDate   = errors.New("a supplementary day already exists for this employee and date")
	ErrNotSupplementary   = errors.New("date is not a weekend or public holiday")

	// Conversion errors
	ErrNothingToConvert     = errors.New("no records selected for conversion")
	ErrInsufficientBalance  = errors.New("selected records do not cover the requested recovery days")
	ErrInvalidDayGranularity = errors.New("recovery days must be a positive multiple of 0.5")
	ErrRecordNotConvertible = errors.New("only approved, unconverted records can be converted")
)
