package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every input error the planner reports.
var ErrValidation = errors.New("validation error")

var (
	ErrInvalidHoursPerDay = fmt.Errorf("%w: available hours per day must be greater than 0", ErrValidation)
	ErrTooManyHoursPerDay = fmt.Errorf("%w: available hours per day cannot exceed 24", ErrValidation)
	ErrMissingDates       = fmt.Errorf("%w: start date and end date are required", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: invalid date, expected YYYY-MM-DD", ErrValidation)
	ErrStartAfterEnd      = fmt.Errorf("%w: start date must be before or equal to end date", ErrValidation)
	ErrRangeTooLong       = fmt.Errorf("%w: date range cannot exceed %d days", ErrValidation, MaxPlanDays)
	ErrNoItems            = fmt.Errorf("%w: no assignments or exams to schedule", ErrValidation)
)

var (
	// ErrMalformedRecord marks a source record that cannot become a schedulable item.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrPlanNotFound is returned when no plan has been stored.
	ErrPlanNotFound = errors.New("plan not found")
)

// MaxPlanDays bounds the length of a generated plan.
const MaxPlanDays = 366

// MaxHoursPerDay bounds the daily study budget.
const MaxHoursPerDay = 24

// IsValidationError reports whether err was caused by invalid planner input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
