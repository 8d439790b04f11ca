package domain

import "errors"

var (
	ErrNameRequired      = errors.New("name is required")
	ErrNegativeHours     = errors.New("hours cannot be negative")
	ErrInvalidPastScore  = errors.New("past score must be between 0 and 100")
	ErrNegativeChapters  = errors.New("chapters cannot be negative")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or hard")
	ErrInvalidPriority   = errors.New("priority must be urgent, high, medium or low")
	ErrInvalidStatus     = errors.New("status must be pending or completed")
	ErrAlreadyCompleted  = errors.New("assignment is already completed")

	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrExamNotFound       = errors.New("exam not found")
	ErrSubjectNotFound    = errors.New("subject not found")
)

// IsNotFound reports whether err is one of the record-not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrSubjectNotFound)
}
