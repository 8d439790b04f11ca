package domain

import (
	"context"
	"time"
)

// PlanRepository stores the flattened slots of the current plan.
type PlanRepository interface {
	// ReplaceAll removes every stored slot and inserts the given ones.
	ReplaceAll(ctx context.Context, slots []PlanSlot) error

	// DeleteAll removes every stored slot and reports how many were removed.
	DeleteAll(ctx context.Context) (int, error)

	// FindAll returns stored slots ordered by date and time slot.
	FindAll(ctx context.Context) ([]PlanSlot, error)

	// FindByDateRange returns slots whose date lies in [from, to].
	FindByDateRange(ctx context.Context, from, to time.Time) ([]PlanSlot, error)
}

// CourseworkReader supplies the records a planning run starts from.
type CourseworkReader interface {
	// PendingAssignments returns assignments that are not yet completed.
	PendingAssignments(ctx context.Context) ([]AssignmentRecord, error)
	Exams(ctx context.Context) ([]ExamRecord, error)
	Subjects(ctx context.Context) ([]SubjectRecord, error)
}

// SubjectDirectory resolves the subject name of a planned item.
type SubjectDirectory interface {
	// SubjectNames maps SubjectKey(category, id) to the current subject name.
	SubjectNames(ctx context.Context) (map[string]string, error)
}

// SubjectKey identifies an item across categories.
func SubjectKey(category Category, itemID string) string {
	return category.String() + ":" + itemID
}

// PlanCache holds rendered plan views until the plan changes.
type PlanCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Invalidate(ctx context.Context) error
}

// CalendarSyncReport counts the outcome of pushing a plan to a calendar.
type CalendarSyncReport struct {
	Created int
	Updated int
	Deleted int
	Failed  int
}

// CalendarSyncer mirrors stored plan slots into an external calendar.
type CalendarSyncer interface {
	Sync(ctx context.Context, slots []PlanSlot) (CalendarSyncReport, error)
}
