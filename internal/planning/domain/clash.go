package domain

// ClashScope tells whether the two clashing items share a category.
type ClashScope int

const (
	ClashSameCategory ClashScope = iota + 1
	ClashCrossCategory
)

func (s ClashScope) String() string {
	switch s {
	case ClashSameCategory:
		return "same-category"
	case ClashCrossCategory:
		return "cross-category"
	default:
		return "unknown"
	}
}

// ClashSeverity separates exact collisions from near misses.
type ClashSeverity int

const (
	// ClashConflict is two deadlines on the same date.
	ClashConflict ClashSeverity = iota + 1
	// ClashWarning is two deadlines one day apart.
	ClashWarning
)

func (s ClashSeverity) String() string {
	switch s {
	case ClashConflict:
		return "conflict"
	case ClashWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ClashWindowDays is the largest deadline gap still treated as a clash.
const ClashWindowDays = 1

// Clash is a pair of items whose deadlines collide.
// For cross-category clashes First is the assignment and Second the exam.
type Clash struct {
	Scope     ClashScope
	Severity  ClashSeverity
	First     SchedulableItem
	Second    SchedulableItem
	DaysApart int
}

// Kind names the category pairing, e.g. "exam-exam" or "assignment-exam".
func (c Clash) Kind() string {
	return c.First.Category.String() + "-" + c.Second.Category.String()
}

// ItemIDs returns the ids of both items in clash order.
func (c Clash) ItemIDs() []string {
	return []string{c.First.ID, c.Second.ID}
}

// SameDate reports whether both deadlines fall on the same day.
func (c Clash) SameDate() bool {
	return c.Severity == ClashConflict
}
