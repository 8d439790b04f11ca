package services

import (
	"fmt"
	"math"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

const (
	// MaxItemHours caps the effort any single item may carry after adjustment.
	MaxItemHours = 8.0
	// MinItemHours is the floor applied before chapter and score refinements.
	MinItemHours = 1.0
)

// rule is one step of the adjustment sequence. It returns the log text and
// whether it fired. The item it receives is already a private copy.
type rule struct {
	number int
	apply  func(item *domain.SchedulableItem, days int) (string, bool)
}

// RulesEngine adjusts item hours and priority through a fixed, ordered rule list.
type RulesEngine struct {
	clock domain.Clock
	rules []rule
}

// NewRulesEngine creates a rules engine that measures deadlines from clock's current day.
func NewRulesEngine(clock domain.Clock) *RulesEngine {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &RulesEngine{clock: clock, rules: defaultRules()}
}

// ApplyRules runs every rule over every item. The input slice is not modified.
// The log lists fired rules item by item, in rule order.
func (e *RulesEngine) ApplyRules(items []domain.SchedulableItem) ([]domain.SchedulableItem, []string) {
	today := domain.CivilDate(e.clock())
	out := domain.CloneItems(items)
	var log []string

	for idx := range out {
		item := &out[idx]
		for _, r := range e.rules {
			days := item.DaysUntilDeadline(today)
			if msg, fired := r.apply(item, days); fired {
				log = append(log, fmt.Sprintf("Rule %d: %s - %s", r.number, item.Name, msg))
			}
		}
	}
	return out, log
}

// Today returns the date the engine measures deadlines from.
func (e *RulesEngine) Today() time.Time {
	return domain.CivilDate(e.clock())
}

func defaultRules() []rule {
	return []rule{
		{1, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if item.Signals.Difficulty != domain.DifficultyHard {
				return "", false
			}
			item.Hours += 2
			return "Hard difficulty: +2 hours", true
		}},
		{2, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if item.Signals.Difficulty != domain.DifficultyMedium {
				return "", false
			}
			item.Hours++
			return "Medium difficulty: +1 hour", true
		}},
		{3, func(item *domain.SchedulableItem, days int) (string, bool) {
			if !item.Deadline.IsParsed() || days > 3 {
				return "", false
			}
			item.Priority = domain.PriorityUrgent
			return fmt.Sprintf("Deadline in %d days: Priority set to urgent", days), true
		}},
		{4, func(item *domain.SchedulableItem, days int) (string, bool) {
			if !item.Deadline.IsParsed() || days <= 3 || days > 7 {
				return "", false
			}
			item.Priority = domain.PriorityHigh
			return fmt.Sprintf("Deadline in %d days: Priority set to high", days), true
		}},
		{5, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if !item.Signals.HasPastScore || item.Signals.PastScore >= 40 {
				return "", false
			}
			item.Hours += 2
			return fmt.Sprintf("Low past score (%g): +2 hours", item.Signals.PastScore), true
		}},
		{6, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if !item.Signals.HasPastScore || item.Signals.PastScore <= 75 {
				return "", false
			}
			item.Hours = math.Max(MinItemHours, item.Hours-1)
			return fmt.Sprintf("High past score (%g): -1 hour", item.Signals.PastScore), true
		}},
		{7, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if !item.Signals.HasAssignment || !item.Signals.HasExam {
				return "", false
			}
			item.Hours++
			return "Has both assignment and exam: +1 hour", true
		}},
		{8, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if !item.Signals.HasPriorHours || item.Signals.PriorHours >= 2 {
				return "", false
			}
			item.Hours++
			return fmt.Sprintf("Low study time last week (%gh): +1 hour", item.Signals.PriorHours), true
		}},
		{9, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if item.Hours >= MinItemHours {
				return "", false
			}
			item.Hours = MinItemHours
			return "Minimum 1 hour per week enforced", true
		}},
		{10, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if item.Signals.Chapters <= 10 {
				return "", false
			}
			item.Hours++
			return fmt.Sprintf("Many chapters (%d): +1 hour", item.Signals.Chapters), true
		}},
		{11, func(item *domain.SchedulableItem, _ int) (string, bool) {
			s := item.Signals
			if s.Difficulty != domain.DifficultyEasy || !s.HasPastScore || s.PastScore <= 70 {
				return "", false
			}
			item.Hours = math.Max(MinItemHours, item.Hours-0.5)
			return "Easy subject with good score: -0.5 hours", true
		}},
		{12, func(item *domain.SchedulableItem, _ int) (string, bool) {
			s := item.Signals
			if s.Difficulty != domain.DifficultyHard || !s.HasPastScore || s.PastScore >= 50 {
				return "", false
			}
			item.Hours += 3
			return "Hard subject with low score: +3 hours", true
		}},
		{13, func(item *domain.SchedulableItem, days int) (string, bool) {
			if !item.Deadline.IsSet() || days <= 30 {
				return "", false
			}
			item.Priority = domain.PriorityLow
			return fmt.Sprintf("Deadline far away (%d days): Priority set to low", days), true
		}},
		{14, func(item *domain.SchedulableItem, days int) (string, bool) {
			if item.Priority.IsSet() {
				return "", false
			}
			item.Priority = PriorityForDays(days)
			return fmt.Sprintf("Priority derived from deadline: %s", item.Priority), true
		}},
		{15, func(item *domain.SchedulableItem, _ int) (string, bool) {
			if item.Hours <= MaxItemHours {
				return "", false
			}
			item.Hours = MaxItemHours
			return "Capped at 8 hours max", true
		}},
	}
}

// PriorityForDays maps a deadline distance onto a priority using the rule thresholds.
func PriorityForDays(days int) domain.Priority {
	switch {
	case days <= 3:
		return domain.PriorityUrgent
	case days <= 7:
		return domain.PriorityHigh
	case days > 30:
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}
