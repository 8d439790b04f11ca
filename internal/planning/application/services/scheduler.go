package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// hoursEpsilon absorbs floating point drift when comparing hour totals.
const hoursEpsilon = 1e-9

const hoursInDay = 24

// PlanRequest carries the time budget for one run.
type PlanRequest struct {
	HoursPerDay float64
	StartDate   string
	EndDate     string
}

// PlanInput is the snapshot of source records to schedule.
type PlanInput struct {
	Assignments []domain.AssignmentRecord
	Exams       []domain.ExamRecord
	Subjects    []domain.SubjectRecord
}

// SchedulerConfig contains configuration for the scheduler.
type SchedulerConfig struct {
	FirstSlotHour int
}

// DefaultSchedulerConfig returns a default configuration.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{FirstSlotHour: 9}
}

// Scheduler turns source records into a day-by-day plan.
type Scheduler struct {
	config  SchedulerConfig
	rules   *RulesEngine
	clashes *ClashDetector
	logger  *slog.Logger
}

// NewScheduler creates a scheduler. Nil collaborators fall back to defaults.
func NewScheduler(config SchedulerConfig, rules *RulesEngine, clashes *ClashDetector, logger *slog.Logger) *Scheduler {
	if rules == nil {
		rules = NewRulesEngine(nil)
	}
	if clashes == nil {
		clashes = NewClashDetector()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{config: config, rules: rules, clashes: clashes, logger: logger}
}

// Normalize converts source records into schedulable items. Records that cannot be
// converted are skipped and logged.
func (s *Scheduler) Normalize(input PlanInput) []domain.SchedulableItem {
	items := make([]domain.SchedulableItem, 0, len(input.Assignments)+len(input.Exams)+len(input.Subjects))
	skip := func(err error) {
		s.logger.Warn("skipping record", "error", err)
	}

	for _, r := range input.Assignments {
		item, err := domain.FromAssignment(r)
		if err != nil {
			skip(err)
			continue
		}
		items = append(items, item)
	}
	for _, r := range input.Exams {
		item, err := domain.FromExam(r)
		if err != nil {
			skip(err)
			continue
		}
		items = append(items, item)
	}
	for _, r := range input.Subjects {
		item, err := domain.FromSubject(r)
		if err != nil {
			skip(err)
			continue
		}
		items = append(items, item)
	}
	return domain.LinkPendingWork(items)
}

// GeneratePlan validates the request, adjusts the items and allocates them into daily slots.
func (s *Scheduler) GeneratePlan(input PlanInput, req PlanRequest) (domain.Plan, error) {
	if err := validateRequest(req); err != nil {
		return domain.Plan{}, err
	}
	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return domain.Plan{}, err
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return domain.Plan{}, err
	}
	dates, err := domain.DateRange(start, end)
	if err != nil {
		return domain.Plan{}, err
	}

	return s.Allocate(s.Normalize(input), dates, req.HoursPerDay), nil
}

// Allocate runs the rules, clash resolution, compression and greedy fill over items.
// dates must be consecutive and hoursPerDay positive.
func (s *Scheduler) Allocate(items []domain.SchedulableItem, dates []time.Time, hoursPerDay float64) domain.Plan {
	today := s.rules.Today()

	adjusted, ruleLog := s.rules.ApplyRules(items)
	adjusted, clashLog := s.clashes.ResolveClashes(adjusted)
	triggered := make([]string, 0, len(ruleLog)+len(clashLog)+1)
	triggered = append(triggered, ruleLog...)
	triggered = append(triggered, clashLog...)

	available := float64(len(dates)) * hoursPerDay
	needed := domain.TotalHours(adjusted)

	factor := CompressionFactor(needed, available)
	if factor < 1 {
		adjusted = Compress(adjusted, factor)
		triggered = append(triggered, fmt.Sprintf(
			"Schedule compressed to %.0f%% of requested hours due to insufficient time", factor*100))
	}

	domain.SortByUrgency(adjusted, today)

	plan := domain.Plan{
		Days:                make([]domain.DayPlan, 0, len(dates)),
		RulesTriggered:      triggered,
		TotalHoursNeeded:    needed,
		TotalAvailableHours: available,
		CompressionFactor:   factor,
	}

	labels := s.slotLabels(hoursPerDay)
	allocated := make([]float64, len(adjusted))

	for _, date := range dates {
		day := domain.DayPlan{Date: date, DayName: domain.DayName(date), TimeSlots: []domain.TimeSlot{}}

		candidates := make([]int, 0, len(adjusted))
		for idx, item := range adjusted {
			if item.Hours-allocated[idx] > hoursEpsilon && item.SchedulableOn(date) {
				candidates = append(candidates, idx)
			}
		}
		sortIndexes(candidates, adjusted, today)

		used := 0.0
		for _, idx := range candidates {
			if hoursPerDay-used <= hoursEpsilon || len(day.TimeSlots) >= len(labels) {
				break
			}
			item := adjusted[idx]
			chunk := math.Min(1.0, math.Min(item.Hours-allocated[idx], hoursPerDay-used))
			day.TimeSlots = append(day.TimeSlots, domain.TimeSlot{
				TimeLabel:   labels[len(day.TimeSlots)],
				ItemID:      item.ID,
				ItemName:    item.Name,
				Category:    item.Category,
				SubjectName: item.SubjectName,
				Priority:    item.Priority,
				Hours:       chunk,
			})
			allocated[idx] += chunk
			used += chunk
		}
		plan.Days = append(plan.Days, day)
	}

	s.logger.Debug("plan allocated",
		"days", len(dates),
		"items", len(adjusted),
		"slots", plan.SlotCount(),
		"compression_factor", factor,
	)
	return plan
}

// slotLabels names one-hour slots starting at FirstSlotHour. Budgets that would run
// past midnight start earlier so every label stays within the day.
func (s *Scheduler) slotLabels(hoursPerDay float64) []string {
	n := int(math.Floor(hoursPerDay))
	first := s.config.FirstSlotHour
	if first+n > hoursInDay {
		first = max(0, hoursInDay-n)
	}
	labels := make([]string, n)
	for i := range labels {
		hour := first + i
		labels[i] = fmt.Sprintf("%02d:00-%02d:00", hour, hour+1)
	}
	return labels
}

// CompressionFactor returns available/needed when demand exceeds capacity, otherwise 1.
func CompressionFactor(needed, available float64) float64 {
	if needed <= available+hoursEpsilon || needed <= 0 {
		return 1
	}
	return available / needed
}

// Compress scales every item's hours by the same factor. The input slice is not modified.
func Compress(items []domain.SchedulableItem, factor float64) []domain.SchedulableItem {
	out := domain.CloneItems(items)
	for idx := range out {
		out[idx].Hours *= factor
	}
	return out
}

// sortIndexes orders candidate indexes with the same key SortByUrgency uses.
func sortIndexes(indexes []int, items []domain.SchedulableItem, today time.Time) {
	sort.SliceStable(indexes, func(a, b int) bool {
		ia, ib := items[indexes[a]], items[indexes[b]]
		if ia.Priority.Rank() != ib.Priority.Rank() {
			return ia.Priority.Rank() < ib.Priority.Rank()
		}
		return ia.DaysUntilDeadline(today) < ib.DaysUntilDeadline(today)
	})
}

func validateRequest(req PlanRequest) error {
	var errs []error
	switch {
	case req.HoursPerDay <= 0 || math.IsNaN(req.HoursPerDay):
		errs = append(errs, domain.ErrInvalidHoursPerDay)
	case req.HoursPerDay > domain.MaxHoursPerDay || math.IsInf(req.HoursPerDay, 1):
		errs = append(errs, domain.ErrTooManyHoursPerDay)
	}
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		errs = append(errs, domain.ErrMissingDates)
	}
	return errors.Join(errs...)
}
