package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/planning/application/services"
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
	"github.com/google/uuid"
)

// DefaultHorizonDays is the plan length used when no item has a usable deadline.
const DefaultHorizonDays = 7

// GeneratePlanCommand requests a new study plan. Empty dates are derived
// from the stored deadlines.
type GeneratePlanCommand struct {
	HoursPerDay     float64
	StartDate       string
	EndDate         string
	IncludeSubjects bool
}

func (GeneratePlanCommand) CommandName() string { return "planning.generate_plan" }

// GeneratePlanResult contains the generated plan and the range it covers.
type GeneratePlanResult struct {
	PlanID    uuid.UUID
	StartDate string
	EndDate   string
	Plan      domain.Plan
}

// GeneratePlanHandler handles the GeneratePlanCommand.
type GeneratePlanHandler struct {
	reader     domain.CourseworkReader
	scheduler  *services.Scheduler
	planRepo   domain.PlanRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	cache      domain.PlanCache
	clock      domain.Clock
	metrics    observability.Metrics
	logger     *slog.Logger
}

// NewGeneratePlanHandler creates a new GeneratePlanHandler. cache may be nil.
func NewGeneratePlanHandler(
	reader domain.CourseworkReader,
	scheduler *services.Scheduler,
	planRepo domain.PlanRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	cache domain.PlanCache,
	clock domain.Clock,
	metrics observability.Metrics,
	logger *slog.Logger,
) *GeneratePlanHandler {
	if clock == nil {
		clock = domain.SystemClock
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneratePlanHandler{
		reader:     reader,
		scheduler:  scheduler,
		planRepo:   planRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		cache:      cache,
		clock:      clock,
		metrics:    metrics,
		logger:     logger,
	}
}

// Handle executes the GeneratePlanCommand.
func (h *GeneratePlanHandler) Handle(ctx context.Context, cmd GeneratePlanCommand) (result *GeneratePlanResult, err error) {
	timer := observability.StartTimer(cmd.CommandName()).WithLogger(h.logger).WithMetrics(h.metrics)
	defer func() { timer.Stop(err) }()

	if cmd.HoursPerDay > domain.MaxHoursPerDay {
		return nil, domain.ErrTooManyHoursPerDay
	}

	input, err := h.loadInput(ctx, cmd.IncludeSubjects)
	if err != nil {
		return nil, err
	}
	if len(input.Assignments) == 0 && len(input.Exams) == 0 {
		return nil, domain.ErrNoItems
	}

	start, end := h.resolveDates(cmd, input)
	if err := checkRangeLength(start, end); err != nil {
		return nil, err
	}

	began := time.Now()
	plan, err := h.scheduler.GeneratePlan(input, services.PlanRequest{
		HoursPerDay: cmd.HoursPerDay,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return nil, err
	}
	h.metrics.Timing(observability.MetricPlanDuration, time.Since(began))

	planID := uuid.New()
	slots := plan.Flatten(time.Now().UTC())

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.planRepo.ReplaceAll(txCtx, slots); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewPlanGenerated(planID, start, end, plan)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx))
		msgs, err := outbox.NewMessages(events)
		if err != nil {
			return err
		}
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
	if err != nil {
		return nil, err
	}

	h.invalidateCache(ctx)
	h.record(plan)

	h.logger.InfoContext(ctx, "study plan generated",
		"plan_id", planID,
		"start_date", start,
		"end_date", end,
		"slots", len(slots),
		"hours_needed", plan.TotalHoursNeeded,
		"hours_available", plan.TotalAvailableHours,
		"compression_factor", plan.CompressionFactor,
	)

	return &GeneratePlanResult{PlanID: planID, StartDate: start, EndDate: end, Plan: plan}, nil
}

func (h *GeneratePlanHandler) loadInput(ctx context.Context, includeSubjects bool) (services.PlanInput, error) {
	var input services.PlanInput
	var err error

	if input.Assignments, err = h.reader.PendingAssignments(ctx); err != nil {
		return input, err
	}
	if input.Exams, err = h.reader.Exams(ctx); err != nil {
		return input, err
	}
	if includeSubjects {
		if input.Subjects, err = h.reader.Subjects(ctx); err != nil {
			return input, err
		}
	}
	return input, nil
}

// resolveDates fills in a missing start with today and a missing end with the
// day after the latest deadline, or a week out when there is none.
func (h *GeneratePlanHandler) resolveDates(cmd GeneratePlanCommand, input services.PlanInput) (string, string) {
	today := domain.CivilDate(h.clock())

	start := cmd.StartDate
	if start == "" {
		start = domain.FormatDate(today)
	}
	if cmd.EndDate != "" {
		return start, cmd.EndDate
	}

	from := today
	if parsed, err := domain.ParseDate(start); err == nil {
		from = parsed
	}

	latest, ok := LatestDeadline(input)
	if !ok || latest.Before(from) {
		return start, domain.FormatDate(from.AddDate(0, 0, DefaultHorizonDays))
	}
	return start, domain.FormatDate(latest.AddDate(0, 0, 1))
}

// LatestDeadline returns the latest parsable deadline among the input records.
func LatestDeadline(input services.PlanInput) (time.Time, bool) {
	var latest time.Time
	found := false
	consider := func(raw string) {
		if date, ok := domain.NewDeadline(raw).Date(); ok && (!found || date.After(latest)) {
			latest, found = date, true
		}
	}

	for _, a := range input.Assignments {
		consider(a.DueDate)
	}
	for _, e := range input.Exams {
		consider(e.ExamDate)
	}
	for _, s := range input.Subjects {
		consider(s.ExamDate)
	}
	return latest, found
}

func checkRangeLength(start, end string) error {
	from, err := domain.ParseDate(start)
	if err != nil {
		return nil
	}
	to, err := domain.ParseDate(end)
	if err != nil {
		return nil
	}
	if domain.DaysBetween(from, to)+1 > domain.MaxPlanDays {
		return domain.ErrRangeTooLong
	}
	return nil
}

func (h *GeneratePlanHandler) invalidateCache(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.WarnContext(ctx, "failed to invalidate plan cache", "error", err)
	}
}

func (h *GeneratePlanHandler) record(plan domain.Plan) {
	compressed := "false"
	if plan.Compressed() {
		compressed = "true"
	}
	h.metrics.Counter(observability.MetricPlansGenerated, 1, observability.T("compressed", compressed))
	h.metrics.Counter(observability.MetricRulesTriggered, int64(len(plan.RulesTriggered)))
	h.metrics.Histogram(observability.MetricPlanSlots, float64(plan.SlotCount()))
	h.metrics.Gauge(observability.MetricPlanCompression, plan.CompressionFactor)
}
