package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/services"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	planningServices "github.com/felixgeelhaar/studyplanner/internal/planning/application/services"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
)

// Normalizer turns stored coursework into schedulable items.
type Normalizer interface {
	Normalize(input planningServices.PlanInput) []planningDomain.SchedulableItem
}

// ClashFinder detects deadline clashes among items.
type ClashFinder interface {
	FindClashes(items []planningDomain.SchedulableItem) []planningDomain.Clash
}

// DetectClashesCommand stores a notification for every new clash among pending coursework.
type DetectClashesCommand struct{}

func (DetectClashesCommand) CommandName() string { return "notifications.detect_clashes" }

// DetectClashesResult reports the clashes found and the notifications created for them.
type DetectClashesResult struct {
	ClashesFound int
	Created      []*domain.Notification
}

// DetectClashesHandler handles the DetectClashesCommand.
type DetectClashesHandler struct {
	reader     planningDomain.CourseworkReader
	normalizer Normalizer
	finder     ClashFinder
	store      *draftStore
	metrics    observability.Metrics
	logger     *slog.Logger
}

// NewDetectClashesHandler creates a new DetectClashesHandler.
func NewDetectClashesHandler(
	reader planningDomain.CourseworkReader,
	normalizer Normalizer,
	finder ClashFinder,
	repo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	metrics observability.Metrics,
	logger *slog.Logger,
) *DetectClashesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &DetectClashesHandler{
		reader:     reader,
		normalizer: normalizer,
		finder:     finder,
		store:      &draftStore{repo: repo, outboxRepo: outboxRepo, uow: uow, metrics: metrics},
		metrics:    metrics,
		logger:     logger,
	}
}

// Handle executes the DetectClashesCommand.
func (h *DetectClashesHandler) Handle(ctx context.Context, cmd DetectClashesCommand) (_ *DetectClashesResult, err error) {
	timer := observability.StartTimer(cmd.CommandName()).WithLogger(h.logger).WithMetrics(h.metrics)
	defer func() { timer.Stop(err) }()

	assignments, err := h.reader.PendingAssignments(ctx)
	if err != nil {
		return nil, err
	}
	exams, err := h.reader.Exams(ctx)
	if err != nil {
		return nil, err
	}

	items := h.normalizer.Normalize(planningServices.PlanInput{Assignments: assignments, Exams: exams})
	clashes := h.finder.FindClashes(items)
	drafts := make([]domain.Draft, 0, len(clashes))
	for _, c := range clashes {
		h.metrics.Counter(observability.MetricClashesDetected, 1,
			observability.T("kind", c.Kind()),
			observability.T("severity", c.Severity.String()),
		)
		drafts = append(drafts, services.ClashDraft(c))
	}

	created, err := h.store.saveNew(ctx, drafts)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "clash detection completed",
		"clashes", len(clashes),
		"notifications_created", len(created),
	)
	return &DetectClashesResult{ClashesFound: len(clashes), Created: created}, nil
}
