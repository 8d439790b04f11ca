package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/services"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
)

// GenerateRemindersCommand stores reminders for coursework that is due soon.
type GenerateRemindersCommand struct{}

func (GenerateRemindersCommand) CommandName() string { return "notifications.generate_reminders" }

// GenerateRemindersHandler handles the GenerateRemindersCommand.
type GenerateRemindersHandler struct {
	reader  planningDomain.CourseworkReader
	store   *draftStore
	clock   planningDomain.Clock
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewGenerateRemindersHandler creates a new GenerateRemindersHandler.
func NewGenerateRemindersHandler(
	reader planningDomain.CourseworkReader,
	repo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	clock planningDomain.Clock,
	metrics observability.Metrics,
	logger *slog.Logger,
) *GenerateRemindersHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if clock == nil {
		clock = planningDomain.SystemClock
	}
	return &GenerateRemindersHandler{
		reader:  reader,
		store:   &draftStore{repo: repo, outboxRepo: outboxRepo, uow: uow, metrics: metrics},
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle executes the GenerateRemindersCommand and returns the reminders created.
func (h *GenerateRemindersHandler) Handle(ctx context.Context, cmd GenerateRemindersCommand) ([]*domain.Notification, error) {
	assignments, err := h.reader.PendingAssignments(ctx)
	if err != nil {
		return nil, err
	}
	exams, err := h.reader.Exams(ctx)
	if err != nil {
		return nil, err
	}

	created, err := h.store.saveNew(ctx, services.ReminderDrafts(assignments, exams, h.clock()))
	if err != nil {
		return nil, err
	}
	if len(created) > 0 {
		h.metrics.Counter(observability.MetricRemindersSent, int64(len(created)))
	}
	h.logger.InfoContext(ctx, "reminders generated", "created", len(created))
	return created, nil
}
