package app

import (
	"context"
	"log/slog"

	courseworkDomain "github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	notificationsDomain "github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
)

// ClearAllCommand wipes every stored record.
type ClearAllCommand struct{}

func (ClearAllCommand) CommandName() string { return "admin.clear_all" }

var _ sharedApplication.CommandHandler[ClearAllCommand, *ClearAllResult] = (*ClearAllHandler)(nil)

// ClearAllResult counts the rows removed per table.
type ClearAllResult struct {
	Assignments   int `json:"assignments"`
	Exams         int `json:"exams"`
	Subjects      int `json:"subjects"`
	PlanSlots     int `json:"plan_slots"`
	Notifications int `json:"notifications"`
}

// ClearAllHandler handles the ClearAllCommand. Either every table is emptied
// or none is.
type ClearAllHandler struct {
	uow           sharedApplication.UnitOfWork
	assignments   courseworkDomain.AssignmentRepository
	exams         courseworkDomain.ExamRepository
	subjects      courseworkDomain.SubjectRepository
	plans         planningDomain.PlanRepository
	notifications notificationsDomain.Repository
	cache         planningDomain.PlanCache
	logger        *slog.Logger
}

// NewClearAllHandler creates a new ClearAllHandler. cache may be nil.
func NewClearAllHandler(
	uow sharedApplication.UnitOfWork,
	assignments courseworkDomain.AssignmentRepository,
	exams courseworkDomain.ExamRepository,
	subjects courseworkDomain.SubjectRepository,
	plans planningDomain.PlanRepository,
	notifications notificationsDomain.Repository,
	cache planningDomain.PlanCache,
	logger *slog.Logger,
) *ClearAllHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClearAllHandler{
		uow:           uow,
		assignments:   assignments,
		exams:         exams,
		subjects:      subjects,
		plans:         plans,
		notifications: notifications,
		cache:         cache,
		logger:        logger,
	}
}

// Handle executes the ClearAllCommand.
func (h *ClearAllHandler) Handle(ctx context.Context, cmd ClearAllCommand) (*ClearAllResult, error) {
	var result ClearAllResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		if result.PlanSlots, err = h.plans.DeleteAll(txCtx); err != nil {
			return err
		}
		if result.Notifications, err = h.notifications.DeleteAll(txCtx); err != nil {
			return err
		}
		if result.Assignments, err = h.assignments.DeleteAll(txCtx); err != nil {
			return err
		}
		if result.Exams, err = h.exams.DeleteAll(txCtx); err != nil {
			return err
		}
		result.Subjects, err = h.subjects.DeleteAll(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			h.logger.Warn("failed to invalidate plan cache", "error", err)
		}
	}

	h.logger.InfoContext(ctx, "all data cleared",
		"assignments", result.Assignments,
		"exams", result.Exams,
		"subjects", result.Subjects,
		"plan_slots", result.PlanSlots,
		"notifications", result.Notifications,
	)
	return &result, nil
}
