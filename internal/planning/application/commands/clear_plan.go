package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ClearPlanCommand removes the stored plan.
type ClearPlanCommand struct{}

func (ClearPlanCommand) CommandName() string { return "planning.clear_plan" }

// ClearPlanResult reports how many slots were removed.
type ClearPlanResult struct {
	SlotsRemoved int
}

// ClearPlanHandler handles the ClearPlanCommand.
type ClearPlanHandler struct {
	planRepo   domain.PlanRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	cache      domain.PlanCache
	logger     *slog.Logger
}

// NewClearPlanHandler creates a new ClearPlanHandler. cache may be nil.
func NewClearPlanHandler(planRepo domain.PlanRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, cache domain.PlanCache, logger *slog.Logger) *ClearPlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClearPlanHandler{
		planRepo:   planRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		cache:      cache,
		logger:     logger,
	}
}

// Handle executes the ClearPlanCommand.
func (h *ClearPlanHandler) Handle(ctx context.Context, cmd ClearPlanCommand) (*ClearPlanResult, error) {
	var removed int

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		n, err := h.planRepo.DeleteAll(txCtx)
		if err != nil {
			return err
		}
		removed = n

		events := []sharedDomain.DomainEvent{domain.NewPlanCleared(uuid.New(), n)}
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

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			h.logger.WarnContext(ctx, "failed to invalidate plan cache", "error", err)
		}
	}

	h.logger.InfoContext(ctx, "study plan cleared", "slots_removed", removed)
	return &ClearPlanResult{SlotsRemoved: removed}, nil
}
