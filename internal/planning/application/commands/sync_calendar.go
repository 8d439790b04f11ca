package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// ErrCalendarNotConfigured is returned when no calendar syncer is wired.
var ErrCalendarNotConfigured = errors.New("calendar sync is not configured")

// SyncCalendarCommand pushes the stored plan to the configured calendar.
type SyncCalendarCommand struct{}

func (SyncCalendarCommand) CommandName() string { return "planning.sync_calendar" }

// SyncCalendarHandler handles the SyncCalendarCommand.
type SyncCalendarHandler struct {
	planRepo domain.PlanRepository
	syncer   domain.CalendarSyncer
	logger   *slog.Logger
}

// NewSyncCalendarHandler creates a new SyncCalendarHandler.
func NewSyncCalendarHandler(planRepo domain.PlanRepository, syncer domain.CalendarSyncer, logger *slog.Logger) *SyncCalendarHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncCalendarHandler{planRepo: planRepo, syncer: syncer, logger: logger}
}

// Handle executes the SyncCalendarCommand.
func (h *SyncCalendarHandler) Handle(ctx context.Context, cmd SyncCalendarCommand) (*domain.CalendarSyncReport, error) {
	if h.syncer == nil {
		return nil, ErrCalendarNotConfigured
	}

	slots, err := h.planRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, domain.ErrPlanNotFound
	}

	report, err := h.syncer.Sync(ctx, slots)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
