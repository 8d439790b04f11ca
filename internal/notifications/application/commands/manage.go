package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	"github.com/google/uuid"
)

// MarkReadCommand marks one notification as read.
type MarkReadCommand struct {
	ID uuid.UUID
}

func (MarkReadCommand) CommandName() string { return "notifications.mark_read" }

// MarkAllReadCommand marks every notification as read.
type MarkAllReadCommand struct{}

func (MarkAllReadCommand) CommandName() string { return "notifications.mark_all_read" }

// DeleteCommand removes one notification.
type DeleteCommand struct {
	ID uuid.UUID
}

func (DeleteCommand) CommandName() string { return "notifications.delete" }

// ManageHandler handles read-state and deletion commands.
type ManageHandler struct {
	repo   domain.Repository
	logger *slog.Logger
}

// NewManageHandler creates a new ManageHandler.
func NewManageHandler(repo domain.Repository, logger *slog.Logger) *ManageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManageHandler{repo: repo, logger: logger}
}

// MarkRead executes the MarkReadCommand.
func (h *ManageHandler) MarkRead(ctx context.Context, cmd MarkReadCommand) error {
	n, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if !n.MarkRead() {
		return nil
	}
	return h.repo.Save(ctx, n)
}

// MarkAllRead executes the MarkAllReadCommand and returns how many changed.
func (h *ManageHandler) MarkAllRead(ctx context.Context, cmd MarkAllReadCommand) (int, error) {
	n, err := h.repo.MarkAllRead(ctx)
	if err != nil {
		return 0, err
	}
	h.logger.InfoContext(ctx, "notifications marked read", "count", n)
	return n, nil
}

// Delete executes the DeleteCommand.
func (h *ManageHandler) Delete(ctx context.Context, cmd DeleteCommand) error {
	return h.repo.Delete(ctx, cmd.ID)
}
