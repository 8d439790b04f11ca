package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// CreateAssignmentCommand adds an assignment. Zero EstimatedHours uses the default estimate.
type CreateAssignmentCommand struct {
	Name           string
	SubjectName    string
	DueDate        string
	EstimatedHours float64
	Difficulty     string
	Priority       string
}

func (CreateAssignmentCommand) CommandName() string { return "coursework.create_assignment" }

// UpdateAssignmentCommand changes the fields that are set.
type UpdateAssignmentCommand struct {
	ID             uuid.UUID
	Name           *string
	SubjectName    *string
	DueDate        *string
	EstimatedHours *float64
	Difficulty     *string
	Priority       *string
}

func (UpdateAssignmentCommand) CommandName() string { return "coursework.update_assignment" }

// CompleteAssignmentCommand marks an assignment as done.
type CompleteAssignmentCommand struct {
	ID uuid.UUID
}

func (CompleteAssignmentCommand) CommandName() string { return "coursework.complete_assignment" }

// DeleteAssignmentCommand removes an assignment.
type DeleteAssignmentCommand struct {
	ID uuid.UUID
}

func (DeleteAssignmentCommand) CommandName() string { return "coursework.delete_assignment" }

// AssignmentHandler handles the assignment commands.
type AssignmentHandler struct {
	repo       domain.AssignmentRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	logger     *slog.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(repo domain.AssignmentRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, logger *slog.Logger) *AssignmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignmentHandler{repo: repo, outboxRepo: outboxRepo, uow: uow, logger: logger}
}

// Create executes the CreateAssignmentCommand.
func (h *AssignmentHandler) Create(ctx context.Context, cmd CreateAssignmentCommand) (*domain.Assignment, error) {
	hours := cmd.EstimatedHours
	if hours == 0 {
		hours = domain.DefaultAssignmentHours
	}
	a, err := domain.NewAssignment(domain.AssignmentDetails{
		Name:           cmd.Name,
		SubjectName:    cmd.SubjectName,
		DueDate:        cmd.DueDate,
		EstimatedHours: hours,
		Difficulty:     cmd.Difficulty,
		Priority:       cmd.Priority,
	})
	if err != nil {
		return nil, err
	}
	if err := h.save(ctx, a); err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "assignment created", "assignment_id", a.ID(), "due_date", a.DueDate())
	return a, nil
}

// Update executes the UpdateAssignmentCommand.
func (h *AssignmentHandler) Update(ctx context.Context, cmd UpdateAssignmentCommand) (*domain.Assignment, error) {
	var updated *domain.Assignment
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		a, err := h.repo.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		d := a.Details()
		setString(&d.Name, cmd.Name)
		setString(&d.SubjectName, cmd.SubjectName)
		setString(&d.DueDate, cmd.DueDate)
		setString(&d.Difficulty, cmd.Difficulty)
		setString(&d.Priority, cmd.Priority)
		if cmd.EstimatedHours != nil {
			d.EstimatedHours = *cmd.EstimatedHours
		}
		if err := a.Update(d); err != nil {
			return err
		}
		if err := h.repo.Save(txCtx, a); err != nil {
			return err
		}
		updated = a
		return saveEvents(ctx, txCtx, h.outboxRepo, a)
	})
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "assignment updated", "assignment_id", cmd.ID)
	return updated, nil
}

// Complete executes the CompleteAssignmentCommand.
func (h *AssignmentHandler) Complete(ctx context.Context, cmd CompleteAssignmentCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		a, err := h.repo.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		if err := a.Complete(); err != nil {
			return err
		}
		if err := h.repo.Save(txCtx, a); err != nil {
			return err
		}
		return saveEvents(ctx, txCtx, h.outboxRepo, a)
	})
	if err != nil {
		return err
	}
	h.logger.InfoContext(ctx, "assignment completed", "assignment_id", cmd.ID)
	return nil
}

// Delete executes the DeleteAssignmentCommand.
func (h *AssignmentHandler) Delete(ctx context.Context, cmd DeleteAssignmentCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		a, err := h.repo.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		a.MarkDeleted()
		if err := h.repo.Delete(txCtx, a.ID()); err != nil {
			return err
		}
		return saveEvents(ctx, txCtx, h.outboxRepo, a)
	})
	if err != nil {
		return err
	}
	h.logger.InfoContext(ctx, "assignment deleted", "assignment_id", cmd.ID)
	return nil
}

func (h *AssignmentHandler) save(ctx context.Context, a *domain.Assignment) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.repo.Save(txCtx, a); err != nil {
			return err
		}
		return saveEvents(ctx, txCtx, h.outboxRepo, a)
	})
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
