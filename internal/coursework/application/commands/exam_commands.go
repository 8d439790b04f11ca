package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// CreateExamCommand adds an exam. Zero RecommendedHours uses the default recommendation.
type CreateExamCommand struct {
	Name             string
	SubjectName      string
	ExamDate         string
	Difficulty       string
	PastScore        *float64
	Chapters         int
	RecommendedHours float64
	Priority         string
}

func (CreateExamCommand) CommandName() string { return "coursework.create_exam" }

// UpdateExamCommand changes the fields that are set.
type UpdateExamCommand struct {
	ID               uuid.UUID
	Name             *string
	SubjectName      *string
	ExamDate         *string
	Difficulty       *string
	PastScore        *float64
	Chapters         *int
	RecommendedHours *float64
	Priority         *string
}

func (UpdateExamCommand) CommandName() string { return "coursework.update_exam" }

// DeleteExamCommand removes an exam.
type DeleteExamCommand struct {
	ID uuid.UUID
}

func (DeleteExamCommand) CommandName() string { return "coursework.delete_exam" }

// ExamHandler handles the exam commands.
type ExamHandler struct {
	repo       domain.ExamRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	logger     *slog.Logger
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(repo domain.ExamRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, logger *slog.Logger) *ExamHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExamHandler{repo: repo, outboxRepo: outboxRepo, uow: uow, logger: logger}
}

// Create executes the CreateExamCommand.
func (h *ExamHandler) Create(ctx context.Context, cmd CreateExamCommand) (*domain.Exam, error) {
	hours := cmd.RecommendedHours
	if hours == 0 {
		hours = domain.DefaultExamHours
	}
	e, err := domain.NewExam(domain.ExamDetails{
		Name:             cmd.Name,
		SubjectName:      cmd.SubjectName,
		ExamDate:         cmd.ExamDate,
		Difficulty:       cmd.Difficulty,
		PastScore:        cmd.PastScore,
		Chapters:         cmd.Chapters,
		RecommendedHours: hours,
		Priority:         cmd.Priority,
	})
	if err != nil {
		return nil, err
	}
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.repo.Save(txCtx, e); err != nil {
			return err
		}
		return saveEvents(ctx, txCtx, h.outboxRepo, e)
	})
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "exam created", "exam_id", e.ID(), "exam_date", e.ExamDate())
	return e, nil
}

// Update executes the UpdateExamCommand.
func (h *ExamHandler) Update(ctx context.Context, cmd UpdateExamCommand) (*domain.Exam, error) {
	var updated *domain.Exam
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		e, err := h.repo.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		d := e.Details()
		setString(&d.Name, cmd.Name)
		setString(&d.SubjectName, cmd.SubjectName)
		setString(&d.ExamDate, cmd.ExamDate)
		setString(&d.Difficulty, cmd.Difficulty)
		setString(&d.Priority, cmd.Priority)
		if cmd.PastScore != nil {
			d.PastScore = cmd.PastScore
		}
		if cmd.Chapters != nil {
			d.Chapters = *cmd.Chapters
		}
		if cmd.RecommendedHours != nil {
			d.RecommendedHours = *cmd.RecommendedHours
		}
		if err := e.Update(d); err != nil {
			return err
		}
		if err := h.repo.Save(txCtx, e); err != nil {
			return err
		}
		updated = e
		return saveEvents(ctx, txCtx, h.outboxRepo, e)
	})
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "exam updated", "exam_id", cmd.ID)
	return updated, nil
}

// Delete executes the DeleteExamCommand.
func (h *ExamHandler) Delete(ctx context.Context, cmd DeleteExamCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		e, err := h.repo.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		e.MarkDeleted()
		if err := h.repo.Delete(txCtx, e.ID()); err != nil {
			return err
		}
		return saveEvents(ctx, txCtx, h.outboxRepo, e)
	})
	if err != nil {
		return err
	}
	h.logger.InfoContext(ctx, "exam deleted", "exam_id", cmd.ID)
	return nil
}
