package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// NoExamDaysLeft is the days-left feature used for subjects without an exam date.
const NoExamDaysLeft = 999

// HoursEstimator predicts weekly study hours for a subject.
type HoursEstimator interface {
	PredictHours(pastScore float64, difficulty string, chapters, daysLeft int) (float64, error)
}

// CreateSubjectCommand adds a subject. When RecommendedHours is nil the
// estimator supplies it.
type CreateSubjectCommand struct {
	Name             string
	Difficulty       string
	ExamDate         string
	PastScore        *float64
	Chapters         int
	HasAssignment    bool
	HasExam          bool
	LastWeekHours    *float64
	RecommendedHours *float64
	Priority         string
}

func (CreateSubjectCommand) CommandName() string { return "coursework.create_subject" }

// DeleteSubjectCommand removes a subject.
type DeleteSubjectCommand struct {
	ID uuid.UUID
}

func (DeleteSubjectCommand) CommandName() string { return "coursework.delete_subject" }

// SubjectHandler handles the subject commands.
type SubjectHandler struct {
	repo       domain.SubjectRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	estimator  HoursEstimator
	now        func() time.Time
	logger     *slog.Logger
}

// NewSubjectHandler creates a new SubjectHandler. estimator may be nil, in
// which case subjects without explicit hours get zero.
func NewSubjectHandler(repo domain.SubjectRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, estimator HoursEstimator, now func() time.Time, logger *slog.Logger) *SubjectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &SubjectHandler{repo: repo, outboxRepo: outboxRepo, uow: uow, estimator: estimator, now: now, logger: logger}
}

// Create executes the CreateSubjectCommand.
func (h *SubjectHandler) Create(ctx context.Context, cmd CreateSubjectCommand) (*domain.Subject, error) {
	today := h.now()
	details := domain.SubjectDetails{
		Name:          cmd.Name,
		Difficulty:    cmd.Difficulty,
		ExamDate:      cmd.ExamDate,
		PastScore:     cmd.PastScore,
		Chapters:      cmd.Chapters,
		HasAssignment: cmd.HasAssignment,
		HasExam:       cmd.HasExam,
		LastWeekHours: cmd.LastWeekHours,
		Priority:      cmd.Priority,
	}
	if cmd.RecommendedHours != nil {
		details.RecommendedHours = *cmd.RecommendedHours
	} else if h.estimator != nil {
		hours, err := h.estimate(cmd, today)
		if err != nil {
			return nil, err
		}
		details.RecommendedHours = hours
	}

	s, err := domain.NewSubject(details, today)
	if err != nil {
		return nil, err
	}
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.repo.Save(txCtx, s); err != nil {
			return err
		}
		return saveEvents(ctx, txCtx, h.outboxRepo, s)
	})
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "subject created",
		"subject_id", s.ID(),
		"recommended_hours", s.RecommendedHours(),
		"priority", s.Priority(),
	)
	return s, nil
}

func (h *SubjectHandler) estimate(cmd CreateSubjectCommand, today time.Time) (float64, error) {
	var score float64
	if cmd.PastScore != nil {
		score = *cmd.PastScore
	}
	difficulty, err := domain.ParseDifficulty(cmd.Difficulty)
	if err != nil {
		return 0, err
	}
	return h.estimator.PredictHours(score, string(difficulty), cmd.Chapters, DaysLeft(cmd.ExamDate, today))
}

// DaysLeft counts whole days from today until examDate, never negative.
// Missing or malformed dates yield NoExamDaysLeft.
func DaysLeft(examDate string, today time.Time) int {
	normalized, err := domain.NormalizeDate(examDate)
	if err != nil || normalized == "" {
		return NoExamDaysLeft
	}
	date, _ := domain.ParseDate(normalized)
	y, m, d := today.Date()
	days := int(date.Sub(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	return max(0, days)
}

// Delete executes the DeleteSubjectCommand.
func (h *SubjectHandler) Delete(ctx context.Context, cmd DeleteSubjectCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		s, err := h.repo.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		s.MarkDeleted()
		if err := h.repo.Delete(txCtx, s.ID()); err != nil {
			return err
		}
		return saveEvents(ctx, txCtx, h.outboxRepo, s)
	})
	if err != nil {
		return err
	}
	h.logger.InfoContext(ctx, "subject deleted", "subject_id", cmd.ID)
	return nil
}
