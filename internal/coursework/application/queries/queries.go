package queries

import (
	"context"

	"github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	"github.com/google/uuid"
)

// ListAssignmentsQuery lists assignments, optionally only pending ones.
type ListAssignmentsQuery struct {
	PendingOnly bool
}

func (ListAssignmentsQuery) QueryName() string { return "coursework.list_assignments" }

// AssignmentView is the read model of an assignment.
type AssignmentView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	SubjectName    string    `json:"subject_name"`
	DueDate        string    `json:"due_date,omitempty"`
	EstimatedHours float64   `json:"estimated_hours"`
	Difficulty     string    `json:"difficulty"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
}

// ExamView is the read model of an exam.
type ExamView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	SubjectName      string    `json:"subject_name"`
	ExamDate         string    `json:"exam_date,omitempty"`
	Difficulty       string    `json:"difficulty"`
	PastScore        *float64  `json:"past_score,omitempty"`
	Chapters         int       `json:"chapters"`
	RecommendedHours float64   `json:"recommended_hours"`
	Priority         string    `json:"priority"`
}

// SubjectView is the read model of a subject.
type SubjectView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Difficulty       string    `json:"difficulty"`
	ExamDate         string    `json:"exam_date,omitempty"`
	PastScore        *float64  `json:"past_score,omitempty"`
	Chapters         int       `json:"chapters"`
	HasAssignment    bool      `json:"has_assignment"`
	HasExam          bool      `json:"has_exam"`
	LastWeekHours    *float64  `json:"last_week_hours,omitempty"`
	RecommendedHours float64   `json:"recommended_hours"`
	Priority         string    `json:"priority"`
}

// Handler serves the coursework read side.
type Handler struct {
	assignments domain.AssignmentRepository
	exams       domain.ExamRepository
	subjects    domain.SubjectRepository
}

// NewHandler creates a new coursework query handler.
func NewHandler(assignments domain.AssignmentRepository, exams domain.ExamRepository, subjects domain.SubjectRepository) *Handler {
	return &Handler{assignments: assignments, exams: exams, subjects: subjects}
}

// ListAssignments executes the ListAssignmentsQuery.
func (h *Handler) ListAssignments(ctx context.Context, q ListAssignmentsQuery) ([]AssignmentView, error) {
	var (
		list []*domain.Assignment
		err  error
	)
	if q.PendingOnly {
		list, err = h.assignments.FindPending(ctx)
	} else {
		list, err = h.assignments.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	views := make([]AssignmentView, 0, len(list))
	for _, a := range list {
		views = append(views, toAssignmentView(a))
	}
	return views, nil
}

// GetAssignment returns one assignment.
func (h *Handler) GetAssignment(ctx context.Context, id uuid.UUID) (*AssignmentView, error) {
	a, err := h.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := toAssignmentView(a)
	return &v, nil
}

// ListExams returns every exam ordered by date.
func (h *Handler) ListExams(ctx context.Context) ([]ExamView, error) {
	list, err := h.exams.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ExamView, 0, len(list))
	for _, e := range list {
		views = append(views, toExamView(e))
	}
	return views, nil
}

// GetExam returns one exam.
func (h *Handler) GetExam(ctx context.Context, id uuid.UUID) (*ExamView, error) {
	e, err := h.exams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := toExamView(e)
	return &v, nil
}

// ListSubjects returns every subject ordered by name.
func (h *Handler) ListSubjects(ctx context.Context) ([]SubjectView, error) {
	list, err := h.subjects.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]SubjectView, 0, len(list))
	for _, s := range list {
		views = append(views, toSubjectView(s))
	}
	return views, nil
}

// GetSubject returns one subject.
func (h *Handler) GetSubject(ctx context.Context, id uuid.UUID) (*SubjectView, error) {
	s, err := h.subjects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := toSubjectView(s)
	return &v, nil
}

func toAssignmentView(a *domain.Assignment) AssignmentView {
	return AssignmentView{
		ID:             a.ID(),
		Name:           a.Name(),
		SubjectName:    a.SubjectName(),
		DueDate:        a.DueDate(),
		EstimatedHours: a.EstimatedHours(),
		Difficulty:     string(a.Difficulty()),
		Priority:       string(a.Priority()),
		Status:         string(a.Status()),
	}
}

func toExamView(e *domain.Exam) ExamView {
	return ExamView{
		ID:               e.ID(),
		Name:             e.Name(),
		SubjectName:      e.SubjectName(),
		ExamDate:         e.ExamDate(),
		Difficulty:       string(e.Difficulty()),
		PastScore:        e.PastScore(),
		Chapters:         e.Chapters(),
		RecommendedHours: e.RecommendedHours(),
		Priority:         string(e.Priority()),
	}
}

func toSubjectView(s *domain.Subject) SubjectView {
	d := s.Details()
	return SubjectView{
		ID:               s.ID(),
		Name:             d.Name,
		Difficulty:       d.Difficulty,
		ExamDate:         d.ExamDate,
		PastScore:        d.PastScore,
		Chapters:         d.Chapters,
		HasAssignment:    d.HasAssignment,
		HasExam:          d.HasExam,
		LastWeekHours:    d.LastWeekHours,
		RecommendedHours: d.RecommendedHours,
		Priority:         d.Priority,
	}
}
