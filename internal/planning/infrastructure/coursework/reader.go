// Package coursework adapts the coursework repositories to the planning ports.
package coursework

import (
	"context"

	cwDomain "github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// Reader implements domain.CourseworkReader and domain.SubjectDirectory.
type Reader struct {
	assignments cwDomain.AssignmentRepository
	exams       cwDomain.ExamRepository
	subjects    cwDomain.SubjectRepository
}

// NewReader creates a Reader over the coursework repositories.
func NewReader(assignments cwDomain.AssignmentRepository, exams cwDomain.ExamRepository, subjects cwDomain.SubjectRepository) *Reader {
	return &Reader{assignments: assignments, exams: exams, subjects: subjects}
}

// PendingAssignments returns assignments that are not completed.
func (r *Reader) PendingAssignments(ctx context.Context) ([]domain.AssignmentRecord, error) {
	list, err := r.assignments.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AssignmentRecord, 0, len(list))
	for _, a := range list {
		out = append(out, domain.AssignmentRecord{
			ID:             a.ID().String(),
			Name:           a.Name(),
			SubjectName:    a.SubjectName(),
			DueDate:        a.DueDate(),
			EstimatedHours: a.EstimatedHours(),
			Difficulty:     string(a.Difficulty()),
			Priority:       string(a.Priority()),
		})
	}
	return out, nil
}

// Exams returns every stored exam.
func (r *Reader) Exams(ctx context.Context) ([]domain.ExamRecord, error) {
	list, err := r.exams.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ExamRecord, 0, len(list))
	for _, e := range list {
		out = append(out, domain.ExamRecord{
			ID:               e.ID().String(),
			Name:             e.Name(),
			SubjectName:      e.SubjectName(),
			ExamDate:         e.ExamDate(),
			RecommendedHours: e.RecommendedHours(),
			Difficulty:       string(e.Difficulty()),
			Priority:         string(e.Priority()),
			PastScore:        e.PastScore(),
			Chapters:         e.Chapters(),
		})
	}
	return out, nil
}

// Subjects returns every stored subject.
func (r *Reader) Subjects(ctx context.Context) ([]domain.SubjectRecord, error) {
	list, err := r.subjects.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SubjectRecord, 0, len(list))
	for _, s := range list {
		d := s.Details()
		out = append(out, domain.SubjectRecord{
			ID:               s.ID().String(),
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
		})
	}
	return out, nil
}

// SubjectNames maps every stored item to its subject name. A subject is its own subject.
func (r *Reader) SubjectNames(ctx context.Context) (map[string]string, error) {
	names := make(map[string]string)

	assignments, err := r.assignments.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		names[domain.SubjectKey(domain.CategoryAssignment, a.ID().String())] = a.SubjectName()
	}

	exams, err := r.exams.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range exams {
		names[domain.SubjectKey(domain.CategoryExam, e.ID().String())] = e.SubjectName()
	}

	subjects, err := r.subjects.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range subjects {
		names[domain.SubjectKey(domain.CategorySubject, s.ID().String())] = s.Name()
	}
	return names, nil
}
