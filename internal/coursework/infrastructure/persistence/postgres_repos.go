package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	sharedPersistence "github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgDate converts a YYYY-MM-DD string to a DATE parameter.
func pgDate(s string) *time.Time {
	t, ok := domain.ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}

func fromPgDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func pgDelete(ctx context.Context, pool *pgxpool.Pool, table string, id uuid.UUID, notFound error) error {
	tag, err := sharedPersistence.PgExecutor(ctx, pool).Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

func pgDeleteAll(ctx context.Context, pool *pgxpool.Pool, table string) (int, error) {
	tag, err := sharedPersistence.PgExecutor(ctx, pool).Exec(ctx, `DELETE FROM `+table)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// PostgresAssignmentRepository implements domain.AssignmentRepository using PostgreSQL.
type PostgresAssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAssignmentRepository creates a new PostgreSQL assignment repository.
func NewPostgresAssignmentRepository(pool *pgxpool.Pool) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{pool: pool}
}

// Save inserts or updates an assignment.
func (r *PostgresAssignmentRepository) Save(ctx context.Context, a *domain.Assignment) error {
	_, err := sharedPersistence.PgExecutor(ctx, r.pool).Exec(ctx, `
		INSERT INTO assignments (`+assignmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			subject_name = EXCLUDED.subject_name,
			due_date = EXCLUDED.due_date,
			estimated_hours = EXCLUDED.estimated_hours,
			difficulty = EXCLUDED.difficulty,
			priority = EXCLUDED.priority,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`,
		a.ID(), a.Name(), a.SubjectName(), pgDate(a.DueDate()), a.EstimatedHours(),
		string(a.Difficulty()), string(a.Priority()), string(a.Status()), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save assignment: %w", err)
	}
	return nil
}

// FindByID retrieves an assignment by its ID.
func (r *PostgresAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	row := sharedPersistence.PgExecutor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id)
	a, err := scanPgAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAssignmentNotFound
	}
	return a, err
}

// FindAll returns every assignment.
func (r *PostgresAssignmentRepository) FindAll(ctx context.Context) ([]*domain.Assignment, error) {
	return r.query(ctx, `SELECT `+assignmentColumns+` FROM assignments
		ORDER BY due_date NULLS LAST, name`)
}

// FindPending returns assignments that are not completed.
func (r *PostgresAssignmentRepository) FindPending(ctx context.Context) ([]*domain.Assignment, error) {
	return r.query(ctx, `SELECT `+assignmentColumns+` FROM assignments
		WHERE status = $1 ORDER BY due_date NULLS LAST, name`, string(domain.StatusPending))
}

func (r *PostgresAssignmentRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Assignment, error) {
	rows, err := sharedPersistence.PgExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		a, err := scanPgAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an assignment.
func (r *PostgresAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return pgDelete(ctx, r.pool, "assignments", id, domain.ErrAssignmentNotFound)
}

// DeleteAll removes every assignment.
func (r *PostgresAssignmentRepository) DeleteAll(ctx context.Context) (int, error) {
	return pgDeleteAll(ctx, r.pool, "assignments")
}

func scanPgAssignment(row pgx.Row) (*domain.Assignment, error) {
	var (
		id                   uuid.UUID
		status               string
		due                  *time.Time
		createdAt, updatedAt time.Time
		d                    domain.AssignmentDetails
	)
	if err := row.Scan(&id, &d.Name, &d.SubjectName, &due, &d.EstimatedHours,
		&d.Difficulty, &d.Priority, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	d.DueDate = fromPgDate(due)
	return domain.RehydrateAssignment(id, d, st, createdAt, updatedAt), nil
}

// PostgresExamRepository implements domain.ExamRepository using PostgreSQL.
type PostgresExamRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresExamRepository creates a new PostgreSQL exam repository.
func NewPostgresExamRepository(pool *pgxpool.Pool) *PostgresExamRepository {
	return &PostgresExamRepository{pool: pool}
}

// Save inserts or updates an exam.
func (r *PostgresExamRepository) Save(ctx context.Context, e *domain.Exam) error {
	_, err := sharedPersistence.PgExecutor(ctx, r.pool).Exec(ctx, `
		INSERT INTO exams (`+examColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			subject_name = EXCLUDED.subject_name,
			exam_date = EXCLUDED.exam_date,
			difficulty = EXCLUDED.difficulty,
			past_score = EXCLUDED.past_score,
			chapters = EXCLUDED.chapters,
			recommended_hours = EXCLUDED.recommended_hours,
			priority = EXCLUDED.priority,
			updated_at = EXCLUDED.updated_at`,
		e.ID(), e.Name(), e.SubjectName(), pgDate(e.ExamDate()), string(e.Difficulty()), e.PastScore(),
		e.Chapters(), e.RecommendedHours(), string(e.Priority()), e.CreatedAt(), e.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save exam: %w", err)
	}
	return nil
}

// FindByID retrieves an exam by its ID.
func (r *PostgresExamRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	row := sharedPersistence.PgExecutor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id)
	e, err := scanPgExam(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrExamNotFound
	}
	return e, err
}

// FindAll returns every exam.
func (r *PostgresExamRepository) FindAll(ctx context.Context) ([]*domain.Exam, error) {
	rows, err := sharedPersistence.PgExecutor(ctx, r.pool).Query(ctx,
		`SELECT `+examColumns+` FROM exams ORDER BY exam_date NULLS LAST, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Exam
	for rows.Next() {
		e, err := scanPgExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes an exam.
func (r *PostgresExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return pgDelete(ctx, r.pool, "exams", id, domain.ErrExamNotFound)
}

// DeleteAll removes every exam.
func (r *PostgresExamRepository) DeleteAll(ctx context.Context) (int, error) {
	return pgDeleteAll(ctx, r.pool, "exams")
}

func scanPgExam(row pgx.Row) (*domain.Exam, error) {
	var (
		id                   uuid.UUID
		date                 *time.Time
		createdAt, updatedAt time.Time
		d                    domain.ExamDetails
	)
	if err := row.Scan(&id, &d.Name, &d.SubjectName, &date, &d.Difficulty, &d.PastScore,
		&d.Chapters, &d.RecommendedHours, &d.Priority, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	d.ExamDate = fromPgDate(date)
	return domain.RehydrateExam(id, d, createdAt, updatedAt), nil
}

// PostgresSubjectRepository implements domain.SubjectRepository using PostgreSQL.
type PostgresSubjectRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSubjectRepository creates a new PostgreSQL subject repository.
func NewPostgresSubjectRepository(pool *pgxpool.Pool) *PostgresSubjectRepository {
	return &PostgresSubjectRepository{pool: pool}
}

// Save inserts or updates a subject.
func (r *PostgresSubjectRepository) Save(ctx context.Context, s *domain.Subject) error {
	d := s.Details()
	_, err := sharedPersistence.PgExecutor(ctx, r.pool).Exec(ctx, `
		INSERT INTO subjects (`+subjectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			difficulty = EXCLUDED.difficulty,
			exam_date = EXCLUDED.exam_date,
			past_score = EXCLUDED.past_score,
			chapters = EXCLUDED.chapters,
			has_assignment = EXCLUDED.has_assignment,
			has_exam = EXCLUDED.has_exam,
			last_week_hours = EXCLUDED.last_week_hours,
			recommended_hours = EXCLUDED.recommended_hours,
			priority = EXCLUDED.priority,
			updated_at = EXCLUDED.updated_at`,
		s.ID(), d.Name, d.Difficulty, pgDate(d.ExamDate), d.PastScore, d.Chapters,
		d.HasAssignment, d.HasExam, d.LastWeekHours, d.RecommendedHours, d.Priority,
		s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save subject: %w", err)
	}
	return nil
}

// FindByID retrieves a subject by its ID.
func (r *PostgresSubjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	row := sharedPersistence.PgExecutor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id)
	s, err := scanPgSubject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSubjectNotFound
	}
	return s, err
}

// FindAll returns every subject ordered by name.
func (r *PostgresSubjectRepository) FindAll(ctx context.Context) ([]*domain.Subject, error) {
	rows, err := sharedPersistence.PgExecutor(ctx, r.pool).Query(ctx,
		`SELECT `+subjectColumns+` FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Subject
	for rows.Next() {
		s, err := scanPgSubject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a subject.
func (r *PostgresSubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return pgDelete(ctx, r.pool, "subjects", id, domain.ErrSubjectNotFound)
}

// DeleteAll removes every subject.
func (r *PostgresSubjectRepository) DeleteAll(ctx context.Context) (int, error) {
	return pgDeleteAll(ctx, r.pool, "subjects")
}

func scanPgSubject(row pgx.Row) (*domain.Subject, error) {
	var (
		id                   uuid.UUID
		date                 *time.Time
		createdAt, updatedAt time.Time
		d                    domain.SubjectDetails
	)
	if err := row.Scan(&id, &d.Name, &d.Difficulty, &date, &d.PastScore, &d.Chapters, &d.HasAssignment,
		&d.HasExam, &d.LastWeekHours, &d.RecommendedHours, &d.Priority, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	d.ExamDate = fromPgDate(date)
	return domain.RehydrateSubject(id, d, createdAt, updatedAt), nil
}
