package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	sharedPersistence "github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func deleteAll(ctx context.Context, db *sql.DB, table string) (int, error) {
	res, err := sharedPersistence.SQLiteExecutor(ctx, db).ExecContext(ctx, `DELETE FROM `+table)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func deleteByID(ctx context.Context, db *sql.DB, table string, id uuid.UUID, notFound error) error {
	res, err := sharedPersistence.SQLiteExecutor(ctx, db).ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func timestamps(createdAt, updatedAt string) (time.Time, time.Time, error) {
	ct, err := sharedPersistence.ParseSQLiteTime(createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid created_at: %w", err)
	}
	ut, err := sharedPersistence.ParseSQLiteTime(updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	return ct, ut, nil
}

// --- assignments ---

const assignmentColumns = `id, name, subject_name, due_date, estimated_hours, difficulty, priority, status, created_at, updated_at`

// SQLiteAssignmentRepository implements domain.AssignmentRepository using SQLite.
type SQLiteAssignmentRepository struct {
	db *sql.DB
}

// NewSQLiteAssignmentRepository creates a new SQLite assignment repository.
func NewSQLiteAssignmentRepository(db *sql.DB) *SQLiteAssignmentRepository {
	return &SQLiteAssignmentRepository{db: db}
}

// Save inserts or updates an assignment.
func (r *SQLiteAssignmentRepository) Save(ctx context.Context, a *domain.Assignment) error {
	_, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO assignments (`+assignmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			subject_name = excluded.subject_name,
			due_date = excluded.due_date,
			estimated_hours = excluded.estimated_hours,
			difficulty = excluded.difficulty,
			priority = excluded.priority,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		a.ID().String(), a.Name(), a.SubjectName(), nullString(a.DueDate()), a.EstimatedHours(),
		string(a.Difficulty()), string(a.Priority()), string(a.Status()),
		sharedPersistence.FormatSQLiteTime(a.CreatedAt()), sharedPersistence.FormatSQLiteTime(a.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save assignment: %w", err)
	}
	return nil
}

// FindByID retrieves an assignment by its ID.
func (r *SQLiteAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	row := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id.String())
	a, err := scanAssignment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAssignmentNotFound
	}
	return a, err
}

// FindAll returns every assignment.
func (r *SQLiteAssignmentRepository) FindAll(ctx context.Context) ([]*domain.Assignment, error) {
	return r.query(ctx, `SELECT `+assignmentColumns+` FROM assignments
		ORDER BY due_date IS NULL, due_date, name`)
}

// FindPending returns assignments that are not completed.
func (r *SQLiteAssignmentRepository) FindPending(ctx context.Context) ([]*domain.Assignment, error) {
	return r.query(ctx, `SELECT `+assignmentColumns+` FROM assignments
		WHERE status = ? ORDER BY due_date IS NULL, due_date, name`, string(domain.StatusPending))
}

func (r *SQLiteAssignmentRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Assignment, error) {
	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an assignment.
func (r *SQLiteAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "assignments", id, domain.ErrAssignmentNotFound)
}

// DeleteAll removes every assignment.
func (r *SQLiteAssignmentRepository) DeleteAll(ctx context.Context) (int, error) {
	return deleteAll(ctx, r.db, "assignments")
}

func scanAssignment(row rowScanner) (*domain.Assignment, error) {
	var (
		id, status, createdAt, updatedAt string
		due                              sql.NullString
		d                                domain.AssignmentDetails
	)
	if err := row.Scan(&id, &d.Name, &d.SubjectName, &due, &d.EstimatedHours,
		&d.Difficulty, &d.Priority, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid assignment id: %w", err)
	}
	ct, ut, err := timestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	d.DueDate = due.String
	return domain.RehydrateAssignment(uid, d, st, ct, ut), nil
}

// --- exams ---

const examColumns = `id, name, subject_name, exam_date, difficulty, past_score, chapters, recommended_hours, priority, created_at, updated_at`

// SQLiteExamRepository implements domain.ExamRepository using SQLite.
type SQLiteExamRepository struct {
	db *sql.DB
}

// NewSQLiteExamRepository creates a new SQLite exam repository.
func NewSQLiteExamRepository(db *sql.DB) *SQLiteExamRepository {
	return &SQLiteExamRepository{db: db}
}

// Save inserts or updates an exam.
func (r *SQLiteExamRepository) Save(ctx context.Context, e *domain.Exam) error {
	_, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO exams (`+examColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			subject_name = excluded.subject_name,
			exam_date = excluded.exam_date,
			difficulty = excluded.difficulty,
			past_score = excluded.past_score,
			chapters = excluded.chapters,
			recommended_hours = excluded.recommended_hours,
			priority = excluded.priority,
			updated_at = excluded.updated_at`,
		e.ID().String(), e.Name(), e.SubjectName(), nullString(e.ExamDate()), string(e.Difficulty()),
		nullFloat(e.PastScore()), e.Chapters(), e.RecommendedHours(), string(e.Priority()),
		sharedPersistence.FormatSQLiteTime(e.CreatedAt()), sharedPersistence.FormatSQLiteTime(e.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save exam: %w", err)
	}
	return nil
}

// FindByID retrieves an exam by its ID.
func (r *SQLiteExamRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	row := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = ?`, id.String())
	e, err := scanExam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrExamNotFound
	}
	return e, err
}

// FindAll returns every exam.
func (r *SQLiteExamRepository) FindAll(ctx context.Context) ([]*domain.Exam, error) {
	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx,
		`SELECT `+examColumns+` FROM exams ORDER BY exam_date IS NULL, exam_date, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes an exam.
func (r *SQLiteExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "exams", id, domain.ErrExamNotFound)
}

// DeleteAll removes every exam.
func (r *SQLiteExamRepository) DeleteAll(ctx context.Context) (int, error) {
	return deleteAll(ctx, r.db, "exams")
}

func scanExam(row rowScanner) (*domain.Exam, error) {
	var (
		id, createdAt, updatedAt string
		date                     sql.NullString
		score                    sql.NullFloat64
		d                        domain.ExamDetails
	)
	if err := row.Scan(&id, &d.Name, &d.SubjectName, &date, &d.Difficulty, &score,
		&d.Chapters, &d.RecommendedHours, &d.Priority, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid exam id: %w", err)
	}
	ct, ut, err := timestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	d.ExamDate = date.String
	d.PastScore = floatPtr(score)
	return domain.RehydrateExam(uid, d, ct, ut), nil
}

// --- subjects ---

const subjectColumns = `id, name, difficulty, exam_date, past_score, chapters, has_assignment, has_exam, last_week_hours, recommended_hours, priority, created_at, updated_at`

// SQLiteSubjectRepository implements domain.SubjectRepository using SQLite.
type SQLiteSubjectRepository struct {
	db *sql.DB
}

// NewSQLiteSubjectRepository creates a new SQLite subject repository.
func NewSQLiteSubjectRepository(db *sql.DB) *SQLiteSubjectRepository {
	return &SQLiteSubjectRepository{db: db}
}

// Save inserts or updates a subject.
func (r *SQLiteSubjectRepository) Save(ctx context.Context, s *domain.Subject) error {
	d := s.Details()
	_, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO subjects (`+subjectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			difficulty = excluded.difficulty,
			exam_date = excluded.exam_date,
			past_score = excluded.past_score,
			chapters = excluded.chapters,
			has_assignment = excluded.has_assignment,
			has_exam = excluded.has_exam,
			last_week_hours = excluded.last_week_hours,
			recommended_hours = excluded.recommended_hours,
			priority = excluded.priority,
			updated_at = excluded.updated_at`,
		s.ID().String(), d.Name, d.Difficulty, nullString(d.ExamDate), nullFloat(d.PastScore), d.Chapters,
		boolInt(d.HasAssignment), boolInt(d.HasExam), nullFloat(d.LastWeekHours), d.RecommendedHours, d.Priority,
		sharedPersistence.FormatSQLiteTime(s.CreatedAt()), sharedPersistence.FormatSQLiteTime(s.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save subject: %w", err)
	}
	return nil
}

// FindByID retrieves a subject by its ID.
func (r *SQLiteSubjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	row := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE id = ?`, id.String())
	s, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSubjectNotFound
	}
	return s, err
}

// FindAll returns every subject ordered by name.
func (r *SQLiteSubjectRepository) FindAll(ctx context.Context) ([]*domain.Subject, error) {
	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a subject.
func (r *SQLiteSubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "subjects", id, domain.ErrSubjectNotFound)
}

// DeleteAll removes every subject.
func (r *SQLiteSubjectRepository) DeleteAll(ctx context.Context) (int, error) {
	return deleteAll(ctx, r.db, "subjects")
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var (
		id, createdAt, updatedAt string
		date                     sql.NullString
		score, lastWeek          sql.NullFloat64
		hasAssignment, hasExam   int
		d                        domain.SubjectDetails
	)
	if err := row.Scan(&id, &d.Name, &d.Difficulty, &date, &score, &d.Chapters, &hasAssignment, &hasExam,
		&lastWeek, &d.RecommendedHours, &d.Priority, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid subject id: %w", err)
	}
	ct, ut, err := timestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	d.ExamDate = date.String
	d.PastScore = floatPtr(score)
	d.LastWeekHours = floatPtr(lastWeek)
	d.HasAssignment = hasAssignment != 0
	d.HasExam = hasExam != 0
	return domain.RehydrateSubject(uid, d, ct, ut), nil
}
