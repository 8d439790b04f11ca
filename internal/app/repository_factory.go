package app

import (
	"database/sql"
	"fmt"

	courseworkDomain "github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	courseworkPersistence "github.com/felixgeelhaar/studyplanner/internal/coursework/infrastructure/persistence"
	notificationsDomain "github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	notificationsPersistence "github.com/felixgeelhaar/studyplanner/internal/notifications/infrastructure/persistence"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	planningPersistence "github.com/felixgeelhaar/studyplanner/internal/planning/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/persistence"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	driver database.Driver
	db     *sql.DB
	pool   *pgxpool.Pool
}

// NewSQLiteRepositoryFactory creates a factory for a local SQLite database.
func NewSQLiteRepositoryFactory(db *sql.DB) *RepositoryFactory {
	return &RepositoryFactory{driver: database.DriverSQLite, db: db}
}

// NewPostgresRepositoryFactory creates a factory for a PostgreSQL pool.
func NewPostgresRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{driver: database.DriverPostgres, pool: pool}
}

// Driver returns the configured driver.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}

// AssignmentRepository creates an assignment repository for the configured driver.
func (f *RepositoryFactory) AssignmentRepository() (courseworkDomain.AssignmentRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return courseworkPersistence.NewPostgresAssignmentRepository(f.pool), nil
	case database.DriverSQLite:
		return courseworkPersistence.NewSQLiteAssignmentRepository(f.db), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// ExamRepository creates an exam repository for the configured driver.
func (f *RepositoryFactory) ExamRepository() (courseworkDomain.ExamRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return courseworkPersistence.NewPostgresExamRepository(f.pool), nil
	case database.DriverSQLite:
		return courseworkPersistence.NewSQLiteExamRepository(f.db), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// SubjectRepository creates a subject repository for the configured driver.
func (f *RepositoryFactory) SubjectRepository() (courseworkDomain.SubjectRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return courseworkPersistence.NewPostgresSubjectRepository(f.pool), nil
	case database.DriverSQLite:
		return courseworkPersistence.NewSQLiteSubjectRepository(f.db), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// PlanRepository creates a plan repository for the configured driver.
func (f *RepositoryFactory) PlanRepository() (planningDomain.PlanRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return planningPersistence.NewPostgresPlanRepository(f.pool), nil
	case database.DriverSQLite:
		return planningPersistence.NewSQLitePlanRepository(f.db), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// NotificationRepository creates a notification repository for the configured driver.
func (f *RepositoryFactory) NotificationRepository() (notificationsDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return notificationsPersistence.NewPostgresRepository(f.pool), nil
	case database.DriverSQLite:
		return notificationsPersistence.NewSQLiteRepository(f.db), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// OutboxRepository creates an outbox repository for the configured driver.
func (f *RepositoryFactory) OutboxRepository() (outbox.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return outbox.NewPostgresRepository(f.pool), nil
	case database.DriverSQLite:
		return outbox.NewSQLiteRepository(f.db), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// UnitOfWork creates a unit of work for the configured driver.
func (f *RepositoryFactory) UnitOfWork() (sharedApplication.UnitOfWork, error) {
	switch f.driver {
	case database.DriverPostgres:
		return sharedPersistence.NewPostgresUnitOfWork(f.pool), nil
	case database.DriverSQLite:
		return sharedPersistence.NewSQLiteUnitOfWork(f.db), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}
