package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	courseworkCommands "github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	courseworkQueries "github.com/felixgeelhaar/studyplanner/internal/coursework/application/queries"
	courseworkDomain "github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	estimationServices "github.com/felixgeelhaar/studyplanner/internal/estimation/application/services"
	estimationDomain "github.com/felixgeelhaar/studyplanner/internal/estimation/domain"
	"github.com/felixgeelhaar/studyplanner/internal/estimation/infrastructure/csvdata"
	notificationCommands "github.com/felixgeelhaar/studyplanner/internal/notifications/application/commands"
	notificationQueries "github.com/felixgeelhaar/studyplanner/internal/notifications/application/queries"
	notificationSubs "github.com/felixgeelhaar/studyplanner/internal/notifications/application/subscribers"
	notificationsDomain "github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	planningCommands "github.com/felixgeelhaar/studyplanner/internal/planning/application/commands"
	planningQueries "github.com/felixgeelhaar/studyplanner/internal/planning/application/queries"
	planningServices "github.com/felixgeelhaar/studyplanner/internal/planning/application/services"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	planningCache "github.com/felixgeelhaar/studyplanner/internal/planning/infrastructure/cache"
	planningCalendar "github.com/felixgeelhaar/studyplanner/internal/planning/infrastructure/calendar"
	planningCoursework "github.com/felixgeelhaar/studyplanner/internal/planning/infrastructure/coursework"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database/postgres"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/studyplanner/pkg/config"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Options tune how NewContainer wires optional collaborators.
type Options struct {
	// Metrics receives handler metrics. Nil disables them.
	Metrics observability.Metrics
	// Clock fixes "today" for planning, reminders and subject priorities.
	Clock planningDomain.Clock
	// LocalEvents delivers outbox events to in-process subscribers when
	// FlushEvents is called. The CLI enables it; the worker publishes to
	// RabbitMQ instead.
	LocalEvents bool
}

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics
	Clock   planningDomain.Clock

	// Database
	Driver database.Driver
	DB     *sql.DB
	Pool   *pgxpool.Pool

	// Redis
	RedisClient *redis.Client

	// Repositories
	AssignmentRepo   courseworkDomain.AssignmentRepository
	ExamRepo         courseworkDomain.ExamRepository
	SubjectRepo      courseworkDomain.SubjectRepository
	PlanRepo         planningDomain.PlanRepository
	NotificationRepo notificationsDomain.Repository
	OutboxRepo       outbox.Repository

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Planning services
	CourseworkReader *planningCoursework.Reader
	Scheduler        *planningServices.Scheduler
	ClashDetector    *planningServices.ClashDetector
	PlanCache        planningDomain.PlanCache
	ICSEncoder       *planningCalendar.ICSEncoder
	CalendarSyncer   planningDomain.CalendarSyncer

	// Estimation
	Estimator *estimationServices.Estimator

	// Coursework handlers
	AssignmentHandler *courseworkCommands.AssignmentHandler
	ExamHandler       *courseworkCommands.ExamHandler
	SubjectHandler    *courseworkCommands.SubjectHandler
	CourseworkQueries *courseworkQueries.Handler

	// Planning handlers
	GeneratePlanHandler  *planningCommands.GeneratePlanHandler
	ClearPlanHandler     *planningCommands.ClearPlanHandler
	SyncCalendarHandler  *planningCommands.SyncCalendarHandler
	GetWeeklyPlanHandler *planningQueries.GetWeeklyPlanHandler
	ExportPlanHandler    *planningQueries.ExportPlanHandler

	// Notification handlers
	DetectClashesHandler     *notificationCommands.DetectClashesHandler
	GenerateRemindersHandler *notificationCommands.GenerateRemindersHandler
	ManageNotifications      *notificationCommands.ManageHandler
	NotificationQueries      *notificationQueries.Handler

	// Subscribers
	ClashSubscriber *notificationSubs.ClashSubscriber
	EventBus        *eventbus.InProcessEventBus

	// Admin
	ClearAllHandler *ClearAllHandler

	localOutbox *outbox.Processor
}

// NewContainer opens the configured database, applies migrations and wires
// every handler. An empty DATABASE_URL selects local SQLite mode.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NoopMetrics{}
	}
	if opts.Clock == nil {
		opts.Clock = planningDomain.SystemClock
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: opts.Metrics,
		Clock:   opts.Clock,
		Driver:  database.DetectDriver(cfg.DatabaseURL),
	}

	factory, err := c.openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.wireRepositories(factory); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.wireServices(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.wireHandlers()

	if opts.LocalEvents {
		c.EventBus = eventbus.NewInProcessEventBus(logger)
		c.EventBus.RegisterConsumer(c.ClashSubscriber)
		c.localOutbox = outbox.NewProcessor(c.OutboxRepo, c.EventBus, c.outboxConfig(), c.Metrics, logger)
	}

	return c, nil
}

func (c *Container) openDatabase(ctx context.Context) (*RepositoryFactory, error) {
	switch c.Driver {
	case database.DriverPostgres:
		pool, err := postgres.Open(ctx, c.Config.DatabaseURL, c.Config.DatabaseMaxConns)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		c.Pool = pool
		c.Logger.Info("connected to database", "driver", c.Driver)
		return NewPostgresRepositoryFactory(pool), nil

	case database.DriverSQLite:
		path := c.Config.SQLitePath
		if c.Config.DatabaseURL != "" {
			path = strings.TrimPrefix(c.Config.DatabaseURL, "sqlite://")
		}
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		c.DB = db
		c.Logger.Debug("opened local database", "driver", c.Driver, "path", path)
		return NewSQLiteRepositoryFactory(db), nil

	default:
		return nil, fmt.Errorf("unsupported driver: %s", c.Driver)
	}
}

func (c *Container) wireRepositories(f *RepositoryFactory) error {
	var err error
	if c.AssignmentRepo, err = f.AssignmentRepository(); err != nil {
		return err
	}
	if c.ExamRepo, err = f.ExamRepository(); err != nil {
		return err
	}
	if c.SubjectRepo, err = f.SubjectRepository(); err != nil {
		return err
	}
	if c.PlanRepo, err = f.PlanRepository(); err != nil {
		return err
	}
	if c.NotificationRepo, err = f.NotificationRepository(); err != nil {
		return err
	}
	if c.OutboxRepo, err = f.OutboxRepository(); err != nil {
		return err
	}
	c.UnitOfWork, err = f.UnitOfWork()
	return err
}

func (c *Container) wireServices(ctx context.Context) error {
	cfg := c.Config

	c.CourseworkReader = planningCoursework.NewReader(c.AssignmentRepo, c.ExamRepo, c.SubjectRepo)
	c.ClashDetector = planningServices.NewClashDetector()
	c.Scheduler = planningServices.NewScheduler(
		planningServices.DefaultSchedulerConfig(),
		planningServices.NewRulesEngine(c.Clock),
		c.ClashDetector,
		c.Logger,
	)

	// Plan cache (Redis optional in development)
	c.PlanCache = planningCache.NewMemoryPlanCache(cfg.PlanCacheTTL)
	if cfg.RedisURL != "" {
		client, err := planningCache.NewRedisClient(ctx, cfg.RedisURL)
		switch {
		case err == nil:
			c.RedisClient = client
			c.PlanCache = planningCache.NewRedisPlanCache(client, "studyplanner", cfg.PlanCacheTTL)
			c.Logger.Info("connected to Redis")
		case cfg.IsDevelopment():
			c.Logger.Warn("Redis not available, plan cache will use in-memory fallback", "error", err)
		default:
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}

	c.ICSEncoder = planningCalendar.NewICSEncoder(time.Local)
	if cfg.CalDAVEnabled() {
		syncer := planningCalendar.NewCalDAVSyncer(cfg.CalDAVURL, cfg.CalDAVUsername, cfg.CalDAVPassword, c.ICSEncoder, c.Logger)
		if cfg.CalDAVCalendar != "" {
			syncer = syncer.WithCalendarPath(cfg.CalDAVCalendar)
		}
		c.CalendarSyncer = syncer
	}

	var samples []estimationDomain.Sample
	if cfg.ModelTrainingCSV != "" {
		loaded, err := csvdata.LoadFile(cfg.ModelTrainingCSV)
		if err != nil {
			return fmt.Errorf("failed to load training data: %w", err)
		}
		samples = loaded
	}
	c.Estimator = estimationServices.NewEstimator(samples, c.Logger, c.Metrics)
	return nil
}

func (c *Container) wireHandlers() {
	// Coursework
	c.AssignmentHandler = courseworkCommands.NewAssignmentHandler(c.AssignmentRepo, c.OutboxRepo, c.UnitOfWork, c.Logger)
	c.ExamHandler = courseworkCommands.NewExamHandler(c.ExamRepo, c.OutboxRepo, c.UnitOfWork, c.Logger)
	c.SubjectHandler = courseworkCommands.NewSubjectHandler(c.SubjectRepo, c.OutboxRepo, c.UnitOfWork, c.Estimator, c.Clock, c.Logger)
	c.CourseworkQueries = courseworkQueries.NewHandler(c.AssignmentRepo, c.ExamRepo, c.SubjectRepo)

	// Planning
	c.GeneratePlanHandler = planningCommands.NewGeneratePlanHandler(
		c.CourseworkReader,
		c.Scheduler,
		c.PlanRepo,
		c.OutboxRepo,
		c.UnitOfWork,
		c.PlanCache,
		c.Clock,
		c.Metrics,
		c.Logger,
	)
	c.ClearPlanHandler = planningCommands.NewClearPlanHandler(c.PlanRepo, c.OutboxRepo, c.UnitOfWork, c.PlanCache, c.Logger)
	c.SyncCalendarHandler = planningCommands.NewSyncCalendarHandler(c.PlanRepo, c.CalendarSyncer, c.Logger)
	c.GetWeeklyPlanHandler = planningQueries.NewGetWeeklyPlanHandler(c.PlanRepo, c.CourseworkReader, c.PlanCache, c.Logger)
	c.ExportPlanHandler = planningQueries.NewExportPlanHandler(c.PlanRepo, c.ICSEncoder)

	// Notifications
	c.DetectClashesHandler = notificationCommands.NewDetectClashesHandler(
		c.CourseworkReader,
		c.Scheduler,
		c.ClashDetector,
		c.NotificationRepo,
		c.OutboxRepo,
		c.UnitOfWork,
		c.Metrics,
		c.Logger,
	)
	c.GenerateRemindersHandler = notificationCommands.NewGenerateRemindersHandler(
		c.CourseworkReader,
		c.NotificationRepo,
		c.OutboxRepo,
		c.UnitOfWork,
		c.Clock,
		c.Metrics,
		c.Logger,
	)
	c.ManageNotifications = notificationCommands.NewManageHandler(c.NotificationRepo, c.Logger)
	c.NotificationQueries = notificationQueries.NewHandler(c.NotificationRepo, c.CourseworkReader, c.Scheduler, c.ClashDetector)
	c.ClashSubscriber = notificationSubs.NewClashSubscriber(c.DetectClashesHandler, c.Logger)

	// Admin
	c.ClearAllHandler = NewClearAllHandler(
		c.UnitOfWork,
		c.AssignmentRepo,
		c.ExamRepo,
		c.SubjectRepo,
		c.PlanRepo,
		c.NotificationRepo,
		c.PlanCache,
		c.Logger,
	)
}

func (c *Container) outboxConfig() outbox.ProcessorConfig {
	cfg := outbox.DefaultProcessorConfig()
	if c.Config.OutboxPollInterval > 0 {
		cfg.PollInterval = c.Config.OutboxPollInterval
	}
	if c.Config.OutboxBatchSize > 0 {
		cfg.BatchSize = c.Config.OutboxBatchSize
	}
	if c.Config.OutboxMaxRetries > 0 {
		cfg.MaxRetries = c.Config.OutboxMaxRetries
	}
	cfg.RetentionDays = c.Config.OutboxRetentionDays
	cfg.CleanupInterval = c.Config.OutboxCleanupInterval
	return cfg
}

// OutboxConfig returns the processor settings derived from the configuration.
func (c *Container) OutboxConfig() outbox.ProcessorConfig {
	return c.outboxConfig()
}

// FlushEvents delivers pending outbox events to in-process subscribers.
// It is a no-op unless the container was built with LocalEvents.
func (c *Container) FlushEvents(ctx context.Context) error {
	if c.localOutbox == nil {
		return nil
	}
	return c.localOutbox.ProcessOnce(ctx)
}

// HealthChecks returns dependency checks for the worker's health endpoint.
func (c *Container) HealthChecks() *observability.HealthRegistry {
	registry := observability.NewHealthRegistry()
	switch {
	case c.Pool != nil:
		registry.Register("database", observability.PingChecker("database", observability.HealthStatusUnhealthy, c.Pool.Ping))
	case c.DB != nil:
		registry.Register("database", observability.PingChecker("database", observability.HealthStatusUnhealthy, c.DB.PingContext))
	}
	if c.RedisClient != nil {
		registry.Register("redis", observability.PingChecker("redis", observability.HealthStatusDegraded, func(ctx context.Context) error {
			return c.RedisClient.Ping(ctx).Err()
		}))
	}
	return registry
}

// Close releases all resources.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close Redis client", "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("failed to close database", "error", err)
		}
	}
}
