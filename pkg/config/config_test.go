package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "DATABASE_URL", "SQLITE_PATH", "DATABASE_MAX_CONNS",
		"REDIS_URL", "PLAN_CACHE_TTL", "RABBITMQ_URL",
		"PLAN_HOURS_PER_DAY", "PLAN_INCLUDE_SUBJECTS", "REMINDER_CHECK_INTERVAL",
		"MODEL_TRAINING_CSV", "CALDAV_URL", "CALDAV_USERNAME", "CALDAV_PASSWORD", "CALDAV_CALENDAR",
		"OUTBOX_POLL_INTERVAL", "OUTBOX_BATCH_SIZE", "OUTBOX_MAX_RETRIES",
		"OUTBOX_RETENTION_DAYS", "OUTBOX_CLEANUP_INTERVAL", "OUTBOX_PROCESSOR_ENABLED",
		"PUBLISHER_BREAKER_FAILURES", "PUBLISHER_BREAKER_TIMEOUT", "WORKER_HEALTH_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.LocalMode())
	assert.Contains(t, cfg.SQLitePath, "planner.db")
	assert.Equal(t, 4.0, cfg.PlanHoursPerDay)
	assert.False(t, cfg.PlanIncludeSubjects)
	assert.Equal(t, 10*time.Minute, cfg.PlanCacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, 5, cfg.OutboxMaxRetries)
	assert.True(t, cfg.OutboxProcessorEnabled)
	assert.Equal(t, 5, cfg.PublisherBreakerFailures)
	assert.False(t, cfg.CalDAVEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://planner@localhost:5432/planner")
	t.Setenv("PLAN_HOURS_PER_DAY", "5.5")
	t.Setenv("PLAN_INCLUDE_SUBJECTS", "true")
	t.Setenv("PLAN_CACHE_TTL", "1m")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")
	t.Setenv("CALDAV_URL", "https://dav.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.LocalMode())
	assert.Equal(t, 5.5, cfg.PlanHoursPerDay)
	assert.True(t, cfg.PlanIncludeSubjects)
	assert.Equal(t, time.Minute, cfg.PlanCacheTTL)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
	assert.True(t, cfg.CalDAVEnabled())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLAN_HOURS_PER_DAY", "lots")
	t.Setenv("OUTBOX_MAX_RETRIES", "many")
	t.Setenv("OUTBOX_PROCESSOR_ENABLED", "sometimes")
	t.Setenv("PLAN_CACHE_TTL", "forever")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4.0, cfg.PlanHoursPerDay)
	assert.Equal(t, 5, cfg.OutboxMaxRetries)
	assert.True(t, cfg.OutboxProcessorEnabled)
	assert.Equal(t, 10*time.Minute, cfg.PlanCacheTTL)
}
