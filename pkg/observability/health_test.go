package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthRegistry_Check(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("refused") }

	t.Run("all healthy", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", PingChecker("database", HealthStatusUnhealthy, ok))

		report := r.Check(context.Background())

		assert.Equal(t, HealthStatusHealthy, report.Status)
		assert.Len(t, report.Checks, 1)
	})

	t.Run("degraded dependency", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", PingChecker("database", HealthStatusUnhealthy, ok))
		r.Register("redis", PingChecker("redis", HealthStatusDegraded, fail))

		report := r.Check(context.Background())

		assert.Equal(t, HealthStatusDegraded, report.Status)
		assert.Equal(t, "redis: refused", report.Checks["redis"].Message)
	})

	t.Run("unhealthy wins over degraded", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", PingChecker("database", HealthStatusUnhealthy, fail))
		r.Register("redis", PingChecker("redis", HealthStatusDegraded, fail))

		report := r.Check(context.Background())

		assert.Equal(t, HealthStatusUnhealthy, report.Status)
		data, err := report.JSON()
		assert.NoError(t, err)
		assert.Contains(t, string(data), `"status":"unhealthy"`)
	})
}
