// Package clitest builds a CLI app on a throwaway SQLite database for command tests.
package clitest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	internalApp "github.com/felixgeelhaar/studyplanner/internal/app"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/felixgeelhaar/studyplanner/pkg/config"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// Today is the date the test clock is pinned to.
var Today = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

// NewApp creates a local-mode app and installs it as the global CLI app
// for the duration of the test.
func NewApp(t testing.TB) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:          "test",
		LogLevel:        "error",
		SQLitePath:      filepath.Join(t.TempDir(), "planner.db"),
		PlanCacheTTL:    time.Minute,
		PlanHoursPerDay: 4,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger, internalApp.Options{
		Metrics:     observability.NewInMemoryMetrics(),
		Clock:       planningDomain.FixedClock(Today),
		LocalEvents: true,
	})
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() {
		cli.SetApp(nil)
		cli.SetJSONOutput(false)
	})
	return app
}

// Run executes cmd's RunE with args and returns what it printed.
func Run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

// SetFlags sets flags on cmd as if they were given on the command line.
func SetFlags(t testing.TB, cmd *cobra.Command, values map[string]string) {
	t.Helper()
	for name, value := range values {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
}
