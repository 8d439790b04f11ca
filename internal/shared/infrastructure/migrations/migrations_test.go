package migrations

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SortsAndFiltersUpFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_b.up.sql":   {Data: []byte("B")},
		"m/001_a.up.sql":   {Data: []byte("A")},
		"m/001_a.down.sql": {Data: []byte("X")},
		"m/README.md":      {Data: []byte("doc")},
	}

	got, err := Load(fsys, "m")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "001_a", got[0].Version)
	assert.Equal(t, "A", got[0].SQL)
	assert.Equal(t, "002_b", got[1].Version)
}

func TestEmbeddedMigrations_MatchAcrossDrivers(t *testing.T) {
	lite, err := Load(sqliteFS, "sqlite")
	require.NoError(t, err)
	pg, err := Load(postgresFS, "postgres")
	require.NoError(t, err)

	require.Equal(t, len(lite), len(pg))
	for i := range lite {
		assert.Equal(t, lite[i].Version, pg[i].Version)
	}
}

func TestRunSQLiteMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunSQLiteMigrations(ctx, db))
	require.NoError(t, RunSQLiteMigrations(ctx, db))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 4, count)

	for _, table := range []string{"assignments", "exams", "subjects", "plan_slots", "notifications", "outbox"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}
