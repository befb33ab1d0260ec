package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ghostquant.db")

	db, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 1, count)

	_, err = db.Exec("INSERT INTO heatmap_snapshots (id, source, captured_at, global_risk) VALUES ('s1', 'live', 1, 0.5)")
	require.NoError(t, err)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghostquant.db")

	db, err := Open(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, NewMigrationManager(db).RunMigrations())
	db.Close()

	db, err = Open(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 1, count)
}
