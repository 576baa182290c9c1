package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeSQLite_RunsMigrations(t *testing.T) {
	db, err := InitializeSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"feedback", "audit_log", "migrations"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)

	// Running again is a no-op
	require.NoError(t, RunMigrations(db))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRunMigrations_OrderAndFailure(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "order.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/002_insert.sql": {Data: []byte("INSERT INTO things (v) VALUES ('x');")},
		"m/001_create.sql": {Data: []byte("CREATE TABLE things (v TEXT);")},
		"m/003_broken.sql": {Data: []byte("INSERT INTO missing_table VALUES (1);")},
	}

	err = runMigrations(db, fsys, "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "003_broken.sql")

	var v string
	require.NoError(t, db.QueryRow("SELECT v FROM things").Scan(&v))
	assert.Equal(t, "x", v)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count, "failed migration must not be recorded")
}

func TestLoadMigrations_Empty(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{}, "m")
	assert.Error(t, err)
}
