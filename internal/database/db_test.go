package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ay-kasimov/shed/internal/config"
)

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shed.db")

	got, err := Open(config.DatabaseConfig{Path: dbPath})
	require.NoError(t, err)
	require.NotNil(t, got)
	defer got.Close()

	assert.Equal(t, "sqlite", got.DriverName())
	assert.FileExists(t, dbPath)

	var journalMode string
	require.NoError(t, got.Get(&journalMode, "PRAGMA journal_mode"))
	assert.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, got.Get(&foreignKeys, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, foreignKeys)
}

func TestOpen_Migrates(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shed.db")

	got, err := Open(config.DatabaseConfig{Path: dbPath})
	require.NoError(t, err)
	defer got.Close()

	for _, table := range []string{"lessons", "tags", "lesson_tags", "user_settings", "personal_records", "streak_history"} {
		var name string
		err := got.Get(&name, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shed.db")

	first, err := Open(config.DatabaseConfig{Path: dbPath})
	require.NoError(t, err)
	_, err = first.Exec("INSERT INTO user_settings (key, value) VALUES ('daily_goal', '5')")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Migrations are IF NOT EXISTS, reopening must keep the data.
	second, err := Open(config.DatabaseConfig{Path: dbPath})
	require.NoError(t, err)
	defer second.Close()

	var value string
	require.NoError(t, second.Get(&value, "SELECT value FROM user_settings WHERE key = 'daily_goal'"))
	assert.Equal(t, "5", value)
}
