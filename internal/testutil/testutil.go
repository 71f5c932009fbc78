// Package testutil provides shared test helpers for config files, throwaway
// databases and video-library fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ay-kasimov/shed/internal/config"
	"github.com/ay-kasimov/shed/internal/database"
)

// NewDB opens a migrated throwaway SQLite database in a temp directory and
// closes it when the test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "shed.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

// SetupTestConfig creates a library directory, a reports directory and a
// config file pointing at both. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	libraryDir := filepath.Join(tmpDir, "videos")
	reportsDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.MkdirAll(libraryDir, 0755))
	require.NoError(t, os.MkdirAll(reportsDir, 0755))

	configContent := fmt.Sprintf(`library:
  directory: %s
  video_extensions:
    - .mp4
database:
  path: %s
cache:
  ttl_seconds: 5
server:
  port: 8080
outputs:
  report_directory: %s
`,
		libraryDir,
		filepath.Join(tmpDir, "shed.db"),
		reportsDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteVideoFile writes a library file with the given content. Distinct
// content yields a distinct fingerprint.
func WriteVideoFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// WriteSubtitleFile writes an .srt sidecar for the given base name.
func WriteSubtitleFile(t *testing.T, dir, baseName, body string) string {
	t.Helper()

	path := filepath.Join(dir, baseName+".srt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// Touch rewrites a file's modification time.
func Touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()

	require.NoError(t, os.Chtimes(path, mtime, mtime))
}
