package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/ay-kasimov/shed/internal/testutil"
)

// useTestConfig points the package-level config flag at a throwaway config
// file and returns the directory it lives in. The library directory is
// <dir>/videos and the database is <dir>/shed.db.
func useTestConfig(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	old := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = old })
	return tmpDir
}

func useBrokenConfig(t *testing.T) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("library: [not a mapping"), 0644))
	old := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = old })
}

func muteColor(t *testing.T) {
	t.Helper()

	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

// importSampleLesson drops one video into the configured library and syncs
// it in. The lesson lands as id 1 on a fresh database.
func importSampleLesson(t *testing.T, tmpDir string) {
	t.Helper()

	testutil.WriteVideoFile(t, filepath.Join(tmpDir, "videos"), "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))
	_, err := executeCommand(t, newSyncCommand())
	require.NoError(t, err)
}
