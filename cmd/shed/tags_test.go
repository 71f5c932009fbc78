package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagsCommand(t *testing.T) {
	cmd := newTagsCommand()

	assert.Equal(t, "tags", cmd.Use)
	assert.Equal(t, "Manage lesson tags", cmd.Short)
	assert.True(t, cmd.HasSubCommands())
}

func TestNewTagsCreateCommand(t *testing.T) {
	useTestConfig(t)

	out, err := executeCommand(t, newTagsCreateCommand(), "jazz")
	require.NoError(t, err)
	assert.Contains(t, out, `Created tag "jazz"`)

	out, err = executeCommand(t, newTagsCreateCommand(), "jazz")
	require.NoError(t, err)
	assert.Contains(t, out, `Tag "jazz" already exists`)
}

func TestNewTagsListCommand(t *testing.T) {
	muteColor(t)
	useTestConfig(t)

	out, err := executeCommand(t, newTagsListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "No tags yet.")

	_, err = executeCommand(t, newTagsCreateCommand(), "jazz")
	require.NoError(t, err)

	out, err = executeCommand(t, newTagsListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "jazz (0)")
}

func TestNewTagsAttachCommand(t *testing.T) {
	muteColor(t)
	tmpDir := useTestConfig(t)
	importSampleLesson(t, tmpDir)
	_, err := executeCommand(t, newTagsCreateCommand(), "jazz")
	require.NoError(t, err)

	out, err := executeCommand(t, newTagsAttachCommand(), "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Tagged "Voicings" with "jazz"`)

	out, err = executeCommand(t, newTagsAttachCommand(), "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"Voicings" already carries "jazz"`)

	out, err = executeCommand(t, newTagsListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "jazz (1)")
}

func TestNewTagsAttachCommand_MissingLesson(t *testing.T) {
	useTestConfig(t)

	_, err := executeCommand(t, newTagsAttachCommand(), "99", "1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "lesson 99 not found")
}

func TestNewTagsAttachCommand_MissingTag(t *testing.T) {
	tmpDir := useTestConfig(t)
	importSampleLesson(t, tmpDir)

	_, err := executeCommand(t, newTagsAttachCommand(), "1", "99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tag 99 not found")
}

func TestNewTagsDetachCommand(t *testing.T) {
	tmpDir := useTestConfig(t)
	importSampleLesson(t, tmpDir)
	_, err := executeCommand(t, newTagsCreateCommand(), "jazz")
	require.NoError(t, err)
	_, err = executeCommand(t, newTagsAttachCommand(), "1", "1")
	require.NoError(t, err)

	out, err := executeCommand(t, newTagsDetachCommand(), "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed tag 1 from lesson 1")

	out, err = executeCommand(t, newTagsDetachCommand(), "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Lesson 1 does not carry tag 1")
}

func TestNewTagsDeleteCommand(t *testing.T) {
	muteColor(t)
	useTestConfig(t)
	_, err := executeCommand(t, newTagsCreateCommand(), "jazz")
	require.NoError(t, err)

	out, err := executeCommand(t, newTagsDeleteCommand(), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted tag 1")

	out, err = executeCommand(t, newTagsListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "No tags yet.")
}

func TestNewTagsDeleteCommand_BadID(t *testing.T) {
	_, err := executeCommand(t, newTagsDeleteCommand(), "abc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tag id must be an integer")
}

func TestNewTagsImportCommand(t *testing.T) {
	useTestConfig(t)

	taxonomyPath := filepath.Join(t.TempDir(), "taxonomy.yml")
	taxonomy := "tags:\n  - name: jazz\n  - name: bebop\n"
	require.NoError(t, os.WriteFile(taxonomyPath, []byte(taxonomy), 0644))

	out, err := executeCommand(t, newTagsImportCommand(), taxonomyPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported tags: 2 new, 0 already present")

	out, err = executeCommand(t, newTagsImportCommand(), taxonomyPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported tags: 0 new, 2 already present")
}

func TestNewTagsImportCommand_MissingFile(t *testing.T) {
	useTestConfig(t)

	_, err := executeCommand(t, newTagsImportCommand(), filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
