package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ay-kasimov/shed/internal/datasync"
	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/settings"
	"github.com/ay-kasimov/shed/internal/testutil"
)

func putSetting(t *testing.T, env *testEnv, key, value string) (int, *settings.Setting) {
	t.Helper()
	var got settings.Setting
	resp, err := env.client.R().
		SetBody(map[string]string{"key": key, "value": value}).
		SetResult(&got).
		Put("/settings")
	require.NoError(t, err)
	return resp.StatusCode(), &got
}

func TestServer_Settings(t *testing.T) {
	env := newTestEnv(t)

	t.Run("starts empty", func(t *testing.T) {
		resp, err := env.client.R().
			SetResult(&[]settings.Setting{}).
			Get("/settings")
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode())
		assert.Empty(t, *resp.Result().(*[]settings.Setting))
	})

	t.Run("stores a daily goal", func(t *testing.T) {
		status, setting := putSetting(t, env, settings.KeyDailyGoal, "5")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, settings.KeyDailyGoal, setting.Key)
		assert.Equal(t, "5", setting.Value)

		resp, err := env.client.R().
			SetResult(&[]settings.Setting{}).
			Get("/settings")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
		assert.Len(t, *resp.Result().(*[]settings.Setting), 1)
	})

	t.Run("rejects a goal outside its range", func(t *testing.T) {
		status, _ := putSetting(t, env, settings.KeyDailyGoal, "99")
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = putSetting(t, env, settings.KeyWeeklyGoal, "0")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("rejects a non-numeric goal", func(t *testing.T) {
		status, _ := putSetting(t, env, settings.KeyWeeklyGoal, "lots")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("rejects a blank key", func(t *testing.T) {
		status, _ := putSetting(t, env, "   ", "5")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("rejects a garbage body", func(t *testing.T) {
		resp, err := env.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody("not json").
			Put("/settings")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	})

	t.Run("stores a free-form key", func(t *testing.T) {
		status, setting := putSetting(t, env, "theme", "dark")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "theme", setting.Key)
		assert.Equal(t, "dark", setting.Value)
	})
}

func TestServer_Sync(t *testing.T) {
	env := newTestEnv(t)
	testutil.WriteVideoFile(t, env.libraryDir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("video"))

	t.Run("dry run touches nothing", func(t *testing.T) {
		resp, err := env.client.R().
			SetResult(&datasync.Result{}).
			Post("/sync?dry_run=true")
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode())
		result := resp.Result().(*datasync.Result)
		assert.Equal(t, 1, result.Added)

		listResp, err := env.client.R().SetResult(&lesson.Page{}).Get("/lessons")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, listResp.StatusCode())
		assert.Equal(t, 0, listResp.Result().(*lesson.Page).Total)
	})

	t.Run("imports the library", func(t *testing.T) {
		resp, err := env.client.R().
			SetResult(&datasync.Result{}).
			Post("/sync")
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode())
		result := resp.Result().(*datasync.Result)
		assert.Equal(t, 1, result.Added)
		assert.Equal(t, 0, result.Errors)

		listResp, err := env.client.R().SetResult(&lesson.Page{}).Get("/lessons")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, listResp.StatusCode())
		assert.Equal(t, 1, listResp.Result().(*lesson.Page).Total)
	})

	t.Run("second pass is unchanged", func(t *testing.T) {
		resp, err := env.client.R().
			SetResult(&datasync.Result{}).
			Post("/sync")
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode())
		result := resp.Result().(*datasync.Result)
		assert.Equal(t, 0, result.Added)
		assert.Equal(t, 1, result.Unchanged)
	})

	t.Run("bad dry_run flag", func(t *testing.T) {
		resp, err := env.client.R().Post("/sync?dry_run=banana")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	})

	t.Run("unconfigured library directory", func(t *testing.T) {
		dir := env.cfg.Library.Directory
		env.cfg.Library.Directory = ""
		t.Cleanup(func() { env.cfg.Library.Directory = dir })

		resp, err := env.client.R().Post("/sync")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	})
}

func TestServer_Export(t *testing.T) {
	env := newTestEnv(t)
	env.seedLesson(t, "hash-voicings", "Julian Lage", "Voicings", lesson.StatusCompleted, nil)

	var bundle map[string]any
	resp, err := env.client.R().SetResult(&bundle).Get("/export")
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode())
	disposition := resp.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "practice-stats-")
	assert.Contains(t, disposition, time.Now().Format("2006-01-02"))

	require.Contains(t, bundle, "exported_at")
	require.Contains(t, bundle, "library_stats")
	require.Contains(t, bundle, "streak")
	require.Contains(t, bundle, "personal_records")
	stats, ok := bundle["library_stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, stats["total"])
	assert.EqualValues(t, 1, stats["completed"])
}
