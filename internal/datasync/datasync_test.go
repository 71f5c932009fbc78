package datasync

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ay-kasimov/shed/internal/cache"
	"github.com/ay-kasimov/shed/internal/lesson"
	mock_lesson "github.com/ay-kasimov/shed/internal/mocks/lesson"
	"github.com/ay-kasimov/shed/internal/testutil"
)

var videoExtensions = []string{".mp4"}

const sampleSubtitle = `1
00:00:01,000 --> 00:00:03,000
Welcome to the shed.

2
00:00:04,500 --> 00:00:07,000
Start with the major scale.
`

func setupSyncer(t *testing.T) (*Syncer, lesson.Repository, *cache.Cache, *bytes.Buffer, string) {
	t.Helper()

	db := testutil.NewDB(t)
	repo := lesson.NewDBRepository(db)
	c := cache.New(time.Minute)
	var out bytes.Buffer
	return NewSyncer(repo, c, &out), repo, c, &out, t.TempDir()
}

func TestSyncer_Sync_NewLessons(t *testing.T) {
	ctx := context.Background()
	syncer, repo, c, out, dir := setupSyncer(t)

	testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))
	testutil.WriteVideoFile(t, dir, "Mick Goodrick - The Advancing Guitarist 10-01-2024.mp4", []byte("advancing"))
	testutil.WriteVideoFile(t, dir, "no-date-here.mp4", []byte("junk"))
	testutil.WriteVideoFile(t, dir, "notes.txt", []byte("not a video"))

	c.Set("stats", 1)
	got, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{Added: 2, Errors: 1}, got)

	states, err := repo.FindSyncStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)
	for _, state := range states {
		assert.Equal(t, lesson.StatusNew, state.Status)
	}

	var lage *lesson.SyncState
	for _, state := range states {
		if state.Filename == "Julian Lage - Voicings 03-01-2024.mp4" {
			s := state
			lage = &s
		}
	}
	require.NotNil(t, lage)
	stored, err := repo.FindByID(ctx, lage.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Julian Lage", stored.Author)
	assert.Equal(t, "Voicings", stored.Title)
	assert.Equal(t, 2024, stored.LessonDate.Year())

	assert.Contains(t, out.String(), `[NEW]  "Julian Lage - Voicings 03-01-2024.mp4"`)
	assert.Contains(t, out.String(), `[ERROR]  "no-date-here.mp4"`)
	assert.NotContains(t, out.String(), "notes.txt")

	_, ok := c.Get("stats")
	assert.False(t, ok, "a sync that added lessons should invalidate the cache")
}

func TestSyncer_Sync_Idempotent(t *testing.T) {
	ctx := context.Background()
	syncer, _, c, out, dir := setupSyncer(t)

	testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))
	testutil.WriteVideoFile(t, dir, "Mick Goodrick - Cycles 10-01-2024.mp4", []byte("cycles"))

	first, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{Added: 2}, first)

	out.Reset()
	c.Set("stats", 1)
	second, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{Unchanged: 2}, second)
	assert.Empty(t, out.String())

	_, ok := c.Get("stats")
	assert.True(t, ok, "a no-op sync should leave the cache alone")
}

func TestSyncer_Sync_DetectsChanges(t *testing.T) {
	ctx := context.Background()

	t.Run("renamed file keeps its identity and status", func(t *testing.T) {
		syncer, repo, _, out, dir := setupSyncer(t)
		testutil.WriteVideoFile(t, dir, "Julian Lage - Vocings 03-01-2024.mp4", []byte("voicings"))

		_, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
		require.NoError(t, err)
		states, err := repo.FindSyncStates(ctx)
		require.NoError(t, err)
		require.Len(t, states, 1)
		var before lesson.SyncState
		for _, state := range states {
			before = state
		}
		require.NoError(t, repo.UpdateStatus(ctx, before.ID, lesson.StatusInProgress))

		require.NoError(t, os.Rename(
			filepath.Join(dir, "Julian Lage - Vocings 03-01-2024.mp4"),
			filepath.Join(dir, "Julian Lage - Voicings 03-01-2024.mp4"),
		))

		out.Reset()
		got, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
		require.NoError(t, err)
		assert.Equal(t, &Result{Updated: 1}, got)
		assert.Contains(t, out.String(), `[UPDATE]  "Julian Lage - Voicings 03-01-2024.mp4"`)

		states, err = repo.FindSyncStates(ctx)
		require.NoError(t, err)
		require.Len(t, states, 1)
		for _, state := range states {
			assert.Equal(t, before.ID, state.ID)
			assert.Equal(t, "Julian Lage - Voicings 03-01-2024.mp4", state.Filename)
			assert.Equal(t, lesson.StatusInProgress, state.Status)
		}
	})

	t.Run("modified mtime triggers an update", func(t *testing.T) {
		syncer, _, _, _, dir := setupSyncer(t)
		path := testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))

		_, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
		require.NoError(t, err)

		testutil.Touch(t, path, time.Now().Add(-48*time.Hour))
		got, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
		require.NoError(t, err)
		assert.Equal(t, &Result{Updated: 1}, got)
	})

	t.Run("recovered transcript triggers an update", func(t *testing.T) {
		syncer, repo, _, _, dir := setupSyncer(t)
		testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))

		_, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
		require.NoError(t, err)

		testutil.WriteSubtitleFile(t, dir, "Julian Lage - Voicings 03-01-2024", sampleSubtitle)
		got, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
		require.NoError(t, err)
		assert.Equal(t, &Result{Updated: 1}, got)

		states, err := repo.FindSyncStates(ctx)
		require.NoError(t, err)
		for _, state := range states {
			require.NotNil(t, state.Transcript)
			assert.Equal(t, "Welcome to the shed. Start with the major scale.", *state.Transcript)
		}

		// The sidecar is already stored, so the next run is a no-op.
		again, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
		require.NoError(t, err)
		assert.Equal(t, &Result{Unchanged: 1}, again)
	})
}

func TestSyncer_Sync_ArchivesMissing(t *testing.T) {
	ctx := context.Background()
	syncer, repo, _, out, dir := setupSyncer(t)

	keep := "Julian Lage - Voicings 03-01-2024.mp4"
	gone := "Mick Goodrick - Cycles 10-01-2024.mp4"
	testutil.WriteVideoFile(t, dir, keep, []byte("voicings"))
	removed := testutil.WriteVideoFile(t, dir, gone, []byte("cycles"))

	_, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)

	require.NoError(t, os.Remove(removed))
	out.Reset()
	got, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{Archived: 1, Unchanged: 1}, got)
	assert.Contains(t, out.String(), `[ARCHIVE]  "Mick Goodrick - Cycles 10-01-2024.mp4"`)

	states, err := repo.FindSyncStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)
	for _, state := range states {
		switch state.Filename {
		case keep:
			assert.Equal(t, lesson.StatusNew, state.Status)
		case gone:
			assert.Equal(t, lesson.StatusArchived, state.Status)
		}
	}

	// Already archived lessons are not archived again.
	again, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{Unchanged: 1}, again)

	// A returning file is recognized but its status is never reset.
	testutil.WriteVideoFile(t, dir, gone, []byte("cycles"))
	returned, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, returned.Added)
	states, err = repo.FindSyncStates(ctx)
	require.NoError(t, err)
	for _, state := range states {
		if state.Filename == gone {
			assert.Equal(t, lesson.StatusArchived, state.Status)
		}
	}
}

func TestSyncer_Sync_MissingDirectory(t *testing.T) {
	ctx := context.Background()
	syncer, _, _, out, dir := setupSyncer(t)

	got, err := syncer.Sync(ctx, filepath.Join(dir, "nope"), videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{}, got)
	assert.Contains(t, out.String(), "[WARN]")
}

func TestSyncer_Sync_NothingParseableSkipsArchival(t *testing.T) {
	ctx := context.Background()
	syncer, repo, _, _, dir := setupSyncer(t)

	testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))
	_, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)

	t.Run("empty directory", func(t *testing.T) {
		got, err := syncer.Sync(ctx, t.TempDir(), videoExtensions, Options{})
		require.NoError(t, err)
		assert.Equal(t, &Result{}, got)
	})

	t.Run("only unparseable files", func(t *testing.T) {
		bad := t.TempDir()
		testutil.WriteVideoFile(t, bad, "holiday-footage.mp4", []byte("junk"))
		got, err := syncer.Sync(ctx, bad, videoExtensions, Options{})
		require.NoError(t, err)
		assert.Equal(t, &Result{Errors: 1}, got)
	})

	states, err := repo.FindSyncStates(ctx)
	require.NoError(t, err)
	for _, state := range states {
		assert.Equal(t, lesson.StatusNew, state.Status, "pointing at a wrong directory must not archive the library")
	}
}

func TestSyncer_Sync_DryRun(t *testing.T) {
	ctx := context.Background()
	syncer, repo, c, out, dir := setupSyncer(t)

	removed := testutil.WriteVideoFile(t, dir, "Mick Goodrick - Cycles 10-01-2024.mp4", []byte("cycles"))
	_, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)

	require.NoError(t, os.Remove(removed))
	testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))

	out.Reset()
	c.Set("stats", 1)
	got, err := syncer.Sync(ctx, dir, videoExtensions, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, &Result{Added: 1, Archived: 1}, got)
	assert.Contains(t, out.String(), `[NEW]  "Julian Lage - Voicings 03-01-2024.mp4"`)
	assert.Contains(t, out.String(), `[ARCHIVE]  "Mick Goodrick - Cycles 10-01-2024.mp4"`)

	states, err := repo.FindSyncStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	for _, state := range states {
		assert.Equal(t, "Mick Goodrick - Cycles 10-01-2024.mp4", state.Filename)
		assert.Equal(t, lesson.StatusNew, state.Status)
	}
	_, ok := c.Get("stats")
	assert.True(t, ok, "a dry run should leave the cache alone")

	applied, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{Added: 1, Archived: 1}, applied)
}

func TestSyncer_Sync_DuplicateContent(t *testing.T) {
	ctx := context.Background()
	syncer, _, _, out, dir := setupSyncer(t)

	testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))
	testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings Copy 03-01-2024.mp4", []byte("voicings"))

	got, err := syncer.Sync(ctx, dir, videoExtensions, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{Added: 1, Errors: 1}, got)
	assert.Contains(t, out.String(), "same content as")
}

func TestSyncer_Sync_RepositoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(repo *mock_lesson.MockRepository)
		wantErr string
	}{
		{
			name: "loading sync states fails",
			setup: func(repo *mock_lesson.MockRepository) {
				repo.EXPECT().FindSyncStates(gomock.Any()).Return(nil, errors.New("disk error"))
			},
			wantErr: "FindSyncStates() > disk error",
		},
		{
			name: "applying the diff fails",
			setup: func(repo *mock_lesson.MockRepository) {
				repo.EXPECT().FindSyncStates(gomock.Any()).Return(map[string]lesson.SyncState{}, nil)
				repo.EXPECT().ApplySync(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("tx error"))
			},
			wantErr: "ApplySync() > tx error",
		},
		{
			name: "archiving fails",
			setup: func(repo *mock_lesson.MockRepository) {
				repo.EXPECT().FindSyncStates(gomock.Any()).Return(map[string]lesson.SyncState{}, nil)
				repo.EXPECT().ApplySync(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().ArchiveMissing(gomock.Any(), gomock.Any()).Return(nil, errors.New("tx error"))
			},
			wantErr: "ArchiveMissing() > tx error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_lesson.NewMockRepository(ctrl)
			tt.setup(repo)

			dir := t.TempDir()
			testutil.WriteVideoFile(t, dir, "Julian Lage - Voicings 03-01-2024.mp4", []byte("voicings"))

			syncer := NewSyncer(repo, cache.New(time.Minute), &bytes.Buffer{})
			_, err := syncer.Sync(context.Background(), dir, videoExtensions, Options{})
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
