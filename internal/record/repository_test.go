package record

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ay-kasimov/shed/internal/testutil"
)

func TestDBRepository_Upsert(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDBRepository(db)
	ctx := context.Background()

	achieved := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, PersonalRecord{
		RecordType:   TypeMostDay,
		Value:        4,
		AchievedDate: &achieved,
	}))

	got, err := repo.Find(ctx, TypeMostDay)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Value)
	require.NotNil(t, got.AchievedDate)
	assert.WithinDuration(t, achieved, *got.AchievedDate, time.Second)
	assert.Nil(t, got.Details)

	t.Run("upsert replaces the row", func(t *testing.T) {
		week := "2024-11"
		require.NoError(t, repo.Upsert(ctx, PersonalRecord{
			RecordType: TypeMostDay,
			Value:      6,
			Details:    &week,
		}))

		got, err := repo.Find(ctx, TypeMostDay)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 6, got.Value)
		assert.Nil(t, got.AchievedDate)
		require.NotNil(t, got.Details)
		assert.Equal(t, "2024-11", *got.Details)

		var count int
		require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM personal_records"))
		assert.Equal(t, 1, count)
	})
}

func TestDBRepository_Find(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDBRepository(db)
	ctx := context.Background()

	t.Run("never computed", func(t *testing.T) {
		got, err := repo.Find(ctx, TypeBestStreak)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("find all ordered by type", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, PersonalRecord{RecordType: TypeMostWeek, Value: 9}))
		require.NoError(t, repo.Upsert(ctx, PersonalRecord{RecordType: TypeBestStreak, Value: 5}))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, TypeBestStreak, all[0].RecordType)
		assert.Equal(t, TypeMostWeek, all[1].RecordType)
	})
}

func TestDBStreakHistoryRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDBStreakHistoryRepository(db)
	ctx := context.Background()

	t.Run("empty log", func(t *testing.T) {
		best, err := repo.MaxLength(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, best)
	})

	t.Run("append and max", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Append(ctx, 7, &start, &end))
		require.NoError(t, repo.Append(ctx, 3, nil, nil))

		best, err := repo.MaxLength(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, best)

		var count int
		require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM streak_history"))
		assert.Equal(t, 2, count)
	})
}
