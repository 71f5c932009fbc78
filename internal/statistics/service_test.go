package statistics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ay-kasimov/shed/internal/cache"
	"github.com/ay-kasimov/shed/internal/lesson"
	mock_lesson "github.com/ay-kasimov/shed/internal/mocks/lesson"
	mock_record "github.com/ay-kasimov/shed/internal/mocks/record"
	mock_settings "github.com/ay-kasimov/shed/internal/mocks/settings"
	"github.com/ay-kasimov/shed/internal/record"
	"github.com/ay-kasimov/shed/internal/settings"
	"github.com/ay-kasimov/shed/internal/statistics"
)

type serviceMocks struct {
	lessons  *mock_lesson.MockRepository
	records  *mock_record.MockRepository
	streaks  *mock_record.MockStreakHistoryRepository
	settings *mock_settings.MockRepository
}

func newService(t *testing.T) (*statistics.Service, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := serviceMocks{
		lessons:  mock_lesson.NewMockRepository(ctrl),
		records:  mock_record.NewMockRepository(ctrl),
		streaks:  mock_record.NewMockStreakHistoryRepository(ctrl),
		settings: mock_settings.NewMockRepository(ctrl),
	}
	c := cache.New(time.Minute)
	service := statistics.NewService(
		mocks.lessons, mocks.records, mocks.streaks,
		settings.NewService(mocks.settings, c), c)
	return service, mocks
}

func localMidnight(t time.Time) time.Time {
	lt := t.Local()
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.Local)
}

func TestService_Overview(t *testing.T) {
	service, mocks := newService(t)
	mocks.lessons.EXPECT().CountByStatus(gomock.Any()).Return(map[lesson.Status]int{
		lesson.StatusNew:        5,
		lesson.StatusInProgress: 2,
		lesson.StatusCompleted:  3,
		lesson.StatusArchived:   4,
	}, nil).Times(1)

	want := &statistics.Overview{
		Total:          10,
		Completed:      3,
		InProgress:     2,
		New:            5,
		CompletionRate: 30,
	}
	for i := 0; i < 2; i++ {
		got, err := service.Overview(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestService_Overview_Empty(t *testing.T) {
	service, mocks := newService(t)
	mocks.lessons.EXPECT().CountByStatus(gomock.Any()).Return(map[lesson.Status]int{}, nil)

	got, err := service.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &statistics.Overview{}, got)
}

func TestService_StreakInfo(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("behind the record", func(t *testing.T) {
		service, mocks := newService(t)
		mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).
			Return([]time.Time{now, now.AddDate(0, 0, -1)}, nil)
		mocks.streaks.EXPECT().MaxLength(gomock.Any()).Return(5, nil)

		got, err := service.StreakInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, &statistics.StreakInfo{Current: 2, Best: 5, DaysToBeat: 4}, got)
	})

	t.Run("at the best", func(t *testing.T) {
		service, mocks := newService(t)
		mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).
			Return([]time.Time{now, now.AddDate(0, 0, -1), now.AddDate(0, 0, -2)}, nil)
		mocks.streaks.EXPECT().MaxLength(gomock.Any()).Return(1, nil)

		got, err := service.StreakInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, &statistics.StreakInfo{Current: 3, Best: 3, IsAtBest: true}, got)
	})

	t.Run("no activity", func(t *testing.T) {
		service, mocks := newService(t)
		mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).Return(nil, nil)
		mocks.streaks.EXPECT().MaxLength(gomock.Any()).Return(0, nil)

		got, err := service.StreakInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, &statistics.StreakInfo{}, got)
	})
}

func TestService_RecordStreak(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("no active run", func(t *testing.T) {
		service, mocks := newService(t)
		mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).Return(nil, nil)

		logged, err := service.RecordStreak(ctx)
		require.NoError(t, err)
		assert.False(t, logged)
	})

	t.Run("run does not beat the history", func(t *testing.T) {
		service, mocks := newService(t)
		mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).Return([]time.Time{now}, nil)
		mocks.streaks.EXPECT().MaxLength(gomock.Any()).Return(3, nil)

		logged, err := service.RecordStreak(ctx)
		require.NoError(t, err)
		assert.False(t, logged)
	})

	t.Run("record run is appended", func(t *testing.T) {
		service, mocks := newService(t)
		mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).
			Return([]time.Time{now, now.AddDate(0, 0, -1), now.AddDate(0, 0, -2)}, nil)
		mocks.streaks.EXPECT().MaxLength(gomock.Any()).Return(2, nil)
		mocks.streaks.EXPECT().Append(gomock.Any(), 3, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, length int, start, end *time.Time) error {
				require.NotNil(t, start)
				require.NotNil(t, end)
				assert.Equal(t, localMidnight(now), *end)
				assert.Equal(t, end.AddDate(0, 0, -2), *start)
				return nil
			})

		logged, err := service.RecordStreak(ctx)
		require.NoError(t, err)
		assert.True(t, logged)
	})
}

func TestService_DailyProgress(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("default goal", func(t *testing.T) {
		service, mocks := newService(t)
		mocks.settings.EXPECT().Get(gomock.Any(), "daily_goal").Return(nil, nil)
		mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).
			Return([]time.Time{now, now, now.AddDate(0, 0, -3)}, nil)

		got, err := service.DailyProgress(ctx)
		require.NoError(t, err)
		assert.Equal(t, &statistics.GoalProgress{
			Completed:     2,
			Goal:          3,
			Percent:       66.7,
			ActualPercent: 66.7,
		}, got)
	})

	t.Run("overachieved caps the display percent only", func(t *testing.T) {
		service, mocks := newService(t)
		mocks.settings.EXPECT().Get(gomock.Any(), "daily_goal").
			Return(&settings.Setting{Key: "daily_goal", Value: "1"}, nil)
		mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).
			Return([]time.Time{now, now}, nil)

		got, err := service.DailyProgress(ctx)
		require.NoError(t, err)
		assert.Equal(t, &statistics.GoalProgress{
			Completed:     2,
			Goal:          1,
			Percent:       100,
			ActualPercent: 200,
			Overachieved:  true,
		}, got)
	})
}

func TestService_WeeklyProgress(t *testing.T) {
	service, mocks := newService(t)
	now := time.Now()
	mocks.settings.EXPECT().Get(gomock.Any(), "weekly_goal").Return(nil, nil)
	mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).
		Return([]time.Time{now, now, now.AddDate(0, 0, -8)}, nil)

	got, err := service.WeeklyProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Completed)
	assert.Equal(t, 15, got.Goal)
	assert.False(t, got.Overachieved)
}

func TestService_ComputeRecords(t *testing.T) {
	service, mocks := newService(t)
	now := time.Now()
	mocks.lessons.EXPECT().CompletionTimes(gomock.Any()).
		Return([]time.Time{now, now, now.AddDate(0, 0, -1)}, nil)
	mocks.streaks.EXPECT().MaxLength(gomock.Any()).Return(0, nil)

	var stored []record.PersonalRecord
	mocks.records.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r record.PersonalRecord) error {
			stored = append(stored, r)
			return nil
		}).Times(5)

	got, err := service.ComputeRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, stored, got)

	assert.Equal(t, record.TypeBestStreak, got[0].RecordType)
	assert.Equal(t, 2, got[0].Value)

	assert.Equal(t, record.TypeMostDay, got[1].RecordType)
	assert.Equal(t, 2, got[1].Value)
	require.NotNil(t, got[1].AchievedDate)
	assert.Equal(t, localMidnight(now), *got[1].AchievedDate)

	assert.Equal(t, record.TypeMostWeek, got[2].RecordType)
	assert.GreaterOrEqual(t, got[2].Value, 2)
	assert.NotNil(t, got[2].Details)

	assert.Equal(t, record.TypeMostMonth, got[3].RecordType)
	assert.GreaterOrEqual(t, got[3].Value, 2)
	assert.NotNil(t, got[3].Details)

	// Two active days cannot qualify as a consistent week.
	assert.Equal(t, record.TypeMostConsistent, got[4].RecordType)
	assert.Equal(t, 0, got[4].Value)
	assert.Nil(t, got[4].Details)
}
