package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ay-kasimov/shed/internal/cache"
)

// Setting keys the rest of the application reads.
const (
	KeyDailyGoal  = "daily_goal"
	KeyWeeklyGoal = "weekly_goal"
)

// Goal defaults used when a key is unset or holds a non-integer value.
const (
	DefaultDailyGoal  = 3
	DefaultWeeklyGoal = 15
)

const (
	maxDailyGoal  = 20
	maxWeeklyGoal = 100
)

var (
	// ErrDailyGoalRange is returned for daily goals outside 1..20.
	ErrDailyGoalRange = errors.New("daily goal must be between 1 and 20")
	// ErrWeeklyGoalRange is returned for weekly goals outside 1..100.
	ErrWeeklyGoalRange = errors.New("weekly goal must be between 1 and 100")
)

// Service exposes the settings operations used by the CLI and the HTTP API.
type Service struct {
	settings Repository
	cache    *cache.Cache
}

// NewService creates a new settings Service.
func NewService(settings Repository, cache *cache.Cache) *Service {
	return &Service{settings: settings, cache: cache}
}

// Get returns the setting stored under key, or nil if not set.
func (s *Service) Get(ctx context.Context, key string) (*Setting, error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("Get(%s) > %w", key, err)
	}
	return setting, nil
}

// Set stores value under key and drops cached query results.
func (s *Service) Set(ctx context.Context, key, value string) error {
	if err := s.settings.Set(ctx, key, value); err != nil {
		return fmt.Errorf("Set(%s) > %w", key, err)
	}
	s.cache.Invalidate()
	return nil
}

// All returns every stored setting ordered by key.
func (s *Service) All(ctx context.Context) ([]Setting, error) {
	settings, err := s.settings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("All() > %w", err)
	}
	return settings, nil
}

// DailyGoal returns the configured lessons-per-day target.
func (s *Service) DailyGoal(ctx context.Context) (int, error) {
	return s.goalValue(ctx, KeyDailyGoal, DefaultDailyGoal)
}

// WeeklyGoal returns the configured lessons-per-week target.
func (s *Service) WeeklyGoal(ctx context.Context) (int, error) {
	return s.goalValue(ctx, KeyWeeklyGoal, DefaultWeeklyGoal)
}

// SetDailyGoal stores a daily goal between 1 and 20.
func (s *Service) SetDailyGoal(ctx context.Context, goal int) error {
	if goal < 1 || goal > maxDailyGoal {
		return ErrDailyGoalRange
	}
	return s.Set(ctx, KeyDailyGoal, strconv.Itoa(goal))
}

// SetWeeklyGoal stores a weekly goal between 1 and 100.
func (s *Service) SetWeeklyGoal(ctx context.Context, goal int) error {
	if goal < 1 || goal > maxWeeklyGoal {
		return ErrWeeklyGoalRange
	}
	return s.Set(ctx, KeyWeeklyGoal, strconv.Itoa(goal))
}

// goalValue reads an integer setting, falling back to the default when the
// key is unset or the stored value does not parse.
func (s *Service) goalValue(ctx context.Context, key string, fallback int) (int, error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("Get(%s) > %w", key, err)
	}
	if setting == nil {
		return fallback, nil
	}
	goal, err := strconv.Atoi(strings.TrimSpace(setting.Value))
	if err != nil {
		return fallback, nil
	}
	return goal, nil
}
