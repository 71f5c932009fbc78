package lesson

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ay-kasimov/shed/internal/cache"
)

// PageSize is the number of lessons shown per library page.
const PageSize = 50

// rediscoverAfterDays is how long a completed lesson rests before it is
// offered for rediscovery.
const rediscoverAfterDays = 180

// reviewWindowSlack widens each review window by this many days on each side.
const reviewWindowSlack = 2

// snippetContext is how many characters of transcript surround a search match.
const snippetContext = 120

var (
	// ErrNotFound is returned when a lesson id does not exist.
	ErrNotFound = errors.New("lesson not found")
	// ErrInvalidStatus is returned for statuses users may not set directly.
	ErrInvalidStatus = errors.New("status must be New, In Progress or Completed")
)

// ReviewInterval pairs a queue label with how many days back it looks.
type ReviewInterval struct {
	Key  string
	Days int
}

// ReviewIntervals are the spaced review windows, shortest first.
var ReviewIntervals = []ReviewInterval{
	{Key: "1_week", Days: 7},
	{Key: "1_month", Days: 30},
	{Key: "3_months", Days: 90},
	{Key: "6_months", Days: 180},
	{Key: "1_year", Days: 365},
}

// Page is one page of a filtered library listing.
type Page struct {
	Lessons []Lesson `json:"lessons"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Pages   int      `json:"pages"`
}

// ReviewBucket holds the review picks for one interval.
type ReviewBucket struct {
	Interval string   `json:"interval"`
	Days     int      `json:"days"`
	Lessons  []Lesson `json:"lessons"`
}

// SearchResult is a transcript search hit with its surrounding context.
type SearchResult struct {
	Lesson  Lesson `json:"lesson"`
	Snippet string `json:"snippet"`
}

// Service exposes the lesson operations used by the CLI and the HTTP API.
type Service struct {
	lessons Repository
	cache   *cache.Cache
}

// NewService creates a new lesson Service.
func NewService(lessons Repository, cache *cache.Cache) *Service {
	return &Service{lessons: lessons, cache: cache}
}

// ListPage returns the requested page of lessons matching the filter.
// Pages are 1-based; out-of-range pages clamp to the first.
func (s *Service) ListPage(ctx context.Context, filter Filter, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.lessons.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("Count() > %w", err)
	}
	lessons, err := s.lessons.FindPage(ctx, filter, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("FindPage() > %w", err)
	}
	return &Page{
		Lessons: lessons,
		Total:   total,
		Page:    page,
		Pages:   (total + PageSize - 1) / PageSize,
	}, nil
}

// Get returns a lesson by id, or nil if it does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*Lesson, error) {
	l, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("FindByID(%d) > %w", id, err)
	}
	return l, nil
}

// UpdateStatus moves a lesson to a user-selectable status and returns the
// refreshed lesson.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (*Lesson, error) {
	if !status.ValidTransition() {
		return nil, ErrInvalidStatus
	}
	existing, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("FindByID(%d) > %w", id, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if err := s.lessons.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("UpdateStatus(%d, %s) > %w", id, status, err)
	}
	s.cache.Invalidate()

	updated, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("FindByID(%d) > %w", id, err)
	}
	return updated, nil
}

// InProgress returns the most recently touched in-progress lessons, cached
// per limit.
func (s *Service) InProgress(ctx context.Context, limit int) ([]Lesson, error) {
	key := fmt.Sprintf("in_progress_%d", limit)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]Lesson), nil
	}
	lessons, err := s.lessons.FindInProgress(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("FindInProgress(%d) > %w", limit, err)
	}
	s.cache.Set(key, lessons)
	return lessons, nil
}

// Years returns the distinct lesson years in the library, newest first.
func (s *Service) Years(ctx context.Context) ([]int, error) {
	if cached, ok := s.cache.Get("years"); ok {
		return cached.([]int), nil
	}
	years, err := s.lessons.Years(ctx)
	if err != nil {
		return nil, fmt.Errorf("Years() > %w", err)
	}
	s.cache.Set("years", years)
	return years, nil
}

// LessonOfTheDay returns up to three random uncompleted lessons.
func (s *Service) LessonOfTheDay(ctx context.Context) ([]Lesson, error) {
	lessons, err := s.lessons.FindRandom(ctx, []Status{StatusNew, StatusInProgress}, 3)
	if err != nil {
		return nil, fmt.Errorf("FindRandom() > %w", err)
	}
	return lessons, nil
}

// Rediscover returns one random lesson completed long enough ago to be worth
// revisiting, or nil when none rests that deep.
func (s *Service) Rediscover(ctx context.Context) (*Lesson, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -rediscoverAfterDays)
	l, err := s.lessons.FindCompletedBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("FindCompletedBefore() > %w", err)
	}
	return l, nil
}

// RandomLesson returns one random non-archived lesson, or nil on an empty
// library.
func (s *Service) RandomLesson(ctx context.Context) (*Lesson, error) {
	lessons, err := s.lessons.FindRandom(ctx, []Status{StatusNew, StatusInProgress, StatusCompleted}, 1)
	if err != nil {
		return nil, fmt.Errorf("FindRandom() > %w", err)
	}
	if len(lessons) == 0 {
		return nil, nil
	}
	return &lessons[0], nil
}

// PrioritySuggestions returns in-progress lessons first, topped up with
// random new ones to reach the limit.
func (s *Service) PrioritySuggestions(ctx context.Context, limit int) ([]Lesson, error) {
	lessons, err := s.lessons.FindInProgress(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("FindInProgress(%d) > %w", limit, err)
	}
	if len(lessons) < limit {
		fresh, err := s.lessons.FindRandom(ctx, []Status{StatusNew}, limit-len(lessons))
		if err != nil {
			return nil, fmt.Errorf("FindRandom() > %w", err)
		}
		lessons = append(lessons, fresh...)
	}
	return lessons, nil
}

// ReviewQueue builds the spaced review buckets: for each interval, up to two
// random completions from its window followed by up to two tagged ones, with
// no lesson repeated within a bucket.
func (s *Service) ReviewQueue(ctx context.Context) ([]ReviewBucket, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	buckets := make([]ReviewBucket, 0, len(ReviewIntervals))
	for _, interval := range ReviewIntervals {
		start := midnight.AddDate(0, 0, -(interval.Days + reviewWindowSlack))
		end := midnight.AddDate(0, 0, -interval.Days+reviewWindowSlack+1)

		random, err := s.lessons.FindCompletedBetween(ctx, start, end, 2, nil, false)
		if err != nil {
			return nil, fmt.Errorf("FindCompletedBetween(%s) > %w", interval.Key, err)
		}
		excludeIDs := make([]int64, 0, len(random))
		for _, l := range random {
			excludeIDs = append(excludeIDs, l.ID)
		}
		tagged, err := s.lessons.FindCompletedBetween(ctx, start, end, 2, excludeIDs, true)
		if err != nil {
			return nil, fmt.Errorf("FindCompletedBetween(%s tagged) > %w", interval.Key, err)
		}

		buckets = append(buckets, ReviewBucket{
			Interval: interval.Key,
			Days:     interval.Days,
			Lessons:  append(random, tagged...),
		})
	}
	return buckets, nil
}

// SearchTranscripts returns lessons whose transcript mentions the query,
// each with a surrounding-context snippet.
func (s *Service) SearchTranscripts(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	lessons, err := s.lessons.SearchTranscripts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("SearchTranscripts(%s) > %w", query, err)
	}

	results := make([]SearchResult, 0, len(lessons))
	for _, l := range lessons {
		results = append(results, SearchResult{
			Lesson:  l,
			Snippet: extractSnippet(*l.Transcript, query),
		})
	}
	return results, nil
}

// extractSnippet cuts the transcript down to the text around the first
// case-insensitive match, trimmed to word boundaries.
func extractSnippet(text, query string) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	idx := strings.Index(lowerText, lowerQuery)
	if idx < 0 {
		idx = 0
	}
	matchEnd := idx + len(lowerQuery)
	if matchEnd > len(text) {
		matchEnd = len(text)
	}

	start := idx - snippetContext
	if start < 0 {
		start = 0
	}
	end := matchEnd + snippetContext
	if end > len(text) {
		end = len(text)
	}
	for start < idx && !utf8.RuneStart(text[start]) {
		start++
	}
	for end > matchEnd && end < len(text) && !utf8.RuneStart(text[end]) {
		end--
	}

	// Avoid cutting words in half at the snippet edges.
	if start > 0 {
		if sp := strings.IndexByte(text[start:idx], ' '); sp >= 0 {
			start += sp + 1
		}
	}
	if end < len(text) {
		if sp := strings.LastIndexByte(text[matchEnd:end], ' '); sp >= 0 {
			end = matchEnd + sp
		}
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet += "..."
	}
	return snippet
}
