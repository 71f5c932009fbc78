package tag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ay-kasimov/shed/internal/cache"
)

var (
	// ErrNotFound is returned when a tag id does not exist.
	ErrNotFound = errors.New("tag not found")
	// ErrEmptyName is returned when a tag name is blank after trimming.
	ErrEmptyName = errors.New("tag name must not be empty")
)

// ImportResult reports what a taxonomy import did.
type ImportResult struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
}

// taxonomyFile is the YAML shape of a tag taxonomy.
type taxonomyFile struct {
	Tags []struct {
		Name string `yaml:"name"`
	} `yaml:"tags"`
}

// Service exposes the tag operations used by the CLI and the HTTP API.
type Service struct {
	tags  Repository
	cache *cache.Cache
}

// NewService creates a new tag Service.
func NewService(tags Repository, cache *cache.Cache) *Service {
	return &Service{tags: tags, cache: cache}
}

// All returns every tag ordered by name, cached until the next mutation.
func (s *Service) All(ctx context.Context) ([]Tag, error) {
	if cached, ok := s.cache.Get("all_tags"); ok {
		return cached.([]Tag), nil
	}
	tags, err := s.tags.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll() > %w", err)
	}
	s.cache.Set("all_tags", tags)
	return tags, nil
}

// Get returns a tag by id, or nil if it does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*Tag, error) {
	t, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("FindByID(%d) > %w", id, err)
	}
	return t, nil
}

// Create adds a tag with the trimmed name. Creating a name that already
// exists returns the existing tag with created=false.
func (s *Service) Create(ctx context.Context, name string) (*Tag, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrEmptyName
	}
	t, created, err := s.tags.Create(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("Create(%s) > %w", name, err)
	}
	if created {
		s.cache.Invalidate()
	}
	return t, created, nil
}

// Delete removes a tag and, through the schema's cascade, all of its lesson
// assignments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("Delete(%d) > %w", id, err)
	}
	s.cache.Invalidate()
	return nil
}

// Attach assigns a tag to a lesson. Attaching an already assigned tag is a
// no-op and returns false.
func (s *Service) Attach(ctx context.Context, lessonID, tagID int64) (bool, error) {
	attached, err := s.tags.Attach(ctx, lessonID, tagID)
	if err != nil {
		return false, fmt.Errorf("Attach(%d, %d) > %w", lessonID, tagID, err)
	}
	if attached {
		s.cache.Invalidate()
	}
	return attached, nil
}

// Detach removes a tag from a lesson. Detaching a tag that was not assigned
// returns false.
func (s *Service) Detach(ctx context.Context, lessonID, tagID int64) (bool, error) {
	detached, err := s.tags.Detach(ctx, lessonID, tagID)
	if err != nil {
		return false, fmt.Errorf("Detach(%d, %d) > %w", lessonID, tagID, err)
	}
	if detached {
		s.cache.Invalidate()
	}
	return detached, nil
}

// ForLesson returns the tags assigned to one lesson.
func (s *Service) ForLesson(ctx context.Context, lessonID int64) ([]Tag, error) {
	tags, err := s.tags.FindByLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("FindByLesson(%d) > %w", lessonID, err)
	}
	return tags, nil
}

// ForLessons returns the tags for many lessons in one query, keyed by
// lesson id.
func (s *Service) ForLessons(ctx context.Context, lessonIDs []int64) (map[int64][]Tag, error) {
	tags, err := s.tags.FindByLessonIDs(ctx, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("FindByLessonIDs() > %w", err)
	}
	return tags, nil
}

// UsageCounts returns every tag with its lesson count, ordered by name.
func (s *Service) UsageCounts(ctx context.Context) ([]TagCount, error) {
	counts, err := s.tags.UsageCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("UsageCounts() > %w", err)
	}
	return counts, nil
}

// ImportTaxonomy reads a YAML tag list and creates every tag that does not
// exist yet. Blank names are skipped.
func (s *Service) ImportTaxonomy(ctx context.Context, path string) (*ImportResult, error) {
	taxonomy, err := readTaxonomyFile(path)
	if err != nil {
		return nil, fmt.Errorf("readTaxonomyFile(%s) > %w", path, err)
	}

	result := &ImportResult{}
	for _, entry := range taxonomy.Tags {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		_, created, err := s.tags.Create(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("Create(%s) > %w", name, err)
		}
		if created {
			result.Created++
		} else {
			result.Existing++
		}
	}
	if result.Created > 0 {
		s.cache.Invalidate()
	}
	return result, nil
}

func readTaxonomyFile(path string) (taxonomyFile, error) {
	var result taxonomyFile

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return result, nil
}
