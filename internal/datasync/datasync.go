// Package datasync reconciles a library directory of lesson videos with the database.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ay-kasimov/shed/internal/cache"
	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/mediafile"
)

// Result tracks counts for one sync run.
type Result struct {
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Archived  int `json:"archived"`
	Unchanged int `json:"unchanged"`
	Errors    int `json:"errors"`
}

// Options controls sync behavior.
type Options struct {
	DryRun bool
}

// Syncer diffs scanned video files against stored lessons and applies the result.
type Syncer struct {
	lessons lesson.Repository
	cache   *cache.Cache
	writer  io.Writer
}

// NewSyncer creates a new Syncer.
func NewSyncer(lessons lesson.Repository, cache *cache.Cache, writer io.Writer) *Syncer {
	return &Syncer{
		lessons: lessons,
		cache:   cache,
		writer:  writer,
	}
}

// scannedFile is one parseable library file with its computed identity.
type scannedFile struct {
	path       string
	name       string
	hash       string
	mtime      int64
	meta       *mediafile.Metadata
	transcript *string
}

// Sync reconciles the video files directly under dir with the lessons table.
// Subdirectories are not scanned. Lessons whose files have disappeared are
// archived, never deleted, and a lesson's status is never reset by a sync.
// A missing directory yields a zero result; per-file failures increment the
// error counter and the scan continues.
func (s *Syncer) Sync(ctx context.Context, dir string, extensions []string, opts Options) (*Result, error) {
	var result Result

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(s.writer, "  [WARN]  cannot read library directory %q: %v\n", dir, err)
		if !errors.Is(err, fs.ErrNotExist) {
			result.Errors = 1
		}
		return &result, nil
	}

	accepted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		accepted[strings.ToLower(ext)] = struct{}{}
	}

	scanned := s.scanDirectory(dir, entries, accepted, &result)
	if len(scanned) == 0 {
		// Nothing parseable. Skip the archive step so a wrong or empty
		// directory cannot tombstone the whole library.
		return &result, nil
	}

	states, err := s.lessons.FindSyncStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindSyncStates() > %w", err)
	}

	var creates []lesson.Lesson
	var updates []lesson.FileUpdate
	seenHashes := make([]string, 0, len(scanned))
	for _, file := range scanned {
		seenHashes = append(seenHashes, file.hash)

		state, ok := states[file.hash]
		if !ok {
			fmt.Fprintf(s.writer, "  [NEW]  %q\n", file.name)
			result.Added++
			creates = append(creates, lesson.Lesson{
				FileHash:   file.hash,
				Filepath:   file.path,
				Filename:   file.name,
				Author:     file.meta.Author,
				Title:      file.meta.Title,
				LessonDate: file.meta.LessonDate,
				FileMtime:  file.mtime,
				Status:     lesson.StatusNew,
				Transcript: file.transcript,
			})
			continue
		}

		changed := state.Filepath != file.path ||
			state.FileMtime != file.mtime ||
			(file.transcript != nil && !state.HasTranscript())
		if !changed {
			slog.Debug("lesson unchanged", "filename", file.name)
			result.Unchanged++
			continue
		}

		fmt.Fprintf(s.writer, "  [UPDATE]  %q\n", file.name)
		result.Updated++
		updates = append(updates, lesson.FileUpdate{
			ID:         state.ID,
			Filepath:   file.path,
			Filename:   file.name,
			FileMtime:  file.mtime,
			Transcript: file.transcript,
		})
	}

	if opts.DryRun {
		missing := missingStates(states, seenHashes)
		for _, state := range missing {
			fmt.Fprintf(s.writer, "  [ARCHIVE]  %q\n", state.Filename)
		}
		result.Archived = len(missing)
		return &result, nil
	}

	if err := s.lessons.ApplySync(ctx, creates, updates); err != nil {
		return nil, fmt.Errorf("ApplySync() > %w", err)
	}

	archived, err := s.lessons.ArchiveMissing(ctx, seenHashes)
	if err != nil {
		return nil, fmt.Errorf("ArchiveMissing() > %w", err)
	}
	for _, state := range archived {
		fmt.Fprintf(s.writer, "  [ARCHIVE]  %q\n", state.Filename)
	}
	result.Archived = len(archived)

	if result.Added+result.Updated+result.Archived > 0 {
		s.cache.Invalidate()
	}
	return &result, nil
}

// scanDirectory fingerprints every entry with an accepted extension. Files
// that fail parsing or reading are counted and skipped. Two files with the
// same fingerprint are the same lesson; the duplicate is reported as an error
// so the later batch insert cannot collide.
func (s *Syncer) scanDirectory(dir string, entries []os.DirEntry, accepted map[string]struct{}, result *Result) []scannedFile {
	var scanned []scannedFile
	firstByHash := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := accepted[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}

		meta := mediafile.ParseFilename(name)
		if meta == nil {
			fmt.Fprintf(s.writer, "  [ERROR]  %q: filename does not match \"Author - Title DD-MM-YYYY\"\n", name)
			result.Errors++
			continue
		}

		path := filepath.Join(dir, name)
		hash, err := mediafile.Fingerprint(path)
		if err != nil {
			fmt.Fprintf(s.writer, "  [ERROR]  %q: %v\n", name, err)
			result.Errors++
			continue
		}
		if first, ok := firstByHash[hash]; ok {
			fmt.Fprintf(s.writer, "  [ERROR]  %q: same content as %q\n", name, first)
			result.Errors++
			continue
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(s.writer, "  [ERROR]  %q: %v\n", name, err)
			result.Errors++
			continue
		}

		firstByHash[hash] = name
		file := scannedFile{
			path:  path,
			name:  name,
			hash:  hash,
			mtime: info.ModTime().Unix(),
			meta:  meta,
		}
		if text, ok := mediafile.SidecarTranscript(path); ok {
			file.transcript = &text
		}
		scanned = append(scanned, file)
	}
	return scanned
}

// missingStates returns the non-archived stored lessons whose hashes were not
// observed, sorted by filename.
func missingStates(states map[string]lesson.SyncState, seenHashes []string) []lesson.SyncState {
	seen := make(map[string]struct{}, len(seenHashes))
	for _, hash := range seenHashes {
		seen[hash] = struct{}{}
	}
	var missing []lesson.SyncState
	for hash, state := range states {
		if _, ok := seen[hash]; ok {
			continue
		}
		if state.Status == lesson.StatusArchived {
			continue
		}
		missing = append(missing, state)
	}
	sort.Slice(missing, func(i, j int) bool {
		return missing[i].Filename < missing[j].Filename
	})
	return missing
}
