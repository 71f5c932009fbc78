// Package mediafile handles the filesystem side of a video library: filename
// metadata parsing, content fingerprinting and subtitle sidecar extraction.
package mediafile

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Metadata is the structured information carried by a lesson filename.
type Metadata struct {
	Author     string
	Title      string
	LessonDate time.Time
}

// Primary pattern: Author - Title DD-MM-YYYY.<ext>
var filenamePattern = regexp.MustCompile(`^(.+?)\s*-\s*(.+?)\s*(\d{2}-\d{2}-\d{4})\.(?i:[a-z0-9]+)$`)

// Fallback for files without separator: Author DD-MM-YYYY.<ext>
var noSeparatorPattern = regexp.MustCompile(`^(.+?)\s+(\d{2}-\d{2}-\d{4})\.(?i:[a-z0-9]+)$`)

const dateLayout = "02-01-2006"

// ParseFilename parses a lesson filename into its components. The author and
// title are trimmed free text and the date is strictly DD-MM-YYYY. Filenames
// without a " - " separator fall back to a single-token author that doubles
// as the title. Returns nil when the name matches neither grammar or carries
// an impossible date.
func ParseFilename(filename string) *Metadata {
	clean := strings.TrimSpace(filename)

	if match := filenamePattern.FindStringSubmatch(clean); match != nil {
		lessonDate, err := time.Parse(dateLayout, match[3])
		if err != nil {
			return nil
		}
		return &Metadata{
			Author:     strings.TrimSpace(match[1]),
			Title:      strings.TrimSpace(match[2]),
			LessonDate: lessonDate,
		}
	}

	if match := noSeparatorPattern.FindStringSubmatch(clean); match != nil {
		lessonDate, err := time.Parse(dateLayout, match[2])
		if err != nil {
			return nil
		}
		author := strings.TrimSpace(match[1])
		return &Metadata{
			Author:     author,
			Title:      author,
			LessonDate: lessonDate,
		}
	}

	return nil
}

// IdentityHash derives a stable key for an author/title combination. It is a
// secondary dedup key; the content fingerprint remains the store identity.
func IdentityHash(author, title string) string {
	sum := md5.Sum([]byte(strings.ToLower(author) + "|" + strings.ToLower(title)))
	return hex.EncodeToString(sum[:])
}
