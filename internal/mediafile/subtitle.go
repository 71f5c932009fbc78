package mediafile

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	sequencePattern = regexp.MustCompile(`^\d+$`)
	markupPattern   = regexp.MustCompile(`<[^>]*>|\{[^}]*\}`)
	spacesPattern   = regexp.MustCompile(`\s+`)
)

// SidecarTranscript reads the ".srt" file sharing the video's base name and
// returns its dialogue as plain text. Sequence numbers, timestamp lines and
// markup are stripped. Returns false when no sidecar exists, it cannot be
// decoded, or nothing remains after cleaning.
func SidecarTranscript(videoPath string) (string, bool) {
	base := strings.TrimSuffix(videoPath, extension(videoPath))
	data, err := os.ReadFile(base + ".srt")
	if err != nil {
		return "", false
	}

	text, ok := decodeSubtitle(data)
	if !ok {
		return "", false
	}

	transcript := cleanSRT(text)
	if transcript == "" {
		return "", false
	}
	return transcript, true
}

func extension(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 && !strings.ContainsAny(path[i:], "/\\") {
		return path[i:]
	}
	return ""
}

// decodeSubtitle interprets raw sidecar bytes as UTF-8 when valid, otherwise
// as Windows-1252, which covers the legacy encoders these files come from.
func decodeSubtitle(data []byte) (string, bool) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), true
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

func cleanSRT(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimSpace(line)
		if line == "" || sequencePattern.MatchString(line) || strings.Contains(line, "-->") {
			continue
		}
		line = markupPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return spacesPattern.ReplaceAllString(strings.Join(parts, " "), " ")
}
