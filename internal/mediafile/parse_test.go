package mediafile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     *Metadata
	}{
		{
			name:     "author, title and date",
			filename: "John Smith - Barre Chords 01-06-2023.mp4",
			want: &Metadata{
				Author:     "John Smith",
				Title:      "Barre Chords",
				LessonDate: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "no separator falls back to author as title",
			filename: "John Smith 01-06-2023.mp4",
			want: &Metadata{
				Author:     "John Smith",
				Title:      "John Smith",
				LessonDate: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "extra separators stay in the title",
			filename: "Joe Satriani - Legato - Part 2 05-11-2022.mp4",
			want: &Metadata{
				Author:     "Joe Satriani",
				Title:      "Legato - Part 2",
				LessonDate: time.Date(2022, time.November, 5, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "uppercase extension",
			filename: "Paul Gilbert - String Skipping 10-03-2024.MP4",
			want: &Metadata{
				Author:     "Paul Gilbert",
				Title:      "String Skipping",
				LessonDate: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "non mp4 container",
			filename: "Tommy Emmanuel - Fingerstyle Basics 21-09-2021.mkv",
			want: &Metadata{
				Author:     "Tommy Emmanuel",
				Title:      "Fingerstyle Basics",
				LessonDate: time.Date(2021, time.September, 21, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "surrounding whitespace is trimmed",
			filename: "  Guthrie Govan - Phrasing 14-02-2022.mp4  ",
			want: &Metadata{
				Author:     "Guthrie Govan",
				Title:      "Phrasing",
				LessonDate: time.Date(2022, time.February, 14, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "no date",
			filename: "not a valid name.mp4",
			want:     nil,
		},
		{
			name:     "impossible date",
			filename: "John Smith - Barre Chords 32-13-2023.mp4",
			want:     nil,
		},
		{
			name:     "date without extension",
			filename: "John Smith - Barre Chords 01-06-2023",
			want:     nil,
		},
		{
			name:     "empty",
			filename: "",
			want:     nil,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, ParseFilename(test.filename))
		})
	}
}

func TestIdentityHash(t *testing.T) {
	hash := IdentityHash("John Smith", "Barre Chords")
	assert.Len(t, hash, 32)
	assert.Equal(t, hash, IdentityHash("JOHN SMITH", "barre chords"))
	assert.NotEqual(t, hash, IdentityHash("John Smith", "Sweep Picking"))
	assert.NotEqual(t, hash, IdentityHash("Jane Doe", "Barre Chords"))
}
