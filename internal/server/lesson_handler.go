package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ay-kasimov/shed/internal/lesson"
)

const (
	searchResultLimit   = 20
	prioritySuggestions = 5
)

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := lesson.Filter{
		Author: q.Get("author"),
		Search: q.Get("search"),
	}
	if raw := q.Get("status"); raw != "" {
		status, ok := lesson.ParseStatus(raw)
		if !ok {
			writeBadRequest(w, fmt.Sprintf("unknown status %q", raw))
			return
		}
		filter.Status = status
	}
	year, err := intQuery(r, "year", 0)
	if err != nil {
		writeBadRequest(w, "year must be an integer")
		return
	}
	filter.Year = year
	month, err := intQuery(r, "month", 0)
	if err != nil {
		writeBadRequest(w, "month must be an integer")
		return
	}
	filter.Month = month
	if raw := q.Get("tags"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				writeBadRequest(w, fmt.Sprintf("invalid tag id %q", part))
				return
			}
			filter.TagIDs = append(filter.TagIDs, id)
		}
	}
	page, err := intQuery(r, "page", 1)
	if err != nil {
		writeBadRequest(w, "page must be an integer")
		return
	}

	result, err := s.lessons.ListPage(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, "lesson id must be an integer")
		return
	}
	l, err := s.lessons.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if l == nil {
		writeNotFound(w, "lesson not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleUpdateLessonStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, "lesson id must be an integer")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "request body must be JSON with a status field")
		return
	}
	updated, err := s.lessons.UpdateStatus(r.Context(), id, lesson.Status(body.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type transcriptResponse struct {
	LessonID   int64  `json:"lesson_id"`
	Transcript string `json:"transcript"`
}

func (s *Server) handleLessonTranscript(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, "lesson id must be an integer")
		return
	}
	l, err := s.lessons.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if l == nil {
		writeNotFound(w, "lesson not found")
		return
	}
	if !l.HasTranscript() {
		writeNotFound(w, fmt.Sprintf("no transcript stored for lesson %d", id))
		return
	}
	writeJSON(w, http.StatusOK, transcriptResponse{LessonID: l.ID, Transcript: *l.Transcript})
}

func (s *Server) handleSearchTranscripts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeBadRequest(w, "q is required")
		return
	}
	limit, err := intQuery(r, "limit", searchResultLimit)
	if err != nil {
		writeBadRequest(w, "limit must be an integer")
		return
	}
	results, err := s.lessons.SearchTranscripts(r.Context(), query, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if results == nil {
		results = []lesson.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

type suggestionsResponse struct {
	Priority   []lesson.Lesson       `json:"priority"`
	OfTheDay   []lesson.Lesson       `json:"lesson_of_the_day"`
	Rediscover *lesson.Lesson        `json:"rediscover,omitempty"`
	Review     []lesson.ReviewBucket `json:"review"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	priority, err := s.lessons.PrioritySuggestions(ctx, prioritySuggestions)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ofTheDay, err := s.lessons.LessonOfTheDay(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rediscover, err := s.lessons.Rediscover(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	review, err := s.lessons.ReviewQueue(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{
		Priority:   priority,
		OfTheDay:   ofTheDay,
		Rediscover: rediscover,
		Review:     review,
	})
}
