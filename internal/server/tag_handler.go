package server

import (
	"net/http"
	"strings"

	"github.com/ay-kasimov/shed/internal/tag"
)

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	counts, err := s.tags.UsageCounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if counts == nil {
		counts = []tag.TagCount{}
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "request body must be JSON with a name field")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	created, isNew, err := s.tags.Create(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	writeJSON(w, status, created)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, "tag id must be an integer")
		return
	}
	if err := s.tags.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLessonTags(w http.ResponseWriter, r *http.Request) {
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
	tags, err := s.tags.ForLesson(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tags == nil {
		tags = []tag.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleAttachTag(w http.ResponseWriter, r *http.Request) {
	lessonID, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, "lesson id must be an integer")
		return
	}
	var body struct {
		TagID int64 `json:"tag_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "request body must be JSON with a tag_id field")
		return
	}
	ctx := r.Context()
	l, err := s.lessons.Get(ctx, lessonID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if l == nil {
		writeNotFound(w, "lesson not found")
		return
	}
	existing, err := s.tags.Get(ctx, body.TagID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if existing == nil {
		writeNotFound(w, "tag not found")
		return
	}

	// Re-attaching an already assigned tag is benign and returns the same
	// tag list as a fresh attach.
	if _, err := s.tags.Attach(ctx, lessonID, body.TagID); err != nil {
		writeError(w, r, err)
		return
	}
	tags, err := s.tags.ForLesson(ctx, lessonID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleDetachTag(w http.ResponseWriter, r *http.Request) {
	lessonID, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, "lesson id must be an integer")
		return
	}
	tagID, err := idParam(r, "tagID")
	if err != nil {
		writeBadRequest(w, "tag id must be an integer")
		return
	}
	if _, err := s.tags.Detach(r.Context(), lessonID, tagID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
