package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ay-kasimov/shed/internal/datasync"
	"github.com/ay-kasimov/shed/internal/settings"
)

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	items, err := s.settings.All(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []settings.Setting{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "request body must be JSON with key and value fields")
		return
	}
	key := strings.TrimSpace(body.Key)
	if key == "" {
		writeBadRequest(w, "key is required")
		return
	}

	ctx := r.Context()
	switch key {
	case settings.KeyDailyGoal, settings.KeyWeeklyGoal:
		goal, err := strconv.Atoi(strings.TrimSpace(body.Value))
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("%s must be an integer", key))
			return
		}
		if key == settings.KeyDailyGoal {
			err = s.settings.SetDailyGoal(ctx, goal)
		} else {
			err = s.settings.SetWeeklyGoal(ctx, goal)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
	default:
		if err := s.settings.Set(ctx, key, body.Value); err != nil {
			writeError(w, r, err)
			return
		}
	}

	updated, err := s.settings.Get(ctx, key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Library.Directory == "" {
		writeBadRequest(w, "library directory is not configured")
		return
	}
	dryRun := false
	if raw := r.URL.Query().Get("dry_run"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeBadRequest(w, "dry_run must be a boolean")
			return
		}
		dryRun = parsed
	}

	result, err := s.syncer.Sync(r.Context(), s.cfg.Library.Directory, s.cfg.Library.VideoExtensions, datasync.Options{DryRun: dryRun})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.exporter.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("practice-stats-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, bundle)
}
