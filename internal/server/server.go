// Package server exposes the shed services over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ay-kasimov/shed/internal/config"
	"github.com/ay-kasimov/shed/internal/datasync"
	"github.com/ay-kasimov/shed/internal/export"
	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/settings"
	"github.com/ay-kasimov/shed/internal/statistics"
	"github.com/ay-kasimov/shed/internal/tag"
)

// Server wires the domain services into HTTP handlers.
type Server struct {
	cfg      *config.Config
	lessons  *lesson.Service
	tags     *tag.Service
	stats    *statistics.Service
	settings *settings.Service
	syncer   *datasync.Syncer
	exporter *export.Exporter
}

// NewServer creates a new Server.
func NewServer(
	cfg *config.Config,
	lessons *lesson.Service,
	tags *tag.Service,
	stats *statistics.Service,
	settings *settings.Service,
	syncer *datasync.Syncer,
	exporter *export.Exporter,
) *Server {
	return &Server{
		cfg:      cfg,
		lessons:  lessons,
		tags:     tags,
		stats:    stats,
		settings: settings,
		syncer:   syncer,
		exporter: exporter,
	}
}

// Handler builds the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)

		r.Route("/lessons", func(r chi.Router) {
			r.Get("/", s.handleListLessons)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetLesson)
				r.Patch("/status", s.handleUpdateLessonStatus)
				r.Get("/transcript", s.handleLessonTranscript)
				r.Get("/tags", s.handleLessonTags)
				r.Post("/tags", s.handleAttachTag)
				r.Delete("/tags/{tagID}", s.handleDetachTag)
			})
		})
		r.Get("/search/transcripts", s.handleSearchTranscripts)
		r.Get("/suggestions", s.handleSuggestions)

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)
			r.Post("/", s.handleCreateTag)
			r.Delete("/{id}", s.handleDeleteTag)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", s.handleStatsOverview)
			r.Get("/streak", s.handleStreak)
			r.Get("/records", s.handleRecords)
			r.Post("/records/recompute", s.handleRecomputeRecords)
			r.Get("/goals", s.handleGoals)
			r.Get("/heatmap", s.handleHeatmap)
			r.Get("/series", s.handleSeries)
			r.Get("/backlog", s.handleBacklog)
			r.Get("/comparison", s.handleComparison)
			r.Get("/authors", s.handleAuthors)
		})

		r.Get("/settings", s.handleListSettings)
		r.Put("/settings", s.handleUpdateSetting)
		r.Post("/sync", s.handleSync)
		r.Get("/export", s.handleExport)
	})

	return corsMiddleware(r, s.cfg.Server.CORS.AllowedOrigins)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
