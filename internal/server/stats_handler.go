package server

import (
	"net/http"
	"time"

	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/record"
	"github.com/ay-kasimov/shed/internal/statistics"
)

const defaultSeriesDays = 30

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.stats.Overview(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	info, err := s.stats.StreakInfo(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.stats.Records(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []record.PersonalRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleRecomputeRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	// Log a record-beating run before the recomputation reads the history.
	if _, err := s.stats.RecordStreak(ctx); err != nil {
		writeError(w, r, err)
		return
	}
	records, err := s.stats.ComputeRecords(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type goalsResponse struct {
	Daily  *statistics.GoalProgress `json:"daily"`
	Weekly *statistics.GoalProgress `json:"weekly"`
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	daily, err := s.stats.DailyProgress(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	weekly, err := s.stats.WeeklyProgress(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goalsResponse{Daily: daily, Weekly: weekly})
}

type heatmapResponse struct {
	Year  int                   `json:"year"`
	Years []int                 `json:"years"`
	Days  []statistics.DayCount `json:"days"`
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	year, err := intQuery(r, "year", time.Now().Year())
	if err != nil {
		writeBadRequest(w, "year must be an integer")
		return
	}
	ctx := r.Context()
	years, err := s.stats.HeatmapYears(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	days, err := s.stats.Heatmap(ctx, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, heatmapResponse{Year: year, Years: years, Days: days})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", defaultSeriesDays)
	if err != nil || days < 1 {
		writeBadRequest(w, "days must be a positive integer")
		return
	}
	series, err := s.stats.ActivitySeries(r.Context(), days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleBacklog(w http.ResponseWriter, r *http.Request) {
	trend, err := s.stats.BacklogTrend(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	comparison, err := s.stats.MonthlyComparison(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

func (s *Server) handleAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := s.stats.AuthorBreakdown(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if authors == nil {
		authors = []lesson.AuthorStat{}
	}
	writeJSON(w, http.StatusOK, authors)
}
