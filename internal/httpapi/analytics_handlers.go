package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bhojnalaya/ordercore/internal/analytics"
	"github.com/bhojnalaya/ordercore/pkg/types"
)

// parseFilter reads the optional start/end query params (YYYY-MM-DD,
// inclusive on both ends).
func parseFilter(r *http.Request) (analytics.Filter, error) {
	var f analytics.Filter
	if raw := r.URL.Query().Get("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, types.NewValidationError("start", "must be YYYY-MM-DD")
		}
		f.From = t
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, types.NewValidationError("end", "must be YYYY-MM-DD")
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, types.NewValidationError("end", "must not be before start")
	}
	return f, nil
}

func (s *Server) analyticsSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary, err := s.analytics.Summary(r.Context(), filter, actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) analyticsStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	buckets, err := s.analytics.StatusBreakdown(r.Context(), filter, actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) analyticsTopItems(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, r, types.NewValidationError("n", "must be a positive integer"))
			return
		}
		n = parsed
	}
	items, err := s.analytics.TopItems(r.Context(), filter, n, actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) analyticsCategorySales(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	categories, err := s.analytics.CategorySalesFor(r.Context(), filter, actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Server) analyticsDailyTrend(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trend, err := s.analytics.DailyTrend(r.Context(), filter, actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, trend)
}

func (s *Server) analyticsDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dash, err := s.analytics.DashboardFor(r.Context(), filter, actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dash)
}
