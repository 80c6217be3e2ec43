package handlers

import (
	"net/http"

	"github.com/tropicaldog17/folio/internal/auth"
	apperrors "github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/services"
)

// PerformanceHandler serves the signed-in user's analytics. Every handler runs
// behind RequireSession and reads the session's own data.
type PerformanceHandler struct {
	reports services.ReportingService
	now     Clock
}

func NewPerformanceHandler(reports services.ReportingService, now Clock) *PerformanceHandler {
	return &PerformanceHandler{reports: reports, now: now}
}

// TWRResponse wraps the time-weighted return of a window.
type TWRResponse struct {
	TWR *float64 `json:"twr"`
}

// session resolves the principal and the requested window.
func (h *PerformanceHandler) session(w http.ResponseWriter, r *http.Request) (*auth.Principal, models.Period, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.Unauthorized())
		return nil, models.Period{}, false
	}
	period, err := parseWindow(r, snakeWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return nil, models.Period{}, false
	}
	return p, period, true
}

// HandleTWR handles GET /api/performance
// @Summary Time-weighted return
// @Tags performance
// @Produce json
// @Security Session
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} TWRResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /performance [get]
func (h *PerformanceHandler) HandleTWR(w http.ResponseWriter, r *http.Request) {
	p, period, ok := h.session(w, r)
	if !ok {
		return
	}
	twr, err := h.reports.TWR(r.Context(), p.UserID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TWRResponse{TWR: twr})
}

// HandlePnL handles GET /api/performance/pnl
// @Summary Monthly PnL with short month names
// @Tags performance
// @Produce json
// @Security Session
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.MonthlyPnL
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /performance/pnl [get]
func (h *PerformanceHandler) HandlePnL(w http.ResponseWriter, r *http.Request) {
	p, period, ok := h.session(w, r)
	if !ok {
		return
	}
	rows, err := h.reports.MonthlyPnL(r.Context(), p.UserID, period, true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleEquity handles GET /api/performance/equity
// @Summary Equity chart
// @Tags performance
// @Produce json
// @Security Session
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.EquityPoint
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /performance/equity [get]
func (h *PerformanceHandler) HandleEquity(w http.ResponseWriter, r *http.Request) {
	p, period, ok := h.session(w, r)
	if !ok {
		return
	}
	points, err := h.reports.EquityChart(r.Context(), p.UserID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// HandleBenchmark handles GET /api/performance/benchmark
// @Summary Portfolio against VN-Index
// @Tags performance
// @Produce json
// @Security Session
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.BenchmarkPoint
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /performance/benchmark [get]
func (h *PerformanceHandler) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	p, period, ok := h.session(w, r)
	if !ok {
		return
	}
	points, err := h.reports.PerformanceBenchmark(r.Context(), p.UserID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// HandleMonthlyExpenses handles GET /api/reporting/monthly-expenses
// @Summary Monthly trading fees, taxes and interest
// @Tags performance
// @Produce json
// @Security Session
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.MonthlyExpense
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reporting/monthly-expenses [get]
func (h *PerformanceHandler) HandleMonthlyExpenses(w http.ResponseWriter, r *http.Request) {
	p, period, ok := h.session(w, r)
	if !ok {
		return
	}
	rows, err := h.reports.MonthlyExpenses(r.Context(), p.UserID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, rows)
}
