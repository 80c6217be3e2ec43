package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tropicaldog17/folio/internal/auth"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/services"
)

// UserHandler serves a user's own reports under /api/users/{userId}.
// Every handler runs behind RequireSession.
type UserHandler struct {
	reports services.ReportingService
	now     Clock
}

func NewUserHandler(reports services.ReportingService, now Clock) *UserHandler {
	return &UserHandler{reports: reports, now: now}
}

// owner returns the path user once the session principal is known to own it.
func (h *UserHandler) owner(w http.ResponseWriter, r *http.Request) (string, *auth.Principal, bool) {
	p, _ := auth.FromContext(r.Context())
	userID := mux.Vars(r)["userId"]
	if err := auth.RequireOwner(p, userID); err != nil {
		writeError(w, r, err)
		return "", nil, false
	}
	return userID, p, true
}

// HandlePnL handles GET /api/users/{userId}/pnl
// @Summary PnL by range for a user
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {object} map[string]number
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/pnl [get]
func (h *UserHandler) HandlePnL(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	report, err := h.reports.PnLByRange(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, report)
}

// HandleTWR handles GET /api/users/{userId}/twr
// @Summary Time-weighted return over a window
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param time query string false "Range token"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {number} number
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/twr [get]
func (h *UserHandler) HandleTWR(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	period, err := parseWindow(r, snakeWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	twr, err := h.reports.TWR(r.Context(), userID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, twr)
}

// HandleBalanceSheet handles GET /api/users/{userId}/balance-sheet
// @Summary Balance sheet
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {object} object
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/balance-sheet [get]
func (h *UserHandler) HandleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.owner(w, r); !ok {
		return
	}
	sheet, err := h.reports.BalanceSheet(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// HandleMonthlyPnL handles GET /api/users/{userId}/monthly-pnl
// @Summary Monthly PnL
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.MonthlyPnL
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/monthly-pnl [get]
func (h *UserHandler) HandleMonthlyPnL(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	period, err := parseWindow(r, snakeWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.reports.MonthlyPnL(r.Context(), userID, period, false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, rows)
}

// HandleMonthlyTWR handles GET /api/users/{userId}/monthly-twr
// @Summary Monthly TWR
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.MonthlyTWR
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/monthly-twr [get]
func (h *UserHandler) HandleMonthlyTWR(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	period, err := parseWindow(r, snakeWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.reports.MonthlyTWR(r.Context(), userID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, rows)
}

// HandleEquityChart handles GET /api/users/{userId}/equity-chart
// @Summary Equity chart over a window
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param time query string false "Range token"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} models.EquityPoint
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/equity-chart [get]
func (h *UserHandler) HandleEquityChart(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	period, err := parseWindow(r, snakeWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	points, err := h.reports.EquityChart(r.Context(), userID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, points)
}

// HandleBenchmarkChart handles GET /api/users/{userId}/benchmark-chart
// @Summary Portfolio against VN-Index over a window
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param time query string false "Range token"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} models.BenchmarkPoint
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/benchmark-chart [get]
func (h *UserHandler) HandleBenchmarkChart(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	period, err := parseWindow(r, snakeWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	points, err := h.reports.PerformanceBenchmark(r.Context(), userID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, points)
}

// HandleDebts handles GET /api/users/{userId}/debts
// @Summary Active debts
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {array} object
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/debts [get]
func (h *UserHandler) HandleDebts(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	debts, err := h.reports.ActiveDebts(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, debts)
}

// HandleFirstSnapshotDate handles GET /api/users/{userId}/first-snapshot-date
// @Summary Date of the user's first snapshot
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {string} string
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/first-snapshot-date [get]
func (h *UserHandler) HandleFirstSnapshotDate(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	first, err := h.reports.FirstSnapshotDate(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, first)
}

// HandleTransactionFeed handles GET /api/users/{userId}/transaction-feed
// @Summary Paged transaction feed
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param page_size query int false "Page size (default 10)"
// @Param page_number query int false "Page number (default 1)"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param asset_class_filter query string false "Asset class"
// @Success 200 {array} models.TransactionFeedItem
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/transaction-feed [get]
func (h *UserHandler) HandleTransactionFeed(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	filter, err := parseFeedFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	feed, err := h.reports.TransactionFeed(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, feed)
}

func parseFeedFilter(r *http.Request) (models.TransactionFeedFilter, error) {
	size, err := parsePositiveInt(r, "page_size")
	if err != nil {
		return models.TransactionFeedFilter{}, err
	}
	page, err := parsePositiveInt(r, "page_number")
	if err != nil {
		return models.TransactionFeedFilter{}, err
	}
	filter := models.TransactionFeedFilter{
		PageSize:         size,
		PageNumber:       page,
		StartDate:        optionalString(r, "start_date"),
		EndDate:          optionalString(r, "end_date"),
		AssetClassFilter: optionalString(r, "asset_class_filter"),
	}
	for name, v := range map[string]*string{"start_date": filter.StartDate, "end_date": filter.EndDate} {
		if v == nil {
			continue
		}
		if _, err := time.Parse(models.DateLayout, *v); err != nil {
			return models.TransactionFeedFilter{}, badDate(name)
		}
	}
	return filter, nil
}

// HandleMetrics handles GET /api/users/{userId}/metrics
// @Summary Performance metrics
// @Description CAGR and Sharpe ratio over the user's lifetime, PnL and return over the window
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Param lifetime_start_date query string true "First day of the user's history (YYYY-MM-DD)"
// @Success 200 {object} models.PerformanceMetrics
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/metrics [get]
func (h *UserHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	window, err := parseWindow(r, snakeWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	raw := r.URL.Query().Get("lifetime_start_date")
	if raw == "" {
		badRequest(w, r, "lifetime_start_date is required")
		return
	}
	lifetimeStart, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		writeError(w, r, badDate("lifetime_start_date"))
		return
	}

	metrics, err := h.reports.Metrics(r.Context(), userID, models.MetricsQuery{Window: window, LifetimeStart: lifetimeStart})
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, metrics)
}
