package handlers

import (
	"net/http"
	"strconv"

	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/services"
)

// InternalHandler serves the owner's reports to trusted callers holding the
// internal secret.
type InternalHandler struct {
	reports   services.ReportingService
	snapshots services.SnapshotService
	now       Clock
}

func NewInternalHandler(reports services.ReportingService, snapshots services.SnapshotService, now Clock) *InternalHandler {
	return &InternalHandler{reports: reports, snapshots: snapshots, now: now}
}

// HandlePnL handles GET /api/internal/pnl
// @Summary PnL by range
// @Description Profit and loss keyed by range label (all_time, ytd, mtd, ...)
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {object} map[string]number
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/pnl [get]
func (h *InternalHandler) HandlePnL(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.PnLByRange(r.Context(), "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleTWR handles GET /api/internal/twr
// @Summary TWR by range
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {object} map[string]number
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/twr [get]
func (h *InternalHandler) HandleTWR(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.TWRByRange(r.Context(), "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleBalanceSheet handles GET /api/internal/balance-sheet
// @Summary Balance sheet
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {object} object
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/balance-sheet [get]
func (h *InternalHandler) HandleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.reports.BalanceSheet(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// HandleEquityChart handles GET /api/internal/equity-chart
// @Summary Equity chart per range
// @Description Sampled net equity series grouped by range label
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {object} map[string][]models.EquityPoint
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/equity-chart [get]
func (h *InternalHandler) HandleEquityChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.reports.EquityChartByRange(r.Context(), "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// HandleBenchmarkChart handles GET /api/internal/benchmark-chart
// @Summary Benchmark chart per range
// @Description Sampled portfolio and VN-Index series grouped by range label
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {object} map[string][]models.BenchmarkPoint
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/benchmark-chart [get]
func (h *InternalHandler) HandleBenchmarkChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.reports.BenchmarkChartByRange(r.Context(), "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// HandleAnnualReturn handles GET /api/internal/annual-return
// @Summary Annual returns
// @Description Portfolio and VN-Index return per year; missing returns are null
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {object} map[string]models.AnnualReturn
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/annual-return [get]
func (h *InternalHandler) HandleAnnualReturn(w http.ResponseWriter, r *http.Request) {
	returns, err := h.reports.AnnualReturns(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, returns)
}

// HandleAnnualReturnChart handles GET /api/internal/annual-return-chart
// @Summary Benchmark chart for one year
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Param year query string true "Year (YYYY)"
// @Success 200 {array} models.BenchmarkPoint
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/annual-return-chart [get]
func (h *InternalHandler) HandleAnnualReturnChart(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if year == 0 {
		badRequest(w, r, "Missing year parameter")
		return
	}
	period, err := models.ResolveRange(strconv.Itoa(year), h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	points, err := h.reports.AnnualReturnChart(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// HandleCashflow handles GET /api/internal/cashflow
// @Summary Yearly deposits and withdrawals
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Param year query string false "Only this year (YYYY)"
// @Success 200 {array} models.YearlyCashflow
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/cashflow [get]
func (h *InternalHandler) HandleCashflow(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.reports.Cashflow(r.Context(), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleMonthlyData handles GET /api/internal/monthly-data
// @Summary Monthly snapshots
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {array} models.MonthlySnapshotReport
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/monthly-data [get]
func (h *InternalHandler) HandleMonthlyData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.MonthlySnapshots(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleYearlyData handles GET /api/internal/yearly-data
// @Summary Yearly snapshots
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {array} models.YearlySnapshotReport
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/yearly-data [get]
func (h *InternalHandler) HandleYearlyData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.YearlySnapshots(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleDebts handles GET /api/internal/debts
// @Summary Open debts
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {array} models.DebtView
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/debts [get]
func (h *InternalHandler) HandleDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.reports.OpenDebts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, debts)
}

// HandleAssets handles GET /api/internal/assets
// @Summary Holdable assets
// @Description Assets other than equity and liability accounts
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {array} models.Asset
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/assets [get]
func (h *InternalHandler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.reports.Assets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

// HandleStockHoldings handles GET /api/internal/stock-holdings
// @Summary Stock holdings
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {array} models.StockHolding
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/stock-holdings [get]
func (h *InternalHandler) HandleStockHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.reports.StockHoldings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

// HandlePnLByStock handles GET /api/internal/pnl-by-stock
// @Summary Realized PnL per stock and year
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Success 200 {object} map[string][]models.StockPnL
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/pnl-by-stock [get]
func (h *InternalHandler) HandlePnLByStock(w http.ResponseWriter, r *http.Request) {
	byYear, err := h.reports.StockPnLByYear(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, byYear)
}

// HandleTransactions handles GET /api/internal/transactions
// @Summary Transactions in a window
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Param time query string false "Range token (YYYY, 1m, 3m, 6m, 1y, mtd, ytd, all)"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} object
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/transactions [get]
func (h *InternalHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	period, err := parseWindow(r, camelWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	txns, err := h.reports.Transactions(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// HandleTxnDetails handles GET /api/internal/txn-details
// @Summary Transaction details
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Param txnID query string true "Transaction id"
// @Param isExpense query bool false "Include expense legs"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/txn-details [get]
func (h *InternalHandler) HandleTxnDetails(w http.ResponseWriter, r *http.Request) {
	txnID := r.URL.Query().Get("txnID")
	if txnID == "" {
		badRequest(w, r, "txnID is required")
		return
	}
	includeExpenses, _ := strconv.ParseBool(r.URL.Query().Get("isExpense"))

	details, err := h.reports.TransactionDetails(r.Context(), txnID, includeExpenses)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// HandleGenerateSnapshots handles POST /api/internal/snapshots
// @Summary Generate performance snapshots
// @Description Regenerates snapshots for every profile from start_date (default today) through today
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Param start_date query string false "Backfill from (YYYY-MM-DD)"
// @Success 200 {object} models.SnapshotRun
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/snapshots [post]
func (h *InternalHandler) HandleGenerateSnapshots(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format(models.DateLayout)
	start := r.URL.Query().Get("start_date")
	if start == "" {
		start = today
	}
	period, err := models.ParsePeriod(start, today)
	if err != nil {
		writeError(w, r, err)
		return
	}

	run, err := h.snapshots.Generate(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
