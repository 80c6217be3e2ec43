package handlers

import (
	"net/http"

	"github.com/tropicaldog17/folio/internal/models"
)

// HandleDashboard handles GET /api/users/{userId}/dashboard
// @Summary Dashboard
// @Description Ranged TWR and PnL, lifetime monthly returns, equity and benchmark charts, balance sheet and holdings in one response
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {object} models.Dashboard
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/dashboard [get]
func (h *UserHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	lifetime, err := models.ResolveRange(models.RangeAll, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	dashboard, err := h.reports.Dashboard(r.Context(), userID, lifetime)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, dashboard)
}

// HandleHoldings handles GET /api/users/{userId}/holdings
// @Summary Stock and crypto holdings
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {object} models.Holdings
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/holdings [get]
func (h *UserHandler) HandleHoldings(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	holdings, err := h.reports.Holdings(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, holdings)
}

// HandleCryptoHoldings handles GET /api/users/{userId}/crypto-holdings
// @Summary Crypto holdings
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {array} models.CryptoHolding
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/crypto-holdings [get]
func (h *UserHandler) HandleCryptoHoldings(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	holdings, err := h.reports.CryptoHoldings(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, holdings)
}

// HandleEarnings handles GET /api/users/{userId}/earnings
// @Summary Monthly PnL with monthly TWR
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.MonthlyEarning
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/earnings [get]
func (h *UserHandler) HandleEarnings(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	period, err := parseWindow(r, snakeWindow, h.now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.reports.Earnings(r.Context(), userID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, rows)
}

// HandleExpenses handles GET /api/users/{userId}/expenses
// @Summary Monthly expenses from a start date through today
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Success 200 {array} models.MonthlyExpense
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/expenses [get]
func (h *UserHandler) HandleExpenses(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	start := r.URL.Query().Get("start")
	if start == "" {
		badRequest(w, r, "start is required")
		return
	}
	period, err := models.ParsePeriod(start, h.now().Format(models.DateLayout))
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.reports.MonthlyExpenses(r.Context(), userID, period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, rows)
}

// HandleAssetSummary handles GET /api/users/{userId}/asset-summary
// @Summary Asset summary
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {object} object
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/asset-summary [get]
func (h *UserHandler) HandleAssetSummary(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	summary, err := h.reports.AssetSummary(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, summary)
}

// HandleAssetAccountData handles GET /api/users/{userId}/asset-account-data
// @Summary Accounts and assets available to the user
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {object} models.AssetAccountData
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/asset-account-data [get]
func (h *UserHandler) HandleAssetAccountData(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.owner(w, r)
	if !ok {
		return
	}
	data, err := h.reports.AssetAccountData(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeaders(w, p)
	writeJSON(w, http.StatusOK, data)
}

// HandleTransactionForm handles GET /api/users/{userId}/transaction-form
// @Summary Lookup lists for the transaction entry form
// @Tags users
// @Produce json
// @Security Session
// @Param userId path string true "User id"
// @Success 200 {object} models.TransactionForm
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId}/transaction-form [get]
func (h *UserHandler) HandleTransactionForm(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.owner(w, r)
	if !ok {
		return
	}
	form, err := h.reports.TransactionForm(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// HandleTransactionLegs handles GET /api/internal/transaction-legs
// @Summary Legs of a transaction
// @Tags internal
// @Produce json
// @Security InternalSecret
// @Param transactionId query string true "Transaction id"
// @Success 200 {array} models.TransactionLeg
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /internal/transaction-legs [get]
func (h *InternalHandler) HandleTransactionLegs(w http.ResponseWriter, r *http.Request) {
	txnID := r.URL.Query().Get("transactionId")
	if txnID == "" {
		badRequest(w, r, "transactionId is required")
		return
	}
	legs, err := h.reports.TransactionLegs(r.Context(), txnID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, legs)
}
