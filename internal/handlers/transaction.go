package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tropicaldog17/folio/internal/auth"
	apperrors "github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/services"
)

type TransactionHandler struct {
	service services.TransactionService
}

func NewTransactionHandler(service services.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// HandleCreate handles POST /api/transactions
// @Summary Record a transaction
// @Description Posts a deposit, withdrawal, trade, income, dividend, expense, loan, debt payment or split
// @Tags transactions
// @Accept json
// @Produce json
// @Security Session
// @Param transaction body models.TransactionRequest true "Transaction"
// @Success 200 {object} models.TransactionResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.Unauthorized())
		return
	}

	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, "Invalid JSON")
		return
	}

	result, err := h.service.PostTransaction(r.Context(), p.UserID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
