package repositories

import (
	"context"
	"encoding/json"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
)

// Posting is one write procedure call built by the transaction service.
type Posting struct {
	Procedure string
	Params    Params
	// ReturnsResult marks procedures answering with a json object that
	// carries transaction_id or error.
	ReturnsResult bool
}

type transactionRepository struct {
	client *QueryClient
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(client *QueryClient) TransactionRepository {
	return &transactionRepository{client: client}
}

// Post runs the posting and returns the created transaction id when the
// procedure reports one.
func (r *transactionRepository) Post(ctx context.Context, p Posting) (string, error) {
	if !p.ReturnsResult {
		return "", r.client.CallExec(ctx, p.Procedure, p.Params)
	}

	raw, err := r.client.CallJSON(ctx, p.Procedure, p.Params)
	if err != nil {
		return "", err
	}
	var result struct {
		TransactionID *string `json:"transaction_id"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", apperrors.Upstream("decode "+p.Procedure+" result", err)
	}
	if result.TransactionID == nil {
		return "", nil
	}
	return *result.TransactionID, nil
}
