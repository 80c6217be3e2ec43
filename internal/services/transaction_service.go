package services

import (
	"context"
	"fmt"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/repositories"
)

type transactionService struct {
	ledger repositories.LedgerRepository
	txns   repositories.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(ledger repositories.LedgerRepository, txns repositories.TransactionRepository) TransactionService {
	return &transactionService{ledger: ledger, txns: txns}
}

// PostTransaction validates req, resolves the asset or debt it references and
// runs the matching write procedure. A failure after the lookup is returned
// as is; nothing is rolled back.
func (s *transactionService) PostTransaction(ctx context.Context, userID string, req *models.TransactionRequest) (*models.TransactionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	posting, err := s.buildPosting(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	id, err := s.txns.Post(ctx, posting)
	if err != nil {
		return nil, err
	}
	return &models.TransactionResult{Success: true, TransactionID: id}, nil
}

func (s *transactionService) buildPosting(ctx context.Context, userID string, req *models.TransactionRequest) (repositories.Posting, error) {
	params := repositories.Params{
		"p_user_id":          userID,
		"p_transaction_date": req.TransactionDate,
	}

	switch req.TransactionType {
	case models.TxnDeposit, models.TxnWithdraw:
		asset, err := s.ownedAsset(ctx, userID, req.Asset)
		if err != nil {
			return repositories.Posting{}, err
		}
		params["p_asset_id"] = req.Asset
		params["p_quantity"] = *req.Quantity
		procedure := "add_deposit_transaction"
		params["p_description"] = depositDescription(asset.Ticker)
		if req.TransactionType == models.TxnWithdraw {
			procedure = "add_withdraw_transaction"
			params["p_description"] = asset.Ticker + " withdrawal"
		}
		return repositories.Posting{Procedure: procedure, Params: params, ReturnsResult: true}, nil

	case models.TxnBuy, models.TxnSell:
		asset, err := s.ownedAsset(ctx, userID, req.Asset)
		if err != nil {
			return repositories.Posting{}, err
		}
		params["p_asset_id"] = req.Asset
		params["p_cash_asset_id"] = req.CashAssetID
		params["p_price"] = *req.Price
		if req.Fees != nil && req.Fees.IsPositive() {
			params["p_fees"] = *req.Fees
		}
		if req.TransactionType == models.TxnBuy {
			params["p_quantity"] = *req.Quantity
			params["p_description"] = fmt.Sprintf("Buy %s %s at %s", req.Quantity.String(), asset.Ticker, req.Price.String())
			return repositories.Posting{Procedure: "add_buy_transaction", Params: params}, nil
		}
		params["p_quantity_to_sell"] = *req.Quantity
		params["p_description"] = fmt.Sprintf("Sell %s %s at %s", req.Quantity.String(), asset.Ticker, req.Price.String())
		return repositories.Posting{Procedure: "add_sell_transaction", Params: params}, nil

	case models.TxnIncome:
		params["p_asset_id"] = req.Asset
		params["p_quantity"] = *req.Quantity
		params["p_description"] = req.Description
		params["p_transaction_type"] = req.TransactionType
		return repositories.Posting{Procedure: "add_income_transaction", Params: params}, nil

	case models.TxnDividend:
		payer, err := s.ownedAsset(ctx, userID, req.DividendAsset)
		if err != nil {
			return repositories.Posting{}, err
		}
		params["p_asset_id"] = req.Asset
		params["p_quantity"] = *req.Quantity
		params["p_description"] = "Dividend from " + payer.Ticker
		params["p_transaction_type"] = req.TransactionType
		return repositories.Posting{Procedure: "add_income_transaction", Params: params}, nil

	case models.TxnExpense:
		params["p_asset_id"] = req.Asset
		params["p_quantity"] = *req.Quantity
		params["p_description"] = req.Description
		return repositories.Posting{Procedure: "add_expense_transaction", Params: params}, nil

	case models.TxnBorrow:
		params["p_lender_name"] = req.Lender
		params["p_principal_amount"] = *req.Principal
		params["p_interest_rate"] = *req.InterestRate
		params["p_cash_asset_id"] = req.Asset
		params["p_description"] = fmt.Sprintf("Loan from %s at %s%% p.a", req.Lender, req.InterestRate.String())
		return repositories.Posting{Procedure: "add_borrow_transaction", Params: params}, nil

	case models.TxnDebtPayment:
		debt, err := s.ledger.GetDebt(ctx, req.Debt)
		if err != nil {
			return repositories.Posting{}, err
		}
		if debt.UserID != nil && *debt.UserID != userID {
			return repositories.Posting{}, apperrors.NotFound("debt not found")
		}
		params["p_debt_id"] = req.Debt
		params["p_principal_payment"] = *req.PrincipalPayment
		params["p_interest_payment"] = *req.InterestPayment
		params["p_cash_asset_id"] = req.CashAssetID
		params["p_description"] = "Debt payment to " + debt.LenderName
		return repositories.Posting{Procedure: "add_debt_payment_transaction", Params: params}, nil

	case models.TxnSplit:
		asset, err := s.ownedAsset(ctx, userID, req.Asset)
		if err != nil {
			return repositories.Posting{}, err
		}
		params["p_asset_id"] = req.Asset
		params["p_quantity"] = *req.SplitQuantity
		params["p_description"] = "Stock split for " + asset.Ticker
		return repositories.Posting{Procedure: "add_split_transaction", Params: params}, nil
	}

	return repositories.Posting{}, apperrors.Validation("Invalid transaction type")
}

// ownedAsset loads an asset that is either shared or owned by userID.
// Another user's asset is reported as missing.
func (s *transactionService) ownedAsset(ctx context.Context, userID, id string) (*models.Asset, error) {
	asset, err := s.ledger.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.UserID != nil && *asset.UserID != userID {
		return nil, apperrors.NotFound("asset not found")
	}
	return asset, nil
}

func depositDescription(ticker string) string {
	if ticker == "EPF" {
		return ticker + " monthly contribution"
	}
	return ticker + " deposit"
}
