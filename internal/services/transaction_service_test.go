package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
)

const (
	userID    = "11111111-1111-1111-1111-111111111111"
	otherUser = "22222222-2222-2222-2222-222222222222"
	fptID     = "aaaaaaaa-0000-0000-0000-000000000001"
	vndID     = "aaaaaaaa-0000-0000-0000-000000000002"
	epfID     = "aaaaaaaa-0000-0000-0000-000000000003"
	privateID = "aaaaaaaa-0000-0000-0000-000000000004"
	debtID    = "dddddddd-0000-0000-0000-000000000001"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strptr(s string) *string { return &s }

func newTestLedger() *mockLedgerRepo {
	return &mockLedgerRepo{
		assets: map[string]*models.Asset{
			fptID:     {ID: fptID, Ticker: "FPT", AssetClass: "stock"},
			vndID:     {ID: vndID, Ticker: "VND", AssetClass: "cash"},
			epfID:     {ID: epfID, Ticker: "EPF", AssetClass: "retirement"},
			privateID: {ID: privateID, Ticker: "GOLD", UserID: strptr(otherUser)},
		},
		debts: map[string]*models.Debt{
			debtID: {ID: debtID, UserID: strptr(userID), LenderName: "Techcombank"},
		},
	}
}

func decimalParam(t *testing.T, v any) string {
	t.Helper()
	d, ok := v.(decimal.Decimal)
	require.True(t, ok, "expected decimal param, got %T", v)
	return d.String()
}

func TestTransactionService_Buy(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	res, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnBuy,
		TransactionDate: "2024-05-02",
		Asset:           fptID,
		CashAssetID:     vndID,
		Quantity:        amount("100"),
		Price:           amount("120.5"),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, txns.posted, 1)
	p := txns.posted[0]
	assert.Equal(t, "add_buy_transaction", p.Procedure)
	assert.False(t, p.ReturnsResult)
	assert.Equal(t, userID, p.Params["p_user_id"])
	assert.Equal(t, "2024-05-02", p.Params["p_transaction_date"])
	assert.Equal(t, fptID, p.Params["p_asset_id"])
	assert.Equal(t, vndID, p.Params["p_cash_asset_id"])
	assert.Equal(t, "100", decimalParam(t, p.Params["p_quantity"]))
	assert.Equal(t, "Buy 100 FPT at 120.5", p.Params["p_description"])
	assert.NotContains(t, p.Params, "p_fees")
}

func TestTransactionService_BuyWithFees(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnBuy,
		TransactionDate: "2024-05-02",
		Asset:           fptID,
		CashAssetID:     vndID,
		Quantity:        amount("100"),
		Price:           amount("120.5"),
		Fees:            amount("18.08"),
	})
	require.NoError(t, err)

	require.Len(t, txns.posted, 1)
	assert.Equal(t, "18.08", decimalParam(t, txns.posted[0].Params["p_fees"]))
}

func TestTransactionService_NegativeFeesRejected(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnSell,
		TransactionDate: "2024-05-02",
		Asset:           fptID,
		CashAssetID:     vndID,
		Quantity:        amount("10"),
		Price:           amount("130"),
		Fees:            amount("-1"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Empty(t, txns.posted)
}

func TestTransactionService_Sell(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnSell,
		TransactionDate: "2024-05-02",
		Asset:           fptID,
		CashAssetID:     vndID,
		Quantity:        amount("40"),
		Price:           amount("130"),
	})
	require.NoError(t, err)

	p := txns.posted[0]
	assert.Equal(t, "add_sell_transaction", p.Procedure)
	assert.Equal(t, "40", decimalParam(t, p.Params["p_quantity_to_sell"]))
	assert.NotContains(t, p.Params, "p_quantity")
	assert.Equal(t, "Sell 40 FPT at 130", p.Params["p_description"])
}

func TestTransactionService_DepositEchoesTransactionID(t *testing.T) {
	txns := &mockTransactionRepo{id: "txn-9"}
	svc := NewTransactionService(newTestLedger(), txns)

	res, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnDeposit,
		TransactionDate: "2024-05-02",
		Asset:           epfID,
		Quantity:        amount("2500000"),
	})
	require.NoError(t, err)
	assert.Equal(t, &models.TransactionResult{Success: true, TransactionID: "txn-9"}, res)

	p := txns.posted[0]
	assert.Equal(t, "add_deposit_transaction", p.Procedure)
	assert.True(t, p.ReturnsResult)
	assert.Equal(t, "EPF monthly contribution", p.Params["p_description"])
}

func TestTransactionService_Withdraw(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnWithdraw,
		TransactionDate: "2024-05-02",
		Asset:           vndID,
		Quantity:        amount("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "add_withdraw_transaction", txns.posted[0].Procedure)
	assert.Equal(t, "VND withdrawal", txns.posted[0].Params["p_description"])
}

func TestTransactionService_Dividend(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnDividend,
		TransactionDate: "2024-05-02",
		Asset:           vndID,
		DividendAsset:   fptID,
		Quantity:        amount("150000"),
	})
	require.NoError(t, err)

	p := txns.posted[0]
	assert.Equal(t, "add_income_transaction", p.Procedure)
	assert.Equal(t, vndID, p.Params["p_asset_id"])
	assert.Equal(t, models.TxnDividend, p.Params["p_transaction_type"])
	assert.Equal(t, "Dividend from FPT", p.Params["p_description"])
}

func TestTransactionService_Borrow(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnBorrow,
		TransactionDate: "2024-05-02",
		Asset:           vndID,
		Lender:          "Techcombank",
		Principal:       amount("50000000"),
		InterestRate:    amount("8.5"),
	})
	require.NoError(t, err)

	p := txns.posted[0]
	assert.Equal(t, "add_borrow_transaction", p.Procedure)
	assert.Equal(t, vndID, p.Params["p_cash_asset_id"])
	assert.Equal(t, "Loan from Techcombank at 8.5% p.a", p.Params["p_description"])
}

func TestTransactionService_DebtPayment(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType:  models.TxnDebtPayment,
		TransactionDate:  "2024-06-01",
		Debt:             debtID,
		CashAssetID:      vndID,
		PrincipalPayment: amount("1000000"),
		InterestPayment:  amount("0"),
	})
	require.NoError(t, err)

	p := txns.posted[0]
	assert.Equal(t, "add_debt_payment_transaction", p.Procedure)
	assert.Equal(t, debtID, p.Params["p_debt_id"])
	assert.Equal(t, "Debt payment to Techcombank", p.Params["p_description"])
}

func TestTransactionService_DebtPaymentMissingDebt(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType:  models.TxnDebtPayment,
		TransactionDate:  "2024-06-01",
		Debt:             "dddddddd-0000-0000-0000-00000000ffff",
		CashAssetID:      vndID,
		PrincipalPayment: amount("1"),
		InterestPayment:  amount("0"),
	})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Empty(t, txns.posted)
}

func TestTransactionService_OtherUsersDebtIsNotFound(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), otherUser, &models.TransactionRequest{
		TransactionType:  models.TxnDebtPayment,
		TransactionDate:  "2024-06-01",
		Debt:             debtID,
		CashAssetID:      vndID,
		PrincipalPayment: amount("1"),
		InterestPayment:  amount("0"),
	})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "debt not found", apperrors.PublicMessage(err))
	assert.Empty(t, txns.posted)
}

func TestTransactionService_OtherUsersAssetIsNotFound(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnSplit,
		TransactionDate: "2024-06-01",
		Asset:           privateID,
		SplitQuantity:   amount("2"),
	})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Empty(t, txns.posted)
}

func TestTransactionService_ValidationStopsBeforeLookup(t *testing.T) {
	txns := &mockTransactionRepo{}
	svc := NewTransactionService(newTestLedger(), txns)

	_, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnBuy,
		TransactionDate: "2024-06-01",
		Asset:           fptID,
		CashAssetID:     vndID,
		Quantity:        amount("-1"),
		Price:           amount("10"),
	})
	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)
	assert.Empty(t, txns.posted)
}

func TestTransactionService_PostFailureIsReturned(t *testing.T) {
	txns := &mockTransactionRepo{err: apperrors.Upstream("add_expense_transaction", assert.AnError)}
	svc := NewTransactionService(newTestLedger(), txns)

	res, err := svc.PostTransaction(context.Background(), userID, &models.TransactionRequest{
		TransactionType: models.TxnExpense,
		TransactionDate: "2024-06-01",
		Asset:           vndID,
		Quantity:        amount("50000"),
		Description:     "Coffee",
	})
	assert.Nil(t, res)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
	require.Len(t, txns.posted, 1)
	assert.Equal(t, "Coffee", txns.posted[0].Params["p_description"])
}
