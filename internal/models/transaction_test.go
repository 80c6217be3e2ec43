package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
)

const (
	assetID = "8f14e45f-ceea-467a-9575-1a2b3c4d5e6f"
	cashID  = "c9f0f895-fb98-4b91-8f3a-0c1d2e3f4a5b"
	debtID  = "45c48cce-2e2d-4fbd-8a1b-9e8d7c6b5a49"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestTransactionRequest_Valid(t *testing.T) {
	tests := []struct {
		name string
		req  TransactionRequest
	}{
		{"deposit", TransactionRequest{TransactionType: TxnDeposit, TransactionDate: "2025-01-02", Asset: assetID, Quantity: dec("1000")}},
		{"buy", TransactionRequest{TransactionType: TxnBuy, TransactionDate: "2025-01-02", Asset: assetID, CashAssetID: cashID, Quantity: dec("10"), Price: dec("25.5")}},
		{"buy with fees", TransactionRequest{TransactionType: TxnBuy, TransactionDate: "2025-01-02", Asset: assetID, CashAssetID: cashID, Quantity: dec("10"), Price: dec("25.5"), Fees: dec("0.15")}},
		{"sell zero fees", TransactionRequest{TransactionType: TxnSell, TransactionDate: "2025-01-02", Asset: assetID, CashAssetID: cashID, Quantity: dec("10"), Price: dec("25.5"), Fees: dec("0")}},
		{"sell zero price", TransactionRequest{TransactionType: TxnSell, TransactionDate: "2025-01-02", Asset: assetID, CashAssetID: cashID, Quantity: dec("10"), Price: dec("0")}},
		{"dividend", TransactionRequest{TransactionType: TxnDividend, TransactionDate: "2025-01-02", Asset: cashID, DividendAsset: assetID, Quantity: dec("50")}},
		{"expense", TransactionRequest{TransactionType: TxnExpense, TransactionDate: "2025-01-02", Asset: cashID, Quantity: dec("5"), Description: "Custody fee"}},
		{"borrow", TransactionRequest{TransactionType: TxnBorrow, TransactionDate: "2025-01-02", Asset: cashID, Lender: "Bank", Principal: dec("1000000"), InterestRate: dec("9.5")}},
		{"debt payment", TransactionRequest{TransactionType: TxnDebtPayment, TransactionDate: "2025-01-02", Debt: debtID, CashAssetID: cashID, PrincipalPayment: dec("100"), InterestPayment: dec("0")}},
		{"split", TransactionRequest{TransactionType: TxnSplit, TransactionDate: "2025-01-02", Asset: assetID, SplitQuantity: dec("100")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.req.Validate())
		})
	}
}

func TestTransactionRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		req   TransactionRequest
		field string
	}{
		{"unknown type", TransactionRequest{TransactionType: "transfer", TransactionDate: "2025-01-02"}, "transaction_type"},
		{"bad date", TransactionRequest{TransactionType: TxnDeposit, TransactionDate: "02/01/2025", Asset: assetID, Quantity: dec("1")}, "transaction_date"},
		{"asset not uuid", TransactionRequest{TransactionType: TxnDeposit, TransactionDate: "2025-01-02", Asset: "VCB", Quantity: dec("1")}, "asset"},
		{"missing asset", TransactionRequest{TransactionType: TxnWithdraw, TransactionDate: "2025-01-02", Quantity: dec("1")}, "asset"},
		{"missing cash asset", TransactionRequest{TransactionType: TxnBuy, TransactionDate: "2025-01-02", Asset: assetID, Quantity: dec("1"), Price: dec("1")}, "cash_asset_id"},
		{"zero quantity", TransactionRequest{TransactionType: TxnBuy, TransactionDate: "2025-01-02", Asset: assetID, CashAssetID: cashID, Quantity: dec("0"), Price: dec("1")}, "quantity"},
		{"negative price", TransactionRequest{TransactionType: TxnSell, TransactionDate: "2025-01-02", Asset: assetID, CashAssetID: cashID, Quantity: dec("1"), Price: dec("-1")}, "price"},
		{"negative fees", TransactionRequest{TransactionType: TxnBuy, TransactionDate: "2025-01-02", Asset: assetID, CashAssetID: cashID, Quantity: dec("1"), Price: dec("1"), Fees: dec("-0.5")}, "fees"},
		{"missing description", TransactionRequest{TransactionType: TxnExpense, TransactionDate: "2025-01-02", Asset: cashID, Quantity: dec("1")}, "description"},
		{"missing debt", TransactionRequest{TransactionType: TxnDebtPayment, TransactionDate: "2025-01-02", CashAssetID: cashID, PrincipalPayment: dec("1"), InterestPayment: dec("0")}, "debt"},
		{"negative interest", TransactionRequest{TransactionType: TxnDebtPayment, TransactionDate: "2025-01-02", Debt: debtID, CashAssetID: cashID, PrincipalPayment: dec("1"), InterestPayment: dec("-2")}, "interest_payment"},
		{"missing split quantity", TransactionRequest{TransactionType: TxnSplit, TransactionDate: "2025-01-02", Asset: assetID}, "split_quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)

			var verr *apperrors.ErrValidation
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestDebtView(t *testing.T) {
	d := Debt{
		ID:              debtID,
		LenderName:      "Bank",
		PrincipalAmount: decimal.RequireFromString("1500000.50"),
		InterestRate:    decimal.RequireFromString("8.25"),
		CurrencyCode:    "VND",
		StartDate:       day(2024, 6, 1),
	}
	v := d.View()
	assert.Equal(t, 1500000.5, v.PrincipalAmount)
	assert.Equal(t, 8.25, v.InterestRate)
	assert.Equal(t, "2024-06-01", v.StartDate)
}
