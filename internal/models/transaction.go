package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
)

// Transaction types accepted by POST /api/transactions.
const (
	TxnDeposit     = "deposit"
	TxnWithdraw    = "withdraw"
	TxnBuy         = "buy"
	TxnSell        = "sell"
	TxnIncome      = "income"
	TxnDividend    = "dividend"
	TxnExpense     = "expense"
	TxnBorrow      = "borrow"
	TxnDebtPayment = "debt_payment"
	TxnSplit       = "split"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// TransactionRequest is the body of a transaction posting. Which fields are
// required depends on TransactionType.
type TransactionRequest struct {
	TransactionType string `json:"transaction_type" validate:"required,oneof=deposit withdraw buy sell income dividend expense borrow debt_payment split"`
	TransactionDate string `json:"transaction_date" validate:"required,datetime=2006-01-02"`

	Asset         string `json:"asset,omitempty" validate:"omitempty,uuid"`
	CashAssetID   string `json:"cash_asset_id,omitempty" validate:"omitempty,uuid"`
	DividendAsset string `json:"dividend_asset,omitempty" validate:"omitempty,uuid"`
	Debt          string `json:"debt,omitempty" validate:"omitempty,uuid"`

	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	SplitQuantity *decimal.Decimal `json:"split_quantity,omitempty"`
	Fees          *decimal.Decimal `json:"fees,omitempty"`

	Description string `json:"description,omitempty" validate:"max=500"`

	Lender       string           `json:"lender,omitempty" validate:"max=255"`
	Principal    *decimal.Decimal `json:"principal,omitempty"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`

	PrincipalPayment *decimal.Decimal `json:"principal_payment,omitempty"`
	InterestPayment  *decimal.Decimal `json:"interest_payment,omitempty"`
}

// TransactionResult is returned after a successful posting.
type TransactionResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type amountRule struct {
	field    string
	value    *decimal.Decimal
	positive bool
	optional bool
}

// Validate checks formats, the per-type required fields and amount signs.
func (r *TransactionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &apperrors.ErrValidation{Field: verrs[0].Field(), Message: describeTag(verrs[0])}
		}
		return &apperrors.ErrValidation{Field: "body", Message: err.Error()}
	}

	for _, field := range r.requiredStrings() {
		if field.value == "" {
			return &apperrors.ErrValidation{Field: field.name, Message: "is required"}
		}
	}

	for _, rule := range r.amountRules() {
		if rule.value == nil {
			if rule.optional {
				continue
			}
			return &apperrors.ErrValidation{Field: rule.field, Message: "is required"}
		}
		if rule.positive && !rule.value.IsPositive() {
			return &apperrors.ErrValidation{Field: rule.field, Message: "must be positive"}
		}
		if rule.value.IsNegative() {
			return &apperrors.ErrValidation{Field: rule.field, Message: "must be non-negative"}
		}
	}
	return nil
}

type namedString struct {
	name  string
	value string
}

func (r *TransactionRequest) requiredStrings() []namedString {
	asset := namedString{"asset", r.Asset}
	switch r.TransactionType {
	case TxnDeposit, TxnWithdraw, TxnIncome, TxnSplit:
		return []namedString{asset}
	case TxnExpense:
		return []namedString{asset, {"description", r.Description}}
	case TxnBuy, TxnSell:
		return []namedString{asset, {"cash_asset_id", r.CashAssetID}}
	case TxnDividend:
		return []namedString{asset, {"dividend_asset", r.DividendAsset}}
	case TxnBorrow:
		return []namedString{asset, {"lender", r.Lender}}
	case TxnDebtPayment:
		return []namedString{{"debt", r.Debt}, {"cash_asset_id", r.CashAssetID}}
	}
	return nil
}

func (r *TransactionRequest) amountRules() []amountRule {
	switch r.TransactionType {
	case TxnDeposit, TxnWithdraw, TxnIncome, TxnDividend, TxnExpense:
		return []amountRule{{field: "quantity", value: r.Quantity, positive: true}}
	case TxnBuy, TxnSell:
		return []amountRule{
			{field: "quantity", value: r.Quantity, positive: true},
			{field: "price", value: r.Price},
			{field: "fees", value: r.Fees, optional: true},
		}
	case TxnSplit:
		return []amountRule{{field: "split_quantity", value: r.SplitQuantity, positive: true}}
	case TxnBorrow:
		return []amountRule{{field: "principal", value: r.Principal, positive: true}, {field: "interest_rate", value: r.InterestRate}}
	case TxnDebtPayment:
		return []amountRule{{field: "principal_payment", value: r.PrincipalPayment}, {field: "interest_payment", value: r.InterestPayment}}
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a YYYY-MM-DD date"
	case "uuid":
		return "must be a UUID"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}
