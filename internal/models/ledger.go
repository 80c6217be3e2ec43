package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset classes excluded from the internal asset list.
const (
	AssetClassEquity    = "equity"
	AssetClassLiability = "liability"
)

// Asset represents a row of the assets table
type Asset struct {
	ID           string  `json:"id" gorm:"primaryKey;column:id"`
	UserID       *string `json:"user_id,omitempty" gorm:"column:user_id"`
	Ticker       string  `json:"ticker" gorm:"column:ticker"`
	Name         string  `json:"name" gorm:"column:name"`
	AssetClass   string  `json:"asset_class" gorm:"column:asset_class"`
	CurrencyCode string  `json:"currency_code" gorm:"column:currency_code"`
	LogoURL      *string `json:"logo_url,omitempty" gorm:"column:logo_url"`
}

func (Asset) TableName() string {
	return "assets"
}

// Debt represents a row of the debts table. A debt is open until a repayment
// transaction is linked through RepayTxnID.
type Debt struct {
	ID              string          `gorm:"primaryKey;column:id"`
	UserID          *string         `gorm:"column:user_id"`
	LenderName      string          `gorm:"column:lender_name"`
	PrincipalAmount decimal.Decimal `gorm:"column:principal_amount"`
	InterestRate    decimal.Decimal `gorm:"column:interest_rate"`
	CurrencyCode    string          `gorm:"column:currency_code"`
	StartDate       time.Time       `gorm:"column:start_date"`
	RepayTxnID      *string         `gorm:"column:repay_txn_id"`
}

func (Debt) TableName() string {
	return "debts"
}

// DebtView is the client-facing shape of a debt.
type DebtView struct {
	ID              string  `json:"id"`
	LenderName      string  `json:"lender_name"`
	PrincipalAmount float64 `json:"principal_amount"`
	InterestRate    float64 `json:"interest_rate"`
	CurrencyCode    string  `json:"currency_code"`
	StartDate       string  `json:"start_date"`
}

// View converts the stored debt to its client-facing shape.
func (d Debt) View() DebtView {
	return DebtView{
		ID:              d.ID,
		LenderName:      d.LenderName,
		PrincipalAmount: d.PrincipalAmount.InexactFloat64(),
		InterestRate:    d.InterestRate.InexactFloat64(),
		CurrencyCode:    d.CurrencyCode,
		StartDate:       d.StartDate.Format(DateLayout),
	}
}

// TransactionLegRow is a row of transaction_legs joined with its asset.
type TransactionLegRow struct {
	ID            string              `gorm:"column:id"`
	TransactionID string              `gorm:"column:transaction_id"`
	AccountID     string              `gorm:"column:account_id"`
	AssetID       string              `gorm:"column:asset_id"`
	Quantity      decimal.NullDecimal `gorm:"column:quantity"`
	Amount        decimal.NullDecimal `gorm:"column:amount"`
	CurrencyCode  string              `gorm:"column:currency_code"`
	AssetName     *string             `gorm:"column:asset_name"`
	AssetTicker   *string             `gorm:"column:asset_ticker"`
	AssetClass    *string             `gorm:"column:asset_class"`
}

func (TransactionLegRow) TableName() string {
	return "transaction_legs"
}

type LegAsset struct {
	Name       *string `json:"name"`
	Ticker     *string `json:"ticker"`
	AssetClass *string `json:"asset_class"`
}

type TransactionLeg struct {
	ID            string   `json:"id"`
	TransactionID string   `json:"transaction_id"`
	AccountID     string   `json:"account_id"`
	AssetID       string   `json:"asset_id"`
	Quantity      float64  `json:"quantity"`
	Amount        float64  `json:"amount"`
	CurrencyCode  string   `json:"currency_code"`
	Asset         LegAsset `json:"assets"`
}

// Profile is a registered user; snapshot generation runs once per profile.
type Profile struct {
	ID string `gorm:"primaryKey;column:id"`
}

func (Profile) TableName() string {
	return "profiles"
}

// MonthlySnapshot represents a row of the monthly_snapshots table
type MonthlySnapshot struct {
	Date        time.Time           `gorm:"column:date"`
	Deposits    decimal.NullDecimal `gorm:"column:deposits"`
	Withdrawals decimal.NullDecimal `gorm:"column:withdrawals"`
	PnL         decimal.NullDecimal `gorm:"column:pnl"`
	Fee         decimal.NullDecimal `gorm:"column:fee"`
	Interest    decimal.NullDecimal `gorm:"column:interest"`
	Tax         decimal.NullDecimal `gorm:"column:tax"`
}

func (MonthlySnapshot) TableName() string {
	return "monthly_snapshots"
}

type MonthlySnapshotReport struct {
	Date        string  `json:"date"`
	Deposits    float64 `json:"deposits"`
	Withdrawals float64 `json:"withdrawals"`
	PnL         float64 `json:"pnl"`
	Fee         float64 `json:"fee"`
	Interest    float64 `json:"interest"`
	Tax         float64 `json:"tax"`
}

// YearlySnapshot represents a row of the yearly_snapshots table
type YearlySnapshot struct {
	Year        int                 `gorm:"column:year"`
	Deposits    decimal.NullDecimal `gorm:"column:deposits"`
	Withdrawals decimal.NullDecimal `gorm:"column:withdrawals"`
	EquityRet   decimal.NullDecimal `gorm:"column:equity_ret"`
	VNRet       decimal.NullDecimal `gorm:"column:vn_ret"`
}

func (YearlySnapshot) TableName() string {
	return "yearly_snapshots"
}

type YearlySnapshotReport struct {
	Year          int     `json:"year"`
	Deposits      float64 `json:"deposits"`
	Withdrawals   float64 `json:"withdrawals"`
	EquityReturn  float64 `json:"equity_return"`
	VNIndexReturn float64 `json:"vnindex_return"`
}

// StockAnnualPnL represents a row of the stock_annual_pnl view
type StockAnnualPnL struct {
	AssetID  string              `gorm:"column:asset_id"`
	Ticker   string              `gorm:"column:ticker"`
	Year     int                 `gorm:"column:year"`
	TotalPnL decimal.NullDecimal `gorm:"column:total_pnl"`
}

func (StockAnnualPnL) TableName() string {
	return "stock_annual_pnl"
}

type StockPnL struct {
	AssetID  string  `json:"asset_id"`
	Ticker   string  `json:"ticker"`
	TotalPnL float64 `json:"total_pnl"`
}

// SnapshotRun summarizes one snapshot generation pass.
type SnapshotRun struct {
	Period    Period            `json:"period"`
	Succeeded int               `json:"succeeded"`
	Failures  []SnapshotFailure `json:"failures"`
}

type SnapshotFailure struct {
	UserID string `json:"user_id"`
	Error  string `json:"error"`
}
