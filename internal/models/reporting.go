package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// LabeledValue is one row of a range-keyed report (get_pnl, get_twr).
type LabeledValue struct {
	Label string
	Value decimal.NullDecimal
}

// RangeReport maps a range label to its value.
type RangeReport map[string]float64

// PnLRow is a row returned by get_pnl
type PnLRow struct {
	RangeLabel string              `gorm:"column:range_label"`
	PnL        decimal.NullDecimal `gorm:"column:pnl"`
}

// TWRRow is a row returned by get_twr
type TWRRow struct {
	RangeLabel string              `gorm:"column:range_label"`
	TWR        decimal.NullDecimal `gorm:"column:twr"`
}

// MonthlyPnLRow is a row returned by get_monthly_pnl; Month is YYYY-MM.
type MonthlyPnLRow struct {
	Month string              `gorm:"column:month"`
	PnL   decimal.NullDecimal `gorm:"column:pnl"`
}

// MonthlyTWRRow is a row returned by get_monthly_twr; Month is YYYY-MM.
type MonthlyTWRRow struct {
	Month string              `gorm:"column:month"`
	TWR   decimal.NullDecimal `gorm:"column:twr"`
}

type MonthlyPnL struct {
	Month string  `json:"month"`
	PnL   float64 `json:"pnl"`
}

type MonthlyTWR struct {
	Month string  `json:"month"`
	TWR   float64 `json:"twr"`
}

// MonthlyExpenseRow is a row returned by get_monthly_expenses
type MonthlyExpenseRow struct {
	Month       string              `gorm:"column:month"`
	TradingFees decimal.NullDecimal `gorm:"column:trading_fees"`
	Taxes       decimal.NullDecimal `gorm:"column:taxes"`
	Interest    decimal.NullDecimal `gorm:"column:interest"`
}

type MonthlyExpense struct {
	Month       string  `json:"month"`
	TradingFees float64 `json:"trading_fees"`
	Taxes       float64 `json:"taxes"`
	Interest    float64 `json:"interest"`
}

// ChartQuery selects a sampled chart series. Without a Period the procedure
// returns one series per range label.
type ChartQuery struct {
	UserID    string
	Period    *Period
	Threshold int
}

// EquityPointRow is a row returned by get_equity_chart_data. The range-sampled
// variant carries range_label and snapshot_date, the windowed variant only date.
type EquityPointRow struct {
	RangeLabel     string              `gorm:"column:range_label"`
	SnapshotDate   *time.Time          `gorm:"column:snapshot_date"`
	Date           *time.Time          `gorm:"column:date"`
	NetEquityValue decimal.NullDecimal `gorm:"column:net_equity_value"`
}

type EquityPoint struct {
	SnapshotDate   string  `json:"snapshot_date"`
	NetEquityValue float64 `json:"net_equity_value"`
}

// BenchmarkPointRow is a row returned by get_benchmark_chart_data,
// get_performance_benchmark_data and sampling_benchmark_data.
type BenchmarkPointRow struct {
	RangeLabel     string              `gorm:"column:range_label"`
	SnapshotDate   *time.Time          `gorm:"column:snapshot_date"`
	Date           *time.Time          `gorm:"column:date"`
	PortfolioValue decimal.NullDecimal `gorm:"column:portfolio_value"`
	VNIValue       decimal.NullDecimal `gorm:"column:vni_value"`
}

type BenchmarkPoint struct {
	RangeLabel     string  `json:"range_label,omitempty"`
	SnapshotDate   string  `json:"snapshot_date"`
	PortfolioValue float64 `json:"portfolio_value"`
	VNIValue       float64 `json:"vni_value"`
}

// AnnualReturnRow is a row returned by get_annual_return
type AnnualReturnRow struct {
	Year      string              `gorm:"column:yr"`
	EquityRet decimal.NullDecimal `gorm:"column:equity_ret"`
	VNRet     decimal.NullDecimal `gorm:"column:vn_ret"`
}

// AnnualReturn keeps missing returns as null: a year without a benchmark
// value is not a zero return.
type AnnualReturn struct {
	EquityReturn  *float64 `json:"equity_return"`
	VNIndexReturn *float64 `json:"vnindex_return"`
}

// CashflowRow is a row returned by get_annual_cashflow
type CashflowRow struct {
	Year        int                 `gorm:"column:year"`
	Deposits    decimal.NullDecimal `gorm:"column:deposits"`
	Withdrawals decimal.NullDecimal `gorm:"column:withdrawals"`
}

type YearlyCashflow struct {
	Year        int     `json:"year"`
	Deposits    float64 `json:"deposits"`
	Withdrawals float64 `json:"withdrawals"`
}

// StockHoldingRow is a row returned by get_stock_holdings
type StockHoldingRow struct {
	Ticker      string              `gorm:"column:ticker"`
	Name        string              `gorm:"column:name"`
	LogoURL     *string             `gorm:"column:logo_url"`
	Quantity    decimal.NullDecimal `gorm:"column:quantity"`
	CostBasis   decimal.NullDecimal `gorm:"column:cost_basis"`
	LatestPrice decimal.NullDecimal `gorm:"column:latest_price"`
}

type StockHolding struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	LogoURL     *string `json:"logo_url"`
	Quantity    float64 `json:"quantity"`
	CostBasis   float64 `json:"cost_basis"`
	LatestPrice float64 `json:"latest_price"`
	MarketValue float64 `json:"market_value"`
}

// TransactionFeedRow is a row returned by get_transaction_feed
type TransactionFeedRow struct {
	TransactionID   string              `gorm:"column:transaction_id"`
	TransactionDate time.Time           `gorm:"column:transaction_date"`
	Type            string              `gorm:"column:type"`
	Description     *string             `gorm:"column:description"`
	Ticker          *string             `gorm:"column:ticker"`
	Name            *string             `gorm:"column:name"`
	LogoURL         *string             `gorm:"column:logo_url"`
	Quantity        decimal.NullDecimal `gorm:"column:quantity"`
	Amount          decimal.NullDecimal `gorm:"column:amount"`
	CurrencyCode    *string             `gorm:"column:currency_code"`
	NetSold         decimal.NullDecimal `gorm:"column:net_sold"`
}

type TransactionFeedItem struct {
	TransactionID   string  `json:"transaction_id"`
	TransactionDate string  `json:"transaction_date"`
	Type            string  `json:"type"`
	Description     *string `json:"description"`
	Ticker          *string `json:"ticker"`
	Name            *string `json:"name"`
	LogoURL         *string `json:"logo_url"`
	Quantity        float64 `json:"quantity"`
	Amount          float64 `json:"amount"`
	CurrencyCode    *string `json:"currency_code"`
	NetSold         float64 `json:"net_sold"`
}

// TransactionFeedFilter selects a page of the transaction feed.
type TransactionFeedFilter struct {
	PageSize         int
	PageNumber       int
	StartDate        *string
	EndDate          *string
	AssetClassFilter *string
}

// MetricsQuery selects the window of a metrics summary and the start of the
// user's history, which CAGR and the Sharpe ratio are computed over.
type MetricsQuery struct {
	Window        Period
	LifetimeStart time.Time
}

// PerformanceMetrics is the summary shown on the analytics page.
type PerformanceMetrics struct {
	CAGR               float64          `json:"cagr"`
	SharpeRatio        float64          `json:"sharpeRatio"`
	TotalPnL           float64          `json:"totalPnl"`
	TotalReturn        float64          `json:"totalReturn"`
	BenchmarkChartData []BenchmarkPoint `json:"benchmarkChartData"`
}

// CryptoHoldingRow is a row returned by get_crypto_holdings. Prices are in
// USD; LatestUSDRate converts them to the portfolio currency.
type CryptoHoldingRow struct {
	Ticker        string              `gorm:"column:ticker"`
	Name          string              `gorm:"column:name"`
	LogoURL       *string             `gorm:"column:logo_url"`
	Quantity      decimal.NullDecimal `gorm:"column:quantity"`
	CostBasis     decimal.NullDecimal `gorm:"column:cost_basis"`
	LatestPrice   decimal.NullDecimal `gorm:"column:latest_price"`
	LatestUSDRate decimal.NullDecimal `gorm:"column:latest_usd_rate"`
	TotalAmount   decimal.NullDecimal `gorm:"column:total_amount"`
}

type CryptoHolding struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	LogoURL       *string `json:"logo_url"`
	Quantity      float64 `json:"quantity"`
	CostBasis     float64 `json:"cost_basis"`
	LatestPrice   float64 `json:"latest_price"`
	LatestUSDRate float64 `json:"latest_usd_rate"`
	TotalAmount   float64 `json:"total_amount"`
}

type Holdings struct {
	StockHoldings  []StockHolding  `json:"stockHoldings"`
	CryptoHoldings []CryptoHolding `json:"cryptoHoldings"`
}

// MonthlyEarning joins a month's PnL with its TWR; a month without a TWR row reports 0.
type MonthlyEarning struct {
	Month string  `json:"month"`
	PnL   float64 `json:"pnl"`
	TWR   float64 `json:"twr"`
}

// Dashboard is the landing page of a user: range reports, charts, the balance
// sheet and current holdings, read together.
type Dashboard struct {
	TWRData           RangeReport                 `json:"twrData"`
	MonthlyReturnData []float64                   `json:"monthlyReturnData"`
	PnLData           RangeReport                 `json:"pnlData"`
	EquityData        map[string][]EquityPoint    `json:"equityData"`
	BenchmarkData     map[string][]BenchmarkPoint `json:"benchmarkData"`
	BalanceSheetData  json.RawMessage             `json:"balanceSheetData"`
	StockData         []StockHolding              `json:"stockData"`
	CryptoData        []CryptoHolding             `json:"cryptoData"`
}

// AssetAccountData is the result of get_asset_account_data.
type AssetAccountData struct {
	Accounts json.RawMessage `json:"accounts"`
	Assets   json.RawMessage `json:"assets"`
}

// TransactionForm holds the choices offered when recording a transaction.
// Missing lists are reported as empty arrays.
type TransactionForm struct {
	Accounts json.RawMessage `json:"accounts"`
	Assets   json.RawMessage `json:"assets"`
	Debts    json.RawMessage `json:"debts"`
}
