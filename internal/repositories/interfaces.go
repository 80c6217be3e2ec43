package repositories

import (
	"context"
	"encoding/json"

	"github.com/tropicaldog17/folio/internal/models"
)

// ReportingRepository defines the read procedures behind the reporting routes.
// An empty userID leaves p_user_id unset.
type ReportingRepository interface {
	GetPnLByRange(ctx context.Context, userID string) ([]models.LabeledValue, error)
	GetTWRByRange(ctx context.Context, userID string) ([]models.LabeledValue, error)
	GetBalanceSheet(ctx context.Context) (json.RawMessage, error)
	GetEquityChart(ctx context.Context, q models.ChartQuery) ([]models.EquityPointRow, error)
	GetBenchmarkChart(ctx context.Context, q models.ChartQuery) ([]models.BenchmarkPointRow, error)
	GetPerformanceBenchmark(ctx context.Context, userID string, period models.Period, threshold int) ([]models.BenchmarkPointRow, error)
	GetAnnualReturns(ctx context.Context) ([]models.AnnualReturnRow, error)
	SampleBenchmark(ctx context.Context, period models.Period, threshold int) ([]models.BenchmarkPointRow, error)
	GetAnnualCashflow(ctx context.Context) ([]models.CashflowRow, error)
	GetStockHoldings(ctx context.Context) ([]models.StockHoldingRow, error)
	GetTransactions(ctx context.Context, period models.Period) (json.RawMessage, error)
	GetTransactionDetails(ctx context.Context, txnID string, includeExpenses bool) (json.RawMessage, error)
	CalculateTWR(ctx context.Context, userID string, period models.Period) (*float64, error)
	CalculatePnL(ctx context.Context, userID string, period models.Period) (*float64, error)
	GetMonthlyPnL(ctx context.Context, userID string, period models.Period) ([]models.MonthlyPnLRow, error)
	GetMonthlyTWR(ctx context.Context, userID string, period models.Period) ([]models.MonthlyTWRRow, error)
	GetMonthlyExpenses(ctx context.Context, userID string, period models.Period) ([]models.MonthlyExpenseRow, error)
	GetActiveDebts(ctx context.Context, userID string) (json.RawMessage, error)
	GetFirstSnapshotDate(ctx context.Context, userID string) (*string, error)
	GetTransactionFeed(ctx context.Context, userID string, filter models.TransactionFeedFilter) ([]models.TransactionFeedRow, error)
	GetCryptoHoldings(ctx context.Context, userID string) ([]models.CryptoHoldingRow, error)
	GetAssetSummary(ctx context.Context, userID string) (json.RawMessage, error)
	GetAssetAccountData(ctx context.Context, userID string) (*models.AssetAccountData, error)
}

// LedgerRepository defines table reads over assets, debts and snapshots
type LedgerRepository interface {
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	ListAssets(ctx context.Context, excludeClasses []string) ([]models.Asset, error)
	GetDebt(ctx context.Context, id string) (*models.Debt, error)
	ListOpenDebts(ctx context.Context) ([]models.Debt, error)
	ListMonthlySnapshots(ctx context.Context) ([]models.MonthlySnapshot, error)
	ListYearlySnapshots(ctx context.Context) ([]models.YearlySnapshot, error)
	ListStockAnnualPnL(ctx context.Context) ([]models.StockAnnualPnL, error)
	ListTransactionLegs(ctx context.Context, txnID string) ([]models.TransactionLegRow, error)
}

// TransactionRepository defines the write procedures
type TransactionRepository interface {
	Post(ctx context.Context, p Posting) (string, error)
}

// SnapshotRepository defines performance snapshot generation
type SnapshotRepository interface {
	ListProfileIDs(ctx context.Context) ([]string, error)
	Generate(ctx context.Context, userID string, period models.Period) error
}
