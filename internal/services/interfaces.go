package services

import (
	"context"
	"encoding/json"

	"github.com/tropicaldog17/folio/internal/models"
)

// ReportingService defines the interface for reporting operations.
// Methods taking a userID scope the query to that user; an empty userID
// queries the owner's portfolio.
type ReportingService interface {
	// Range-keyed reports
	PnLByRange(ctx context.Context, userID string) (models.RangeReport, error)
	TWRByRange(ctx context.Context, userID string) (models.RangeReport, error)
	EquityChartByRange(ctx context.Context, userID string) (map[string][]models.EquityPoint, error)
	BenchmarkChartByRange(ctx context.Context, userID string) (map[string][]models.BenchmarkPoint, error)

	// Windowed reports
	EquityChart(ctx context.Context, userID string, period models.Period) ([]models.EquityPoint, error)
	PerformanceBenchmark(ctx context.Context, userID string, period models.Period) ([]models.BenchmarkPoint, error)
	TWR(ctx context.Context, userID string, period models.Period) (*float64, error)
	MonthlyPnL(ctx context.Context, userID string, period models.Period, shortMonths bool) ([]models.MonthlyPnL, error)
	MonthlyTWR(ctx context.Context, userID string, period models.Period) ([]models.MonthlyTWR, error)
	MonthlyExpenses(ctx context.Context, userID string, period models.Period) ([]models.MonthlyExpense, error)
	Metrics(ctx context.Context, userID string, q models.MetricsQuery) (*models.PerformanceMetrics, error)

	// Owner-only reports
	BalanceSheet(ctx context.Context) (json.RawMessage, error)
	AnnualReturns(ctx context.Context) (map[string]models.AnnualReturn, error)
	AnnualReturnChart(ctx context.Context, period models.Period) ([]models.BenchmarkPoint, error)
	Cashflow(ctx context.Context, year int) ([]models.YearlyCashflow, error)
	MonthlySnapshots(ctx context.Context) ([]models.MonthlySnapshotReport, error)
	YearlySnapshots(ctx context.Context) ([]models.YearlySnapshotReport, error)
	OpenDebts(ctx context.Context) ([]models.DebtView, error)
	Assets(ctx context.Context) ([]models.Asset, error)
	StockHoldings(ctx context.Context) ([]models.StockHolding, error)
	StockPnLByYear(ctx context.Context) (map[string][]models.StockPnL, error)
	Transactions(ctx context.Context, period models.Period) (json.RawMessage, error)
	TransactionDetails(ctx context.Context, txnID string, includeExpenses bool) (json.RawMessage, error)

	// User dashboard
	ActiveDebts(ctx context.Context, userID string) (json.RawMessage, error)
	FirstSnapshotDate(ctx context.Context, userID string) (*string, error)
	TransactionFeed(ctx context.Context, userID string, filter models.TransactionFeedFilter) ([]models.TransactionFeedItem, error)
	CryptoHoldings(ctx context.Context, userID string) ([]models.CryptoHolding, error)
	AssetSummary(ctx context.Context, userID string) (json.RawMessage, error)
	AssetAccountData(ctx context.Context, userID string) (*models.AssetAccountData, error)

	// Composed views
	Dashboard(ctx context.Context, userID string, lifetime models.Period) (*models.Dashboard, error)
	Holdings(ctx context.Context, userID string) (*models.Holdings, error)
	Earnings(ctx context.Context, userID string, period models.Period) ([]models.MonthlyEarning, error)
	TransactionForm(ctx context.Context, userID string) (*models.TransactionForm, error)
	TransactionLegs(ctx context.Context, txnID string) ([]models.TransactionLeg, error)
}

// TransactionService defines the interface for recording transactions
type TransactionService interface {
	PostTransaction(ctx context.Context, userID string, req *models.TransactionRequest) (*models.TransactionResult, error)
}

// SnapshotService defines the interface for performance snapshot generation
type SnapshotService interface {
	Generate(ctx context.Context, period models.Period) (*models.SnapshotRun, error)
}
