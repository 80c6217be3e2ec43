package services

import (
	"context"
	"encoding/json"

	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/repositories"
)

// ReportingOptions tune the sampled charts and the metrics summary.
type ReportingOptions struct {
	ChartThreshold     int
	UserChartThreshold int
	RiskFreeRate       float64
}

type reportingService struct {
	reports repositories.ReportingRepository
	ledger  repositories.LedgerRepository
	opts    ReportingOptions
}

// NewReportingService creates a new reporting service
func NewReportingService(reports repositories.ReportingRepository, ledger repositories.LedgerRepository, opts ReportingOptions) ReportingService {
	return &reportingService{reports: reports, ledger: ledger, opts: opts}
}

func (s *reportingService) threshold(userID string) int {
	if userID == "" {
		return s.opts.ChartThreshold
	}
	return s.opts.UserChartThreshold
}

func (s *reportingService) PnLByRange(ctx context.Context, userID string) (models.RangeReport, error) {
	rows, err := s.reports.GetPnLByRange(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NormalizeRanges(rows), nil
}

func (s *reportingService) TWRByRange(ctx context.Context, userID string) (models.RangeReport, error) {
	rows, err := s.reports.GetTWRByRange(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NormalizeRanges(rows), nil
}

func (s *reportingService) BalanceSheet(ctx context.Context) (json.RawMessage, error) {
	return s.reports.GetBalanceSheet(ctx)
}

func (s *reportingService) EquityChartByRange(ctx context.Context, userID string) (map[string][]models.EquityPoint, error) {
	rows, err := s.reports.GetEquityChart(ctx, models.ChartQuery{UserID: userID, Threshold: s.threshold(userID)})
	if err != nil {
		return nil, err
	}
	return GroupEquity(rows), nil
}

func (s *reportingService) EquityChart(ctx context.Context, userID string, period models.Period) ([]models.EquityPoint, error) {
	rows, err := s.reports.GetEquityChart(ctx, models.ChartQuery{UserID: userID, Period: &period, Threshold: s.threshold(userID)})
	if err != nil {
		return nil, err
	}
	return EquitySeries(rows), nil
}

func (s *reportingService) BenchmarkChartByRange(ctx context.Context, userID string) (map[string][]models.BenchmarkPoint, error) {
	rows, err := s.reports.GetBenchmarkChart(ctx, models.ChartQuery{UserID: userID, Threshold: s.threshold(userID)})
	if err != nil {
		return nil, err
	}
	return GroupBenchmark(rows), nil
}

func (s *reportingService) PerformanceBenchmark(ctx context.Context, userID string, period models.Period) ([]models.BenchmarkPoint, error) {
	rows, err := s.reports.GetPerformanceBenchmark(ctx, userID, period, s.threshold(userID))
	if err != nil {
		return nil, err
	}
	return BenchmarkSeries(rows), nil
}

func (s *reportingService) AnnualReturns(ctx context.Context) (map[string]models.AnnualReturn, error) {
	rows, err := s.reports.GetAnnualReturns(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeAnnualReturns(rows), nil
}

func (s *reportingService) AnnualReturnChart(ctx context.Context, period models.Period) ([]models.BenchmarkPoint, error) {
	rows, err := s.reports.SampleBenchmark(ctx, period, s.opts.ChartThreshold)
	if err != nil {
		return nil, err
	}
	return BenchmarkSeries(rows), nil
}

func (s *reportingService) Cashflow(ctx context.Context, year int) ([]models.YearlyCashflow, error) {
	rows, err := s.reports.GetAnnualCashflow(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeCashflow(rows, year), nil
}

func (s *reportingService) MonthlySnapshots(ctx context.Context) ([]models.MonthlySnapshotReport, error) {
	rows, err := s.ledger.ListMonthlySnapshots(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeMonthlySnapshots(rows), nil
}

func (s *reportingService) YearlySnapshots(ctx context.Context) ([]models.YearlySnapshotReport, error) {
	rows, err := s.ledger.ListYearlySnapshots(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeYearlySnapshots(rows), nil
}

func (s *reportingService) OpenDebts(ctx context.Context) ([]models.DebtView, error) {
	debts, err := s.ledger.ListOpenDebts(ctx)
	if err != nil {
		return nil, err
	}
	return DebtViews(debts), nil
}

// Assets lists holdable assets; equities and liabilities have their own reports.
func (s *reportingService) Assets(ctx context.Context) ([]models.Asset, error) {
	return s.ledger.ListAssets(ctx, []string{models.AssetClassEquity, models.AssetClassLiability})
}

func (s *reportingService) StockHoldings(ctx context.Context) ([]models.StockHolding, error) {
	rows, err := s.reports.GetStockHoldings(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeStockHoldings(rows), nil
}

func (s *reportingService) StockPnLByYear(ctx context.Context) (map[string][]models.StockPnL, error) {
	rows, err := s.ledger.ListStockAnnualPnL(ctx)
	if err != nil {
		return nil, err
	}
	return GroupStockPnLByYear(rows), nil
}

func (s *reportingService) Transactions(ctx context.Context, period models.Period) (json.RawMessage, error) {
	return s.reports.GetTransactions(ctx, period)
}

func (s *reportingService) TransactionDetails(ctx context.Context, txnID string, includeExpenses bool) (json.RawMessage, error) {
	return s.reports.GetTransactionDetails(ctx, txnID, includeExpenses)
}

func (s *reportingService) TWR(ctx context.Context, userID string, period models.Period) (*float64, error) {
	return s.reports.CalculateTWR(ctx, userID, period)
}

func (s *reportingService) MonthlyPnL(ctx context.Context, userID string, period models.Period, shortMonths bool) ([]models.MonthlyPnL, error) {
	rows, err := s.reports.GetMonthlyPnL(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	return NormalizeMonthlyPnL(rows, shortMonths), nil
}

func (s *reportingService) MonthlyTWR(ctx context.Context, userID string, period models.Period) ([]models.MonthlyTWR, error) {
	rows, err := s.reports.GetMonthlyTWR(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	return NormalizeMonthlyTWR(rows), nil
}

func (s *reportingService) MonthlyExpenses(ctx context.Context, userID string, period models.Period) ([]models.MonthlyExpense, error) {
	rows, err := s.reports.GetMonthlyExpenses(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	return NormalizeMonthlyExpenses(rows), nil
}

func (s *reportingService) ActiveDebts(ctx context.Context, userID string) (json.RawMessage, error) {
	return s.reports.GetActiveDebts(ctx, userID)
}

func (s *reportingService) FirstSnapshotDate(ctx context.Context, userID string) (*string, error) {
	return s.reports.GetFirstSnapshotDate(ctx, userID)
}

func (s *reportingService) TransactionFeed(ctx context.Context, userID string, filter models.TransactionFeedFilter) ([]models.TransactionFeedItem, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageNumber <= 0 {
		filter.PageNumber = 1
	}
	rows, err := s.reports.GetTransactionFeed(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return NormalizeTransactionFeed(rows), nil
}

// Metrics summarizes a window against the user's lifetime and attaches the
// window's benchmark series. The reads run one after another and the first
// failure aborts the summary.
func (s *reportingService) Metrics(ctx context.Context, userID string, q models.MetricsQuery) (*models.PerformanceMetrics, error) {
	lifetime := models.Period{StartDate: q.LifetimeStart, EndDate: q.Window.EndDate}

	lifetimeTWR, err := s.reports.CalculateTWR(ctx, userID, lifetime)
	if err != nil {
		return nil, err
	}
	monthly, err := s.reports.GetMonthlyTWR(ctx, userID, lifetime)
	if err != nil {
		return nil, err
	}
	pnl, err := s.reports.CalculatePnL(ctx, userID, q.Window)
	if err != nil {
		return nil, err
	}
	windowTWR, err := s.reports.CalculateTWR(ctx, userID, q.Window)
	if err != nil {
		return nil, err
	}
	benchmark, err := s.PerformanceBenchmark(ctx, userID, q.Window)
	if err != nil {
		return nil, err
	}

	returns := make([]float64, len(monthly))
	for i, row := range monthly {
		returns[i] = floatOrZero(row.TWR)
	}

	return &models.PerformanceMetrics{
		CAGR:               CAGR(1, 1+valueOrZero(lifetimeTWR), YearsBetween(lifetime.StartDate, lifetime.EndDate)),
		SharpeRatio:        SharpeRatio(returns, s.opts.RiskFreeRate),
		TotalPnL:           valueOrZero(pnl),
		TotalReturn:        valueOrZero(windowTWR),
		BenchmarkChartData: benchmark,
	}, nil
}

func valueOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
