package handlers

import (
	"context"
	"encoding/json"

	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/services"
)

// ---- Fakes for the services used by handler tests ----

// fakeReports records the last call and returns canned data, or err when set.
type fakeReports struct {
	err        error
	calls      []string
	userID     string
	period     models.Period
	year       int
	txnID      string
	expenses   bool
	shortMonth bool
	filter     models.TransactionFeedFilter
	metricsQ   models.MetricsQuery
}

var _ services.ReportingService = (*fakeReports)(nil)

func (f *fakeReports) record(name, userID string) error {
	f.calls = append(f.calls, name)
	f.userID = userID
	return f.err
}

func (f *fakeReports) PnLByRange(ctx context.Context, userID string) (models.RangeReport, error) {
	if err := f.record("PnLByRange", userID); err != nil {
		return nil, err
	}
	return models.RangeReport{"ytd": 100, "all_time": 500}, nil
}
func (f *fakeReports) TWRByRange(ctx context.Context, userID string) (models.RangeReport, error) {
	if err := f.record("TWRByRange", userID); err != nil {
		return nil, err
	}
	return models.RangeReport{"mtd": 0.01}, nil
}
func (f *fakeReports) EquityChartByRange(ctx context.Context, userID string) (map[string][]models.EquityPoint, error) {
	if err := f.record("EquityChartByRange", userID); err != nil {
		return nil, err
	}
	return map[string][]models.EquityPoint{"all": {{SnapshotDate: "2024-01-01", NetEquityValue: 1}}}, nil
}
func (f *fakeReports) BenchmarkChartByRange(ctx context.Context, userID string) (map[string][]models.BenchmarkPoint, error) {
	if err := f.record("BenchmarkChartByRange", userID); err != nil {
		return nil, err
	}
	return map[string][]models.BenchmarkPoint{}, nil
}
func (f *fakeReports) EquityChart(ctx context.Context, userID string, period models.Period) ([]models.EquityPoint, error) {
	f.period = period
	if err := f.record("EquityChart", userID); err != nil {
		return nil, err
	}
	return []models.EquityPoint{}, nil
}
func (f *fakeReports) PerformanceBenchmark(ctx context.Context, userID string, period models.Period) ([]models.BenchmarkPoint, error) {
	f.period = period
	if err := f.record("PerformanceBenchmark", userID); err != nil {
		return nil, err
	}
	return []models.BenchmarkPoint{}, nil
}
func (f *fakeReports) TWR(ctx context.Context, userID string, period models.Period) (*float64, error) {
	f.period = period
	if err := f.record("TWR", userID); err != nil {
		return nil, err
	}
	v := 0.125
	return &v, nil
}
func (f *fakeReports) MonthlyPnL(ctx context.Context, userID string, period models.Period, shortMonths bool) ([]models.MonthlyPnL, error) {
	f.period = period
	f.shortMonth = shortMonths
	if err := f.record("MonthlyPnL", userID); err != nil {
		return nil, err
	}
	return []models.MonthlyPnL{{Month: "Jan", PnL: 5}}, nil
}
func (f *fakeReports) MonthlyTWR(ctx context.Context, userID string, period models.Period) ([]models.MonthlyTWR, error) {
	f.period = period
	if err := f.record("MonthlyTWR", userID); err != nil {
		return nil, err
	}
	return []models.MonthlyTWR{}, nil
}
func (f *fakeReports) MonthlyExpenses(ctx context.Context, userID string, period models.Period) ([]models.MonthlyExpense, error) {
	f.period = period
	if err := f.record("MonthlyExpenses", userID); err != nil {
		return nil, err
	}
	return []models.MonthlyExpense{}, nil
}
func (f *fakeReports) Metrics(ctx context.Context, userID string, q models.MetricsQuery) (*models.PerformanceMetrics, error) {
	f.metricsQ = q
	if err := f.record("Metrics", userID); err != nil {
		return nil, err
	}
	return &models.PerformanceMetrics{
		CAGR:        10,
		SharpeRatio: 1.2,
		TotalPnL:    1000,
		TotalReturn: 0.1,
		BenchmarkChartData: []models.BenchmarkPoint{
			{SnapshotDate: "2024-01-31", PortfolioValue: 100, VNIValue: 98},
		},
	}, nil
}
func (f *fakeReports) BalanceSheet(ctx context.Context) (json.RawMessage, error) {
	if err := f.record("BalanceSheet", ""); err != nil {
		return nil, err
	}
	return json.RawMessage(`{"assets":[]}`), nil
}
func (f *fakeReports) AnnualReturns(ctx context.Context) (map[string]models.AnnualReturn, error) {
	if err := f.record("AnnualReturns", ""); err != nil {
		return nil, err
	}
	return map[string]models.AnnualReturn{"2024": {}}, nil
}
func (f *fakeReports) AnnualReturnChart(ctx context.Context, period models.Period) ([]models.BenchmarkPoint, error) {
	f.period = period
	if err := f.record("AnnualReturnChart", ""); err != nil {
		return nil, err
	}
	return []models.BenchmarkPoint{}, nil
}
func (f *fakeReports) Cashflow(ctx context.Context, year int) ([]models.YearlyCashflow, error) {
	f.year = year
	if err := f.record("Cashflow", ""); err != nil {
		return nil, err
	}
	return []models.YearlyCashflow{}, nil
}
func (f *fakeReports) MonthlySnapshots(ctx context.Context) ([]models.MonthlySnapshotReport, error) {
	if err := f.record("MonthlySnapshots", ""); err != nil {
		return nil, err
	}
	return []models.MonthlySnapshotReport{{Date: "2024-01-31"}}, nil
}
func (f *fakeReports) YearlySnapshots(ctx context.Context) ([]models.YearlySnapshotReport, error) {
	if err := f.record("YearlySnapshots", ""); err != nil {
		return nil, err
	}
	return []models.YearlySnapshotReport{}, nil
}
func (f *fakeReports) OpenDebts(ctx context.Context) ([]models.DebtView, error) {
	if err := f.record("OpenDebts", ""); err != nil {
		return nil, err
	}
	return []models.DebtView{}, nil
}
func (f *fakeReports) Assets(ctx context.Context) ([]models.Asset, error) {
	if err := f.record("Assets", ""); err != nil {
		return nil, err
	}
	return []models.Asset{}, nil
}
func (f *fakeReports) StockHoldings(ctx context.Context) ([]models.StockHolding, error) {
	if err := f.record("StockHoldings", ""); err != nil {
		return nil, err
	}
	return []models.StockHolding{}, nil
}
func (f *fakeReports) StockPnLByYear(ctx context.Context) (map[string][]models.StockPnL, error) {
	if err := f.record("StockPnLByYear", ""); err != nil {
		return nil, err
	}
	return map[string][]models.StockPnL{}, nil
}
func (f *fakeReports) Transactions(ctx context.Context, period models.Period) (json.RawMessage, error) {
	f.period = period
	if err := f.record("Transactions", ""); err != nil {
		return nil, err
	}
	return json.RawMessage(`[]`), nil
}
func (f *fakeReports) TransactionDetails(ctx context.Context, txnID string, includeExpenses bool) (json.RawMessage, error) {
	f.txnID = txnID
	f.expenses = includeExpenses
	if err := f.record("TransactionDetails", ""); err != nil {
		return nil, err
	}
	return json.RawMessage(`{}`), nil
}
func (f *fakeReports) ActiveDebts(ctx context.Context, userID string) (json.RawMessage, error) {
	if err := f.record("ActiveDebts", userID); err != nil {
		return nil, err
	}
	return json.RawMessage(`[]`), nil
}
func (f *fakeReports) FirstSnapshotDate(ctx context.Context, userID string) (*string, error) {
	if err := f.record("FirstSnapshotDate", userID); err != nil {
		return nil, err
	}
	d := "2021-03-01"
	return &d, nil
}
func (f *fakeReports) TransactionFeed(ctx context.Context, userID string, filter models.TransactionFeedFilter) ([]models.TransactionFeedItem, error) {
	f.filter = filter
	if err := f.record("TransactionFeed", userID); err != nil {
		return nil, err
	}
	return []models.TransactionFeedItem{}, nil
}
func (f *fakeReports) CryptoHoldings(ctx context.Context, userID string) ([]models.CryptoHolding, error) {
	if err := f.record("CryptoHoldings", userID); err != nil {
		return nil, err
	}
	return []models.CryptoHolding{{Ticker: "BTC", TotalAmount: 7}}, nil
}
func (f *fakeReports) AssetSummary(ctx context.Context, userID string) (json.RawMessage, error) {
	if err := f.record("AssetSummary", userID); err != nil {
		return nil, err
	}
	return json.RawMessage(`{"total":1}`), nil
}
func (f *fakeReports) AssetAccountData(ctx context.Context, userID string) (*models.AssetAccountData, error) {
	if err := f.record("AssetAccountData", userID); err != nil {
		return nil, err
	}
	return &models.AssetAccountData{Accounts: json.RawMessage(`[]`), Assets: json.RawMessage(`[]`)}, nil
}
func (f *fakeReports) Dashboard(ctx context.Context, userID string, lifetime models.Period) (*models.Dashboard, error) {
	f.period = lifetime
	if err := f.record("Dashboard", userID); err != nil {
		return nil, err
	}
	return &models.Dashboard{
		TWRData:           models.RangeReport{"ytd": 0.1},
		MonthlyReturnData: []float64{0.02},
		BalanceSheetData:  json.RawMessage(`{}`),
	}, nil
}
func (f *fakeReports) Holdings(ctx context.Context, userID string) (*models.Holdings, error) {
	if err := f.record("Holdings", userID); err != nil {
		return nil, err
	}
	return &models.Holdings{StockHoldings: []models.StockHolding{}, CryptoHoldings: []models.CryptoHolding{}}, nil
}
func (f *fakeReports) Earnings(ctx context.Context, userID string, period models.Period) ([]models.MonthlyEarning, error) {
	f.period = period
	if err := f.record("Earnings", userID); err != nil {
		return nil, err
	}
	return []models.MonthlyEarning{{Month: "2024-01", PnL: 10, TWR: 0.01}}, nil
}
func (f *fakeReports) TransactionForm(ctx context.Context, userID string) (*models.TransactionForm, error) {
	if err := f.record("TransactionForm", userID); err != nil {
		return nil, err
	}
	return &models.TransactionForm{
		Accounts: json.RawMessage(`[]`),
		Assets:   json.RawMessage(`[]`),
		Debts:    json.RawMessage(`[]`),
	}, nil
}
func (f *fakeReports) TransactionLegs(ctx context.Context, txnID string) ([]models.TransactionLeg, error) {
	f.txnID = txnID
	if err := f.record("TransactionLegs", ""); err != nil {
		return nil, err
	}
	return []models.TransactionLeg{}, nil
}

type fakeTransactions struct {
	userID string
	req    *models.TransactionRequest
	result *models.TransactionResult
	err    error
}

var _ services.TransactionService = (*fakeTransactions)(nil)

func (f *fakeTransactions) PostTransaction(ctx context.Context, userID string, req *models.TransactionRequest) (*models.TransactionResult, error) {
	f.userID = userID
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeSnapshots struct {
	period *models.Period
	err    error
}

var _ services.SnapshotService = (*fakeSnapshots)(nil)

func (f *fakeSnapshots) Generate(ctx context.Context, period models.Period) (*models.SnapshotRun, error) {
	f.period = &period
	if f.err != nil {
		return nil, f.err
	}
	return &models.SnapshotRun{Period: period, Succeeded: 2, Failures: []models.SnapshotFailure{}}, nil
}

type fakePinger struct {
	err error
}

func (f fakePinger) Health(ctx context.Context) error { return f.err }
