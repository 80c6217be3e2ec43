package services

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/repositories"
)

// ---- Mocks for repositories used in unit tests ----

type mockReportingRepo struct {
	mock.Mock
}

var _ repositories.ReportingRepository = (*mockReportingRepo)(nil)

func (m *mockReportingRepo) GetPnLByRange(ctx context.Context, userID string) ([]models.LabeledValue, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]models.LabeledValue)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetTWRByRange(ctx context.Context, userID string) ([]models.LabeledValue, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]models.LabeledValue)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetBalanceSheet(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
func (m *mockReportingRepo) GetEquityChart(ctx context.Context, q models.ChartQuery) ([]models.EquityPointRow, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]models.EquityPointRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetBenchmarkChart(ctx context.Context, q models.ChartQuery) ([]models.BenchmarkPointRow, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]models.BenchmarkPointRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetPerformanceBenchmark(ctx context.Context, userID string, period models.Period, threshold int) ([]models.BenchmarkPointRow, error) {
	args := m.Called(ctx, userID, period, threshold)
	rows, _ := args.Get(0).([]models.BenchmarkPointRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetAnnualReturns(ctx context.Context) ([]models.AnnualReturnRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]models.AnnualReturnRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) SampleBenchmark(ctx context.Context, period models.Period, threshold int) ([]models.BenchmarkPointRow, error) {
	args := m.Called(ctx, period, threshold)
	rows, _ := args.Get(0).([]models.BenchmarkPointRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetAnnualCashflow(ctx context.Context) ([]models.CashflowRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]models.CashflowRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetStockHoldings(ctx context.Context) ([]models.StockHoldingRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]models.StockHoldingRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetTransactions(ctx context.Context, period models.Period) (json.RawMessage, error) {
	args := m.Called(ctx, period)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
func (m *mockReportingRepo) GetTransactionDetails(ctx context.Context, txnID string, includeExpenses bool) (json.RawMessage, error) {
	args := m.Called(ctx, txnID, includeExpenses)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
func (m *mockReportingRepo) CalculateTWR(ctx context.Context, userID string, period models.Period) (*float64, error) {
	args := m.Called(ctx, userID, period)
	v, _ := args.Get(0).(*float64)
	return v, args.Error(1)
}
func (m *mockReportingRepo) CalculatePnL(ctx context.Context, userID string, period models.Period) (*float64, error) {
	args := m.Called(ctx, userID, period)
	v, _ := args.Get(0).(*float64)
	return v, args.Error(1)
}
func (m *mockReportingRepo) GetMonthlyPnL(ctx context.Context, userID string, period models.Period) ([]models.MonthlyPnLRow, error) {
	args := m.Called(ctx, userID, period)
	rows, _ := args.Get(0).([]models.MonthlyPnLRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetMonthlyTWR(ctx context.Context, userID string, period models.Period) ([]models.MonthlyTWRRow, error) {
	args := m.Called(ctx, userID, period)
	rows, _ := args.Get(0).([]models.MonthlyTWRRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetMonthlyExpenses(ctx context.Context, userID string, period models.Period) ([]models.MonthlyExpenseRow, error) {
	args := m.Called(ctx, userID, period)
	rows, _ := args.Get(0).([]models.MonthlyExpenseRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetActiveDebts(ctx context.Context, userID string) (json.RawMessage, error) {
	args := m.Called(ctx, userID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
func (m *mockReportingRepo) GetFirstSnapshotDate(ctx context.Context, userID string) (*string, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*string)
	return v, args.Error(1)
}
func (m *mockReportingRepo) GetTransactionFeed(ctx context.Context, userID string, filter models.TransactionFeedFilter) ([]models.TransactionFeedRow, error) {
	args := m.Called(ctx, userID, filter)
	rows, _ := args.Get(0).([]models.TransactionFeedRow)
	return rows, args.Error(1)
}

func (m *mockReportingRepo) GetCryptoHoldings(ctx context.Context, userID string) ([]models.CryptoHoldingRow, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]models.CryptoHoldingRow)
	return rows, args.Error(1)
}
func (m *mockReportingRepo) GetAssetSummary(ctx context.Context, userID string) (json.RawMessage, error) {
	args := m.Called(ctx, userID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
func (m *mockReportingRepo) GetAssetAccountData(ctx context.Context, userID string) (*models.AssetAccountData, error) {
	args := m.Called(ctx, userID)
	data, _ := args.Get(0).(*models.AssetAccountData)
	return data, args.Error(1)
}

// mockLedgerRepo serves assets and debts from maps; list methods return the
// configured slices.
type mockLedgerRepo struct {
	assets   map[string]*models.Asset
	debts    map[string]*models.Debt
	listed   []models.Asset
	excluded []string
	open     []models.Debt
	monthly  []models.MonthlySnapshot
	yearly   []models.YearlySnapshot
	stockPnL []models.StockAnnualPnL
	legs     []models.TransactionLegRow
	legTxnID string
	err      error
}

var _ repositories.LedgerRepository = (*mockLedgerRepo)(nil)

func (m *mockLedgerRepo) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	if a, ok := m.assets[id]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("asset not found")
}
func (m *mockLedgerRepo) ListAssets(ctx context.Context, excludeClasses []string) ([]models.Asset, error) {
	m.excluded = excludeClasses
	return m.listed, m.err
}
func (m *mockLedgerRepo) GetDebt(ctx context.Context, id string) (*models.Debt, error) {
	if d, ok := m.debts[id]; ok {
		return d, nil
	}
	return nil, apperrors.NotFound("debt not found")
}
func (m *mockLedgerRepo) ListOpenDebts(ctx context.Context) ([]models.Debt, error) {
	return m.open, m.err
}
func (m *mockLedgerRepo) ListMonthlySnapshots(ctx context.Context) ([]models.MonthlySnapshot, error) {
	return m.monthly, m.err
}
func (m *mockLedgerRepo) ListYearlySnapshots(ctx context.Context) ([]models.YearlySnapshot, error) {
	return m.yearly, m.err
}
func (m *mockLedgerRepo) ListStockAnnualPnL(ctx context.Context) ([]models.StockAnnualPnL, error) {
	return m.stockPnL, m.err
}
func (m *mockLedgerRepo) ListTransactionLegs(ctx context.Context, txnID string) ([]models.TransactionLegRow, error) {
	m.legTxnID = txnID
	return m.legs, m.err
}

type mockTransactionRepo struct {
	posted []repositories.Posting
	id     string
	err    error
}

var _ repositories.TransactionRepository = (*mockTransactionRepo)(nil)

func (m *mockTransactionRepo) Post(ctx context.Context, p repositories.Posting) (string, error) {
	m.posted = append(m.posted, p)
	if m.err != nil {
		return "", m.err
	}
	return m.id, nil
}

type mockSnapshotRepo struct {
	ids       []string
	listErr   error
	failFor   map[string]error
	generated []string
	periods   []models.Period
}

var _ repositories.SnapshotRepository = (*mockSnapshotRepo)(nil)

func (m *mockSnapshotRepo) ListProfileIDs(ctx context.Context) ([]string, error) {
	return m.ids, m.listErr
}
func (m *mockSnapshotRepo) Generate(ctx context.Context, userID string, period models.Period) error {
	m.generated = append(m.generated, userID)
	m.periods = append(m.periods, period)
	return m.failFor[userID]
}
