package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/tropicaldog17/folio/internal/models"
)

type reportingRepository struct {
	client *QueryClient
}

// NewReportingRepository creates a new reporting repository
func NewReportingRepository(client *QueryClient) ReportingRepository {
	return &reportingRepository{client: client}
}

// userParams starts a parameter set, scoping it to userID when one is given.
// Internal routes read the single portfolio the procedures default to.
func userParams(userID string) Params {
	p := Params{}
	if userID != "" {
		p["p_user_id"] = userID
	}
	return p
}

func periodParams(userID string, period models.Period) Params {
	p := userParams(userID)
	p["p_start_date"] = period.Start()
	p["p_end_date"] = period.End()
	return p
}

func (r *reportingRepository) GetPnLByRange(ctx context.Context, userID string) ([]models.LabeledValue, error) {
	var rows []models.PnLRow
	if err := r.client.Call(ctx, "get_pnl", userParams(userID), &rows); err != nil {
		return nil, err
	}
	out := make([]models.LabeledValue, len(rows))
	for i, row := range rows {
		out[i] = models.LabeledValue{Label: row.RangeLabel, Value: row.PnL}
	}
	return out, nil
}

func (r *reportingRepository) GetTWRByRange(ctx context.Context, userID string) ([]models.LabeledValue, error) {
	var rows []models.TWRRow
	if err := r.client.Call(ctx, "get_twr", userParams(userID), &rows); err != nil {
		return nil, err
	}
	out := make([]models.LabeledValue, len(rows))
	for i, row := range rows {
		out[i] = models.LabeledValue{Label: row.RangeLabel, Value: row.TWR}
	}
	return out, nil
}

func (r *reportingRepository) GetBalanceSheet(ctx context.Context) (json.RawMessage, error) {
	return r.client.CallJSON(ctx, "get_balance_sheet", nil)
}

func (r *reportingRepository) GetEquityChart(ctx context.Context, q models.ChartQuery) ([]models.EquityPointRow, error) {
	var rows []models.EquityPointRow
	if err := r.client.Call(ctx, "get_equity_chart_data", chartParams(q), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetBenchmarkChart(ctx context.Context, q models.ChartQuery) ([]models.BenchmarkPointRow, error) {
	var rows []models.BenchmarkPointRow
	if err := r.client.Call(ctx, "get_benchmark_chart_data", chartParams(q), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetPerformanceBenchmark(ctx context.Context, userID string, period models.Period, threshold int) ([]models.BenchmarkPointRow, error) {
	p := periodParams(userID, period)
	p["p_threshold"] = threshold
	var rows []models.BenchmarkPointRow
	if err := r.client.Call(ctx, "get_performance_benchmark_data", p, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func chartParams(q models.ChartQuery) Params {
	p := userParams(q.UserID)
	p["p_threshold"] = q.Threshold
	if q.Period != nil {
		p["p_start_date"] = q.Period.Start()
		p["p_end_date"] = q.Period.End()
	}
	return p
}

func (r *reportingRepository) GetAnnualReturns(ctx context.Context) ([]models.AnnualReturnRow, error) {
	var rows []models.AnnualReturnRow
	if err := r.client.Call(ctx, "get_annual_return", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) SampleBenchmark(ctx context.Context, period models.Period, threshold int) ([]models.BenchmarkPointRow, error) {
	p := periodParams("", period)
	p["p_threshold"] = threshold
	var rows []models.BenchmarkPointRow
	if err := r.client.Call(ctx, "sampling_benchmark_data", p, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetAnnualCashflow(ctx context.Context) ([]models.CashflowRow, error) {
	var rows []models.CashflowRow
	if err := r.client.Call(ctx, "get_annual_cashflow", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetStockHoldings(ctx context.Context) ([]models.StockHoldingRow, error) {
	var rows []models.StockHoldingRow
	if err := r.client.Call(ctx, "get_stock_holdings", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetTransactions(ctx context.Context, period models.Period) (json.RawMessage, error) {
	return r.client.CallRowsJSON(ctx, "get_transactions", periodParams("", period))
}

func (r *reportingRepository) GetTransactionDetails(ctx context.Context, txnID string, includeExpenses bool) (json.RawMessage, error) {
	return r.client.CallRowsJSON(ctx, "get_transaction_details", Params{
		"txn_id":           txnID,
		"include_expenses": includeExpenses,
	})
}

// CalculateTWR returns nil when the window holds no snapshots.
func (r *reportingRepository) CalculateTWR(ctx context.Context, userID string, period models.Period) (*float64, error) {
	var twr sql.NullFloat64
	if err := r.client.CallScalar(ctx, "calculate_twr", periodParams(userID, period), &twr); err != nil {
		return nil, err
	}
	if !twr.Valid {
		return nil, nil
	}
	return &twr.Float64, nil
}

// CalculatePnL returns nil when the window holds no snapshots.
func (r *reportingRepository) CalculatePnL(ctx context.Context, userID string, period models.Period) (*float64, error) {
	var pnl sql.NullFloat64
	if err := r.client.CallScalar(ctx, "calculate_pnl", periodParams(userID, period), &pnl); err != nil {
		return nil, err
	}
	if !pnl.Valid {
		return nil, nil
	}
	return &pnl.Float64, nil
}

func (r *reportingRepository) GetMonthlyPnL(ctx context.Context, userID string, period models.Period) ([]models.MonthlyPnLRow, error) {
	var rows []models.MonthlyPnLRow
	if err := r.client.Call(ctx, "get_monthly_pnl", periodParams(userID, period), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetMonthlyTWR(ctx context.Context, userID string, period models.Period) ([]models.MonthlyTWRRow, error) {
	var rows []models.MonthlyTWRRow
	if err := r.client.Call(ctx, "get_monthly_twr", periodParams(userID, period), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetMonthlyExpenses(ctx context.Context, userID string, period models.Period) ([]models.MonthlyExpenseRow, error) {
	var rows []models.MonthlyExpenseRow
	if err := r.client.Call(ctx, "get_monthly_expenses", periodParams(userID, period), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetActiveDebts(ctx context.Context, userID string) (json.RawMessage, error) {
	return r.client.CallRowsJSON(ctx, "get_active_debts", userParams(userID))
}

// GetFirstSnapshotDate returns nil when the user has no snapshots yet.
func (r *reportingRepository) GetFirstSnapshotDate(ctx context.Context, userID string) (*string, error) {
	var first sql.NullTime
	if err := r.client.CallScalar(ctx, "get_first_snapshot_date", userParams(userID), &first); err != nil {
		return nil, err
	}
	if !first.Valid {
		return nil, nil
	}
	s := first.Time.Format(models.DateLayout)
	return &s, nil
}

func (r *reportingRepository) GetTransactionFeed(ctx context.Context, userID string, filter models.TransactionFeedFilter) ([]models.TransactionFeedRow, error) {
	p := userParams(userID)
	p["page_size"] = filter.PageSize
	p["page_number"] = filter.PageNumber
	p["start_date"] = filter.StartDate
	p["end_date"] = filter.EndDate
	p["asset_class_filter"] = filter.AssetClassFilter

	var rows []models.TransactionFeedRow
	if err := r.client.Call(ctx, "get_transaction_feed", p, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetCryptoHoldings(ctx context.Context, userID string) ([]models.CryptoHoldingRow, error) {
	var rows []models.CryptoHoldingRow
	if err := r.client.Call(ctx, "get_crypto_holdings", userParams(userID), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportingRepository) GetAssetSummary(ctx context.Context, userID string) (json.RawMessage, error) {
	return r.client.CallJSON(ctx, "get_asset_summary", userParams(userID))
}

func (r *reportingRepository) GetAssetAccountData(ctx context.Context, userID string) (*models.AssetAccountData, error) {
	raw, err := r.client.CallJSON(ctx, "get_asset_account_data", userParams(userID))
	if err != nil {
		return nil, err
	}
	var data models.AssetAccountData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, upstream("get_asset_account_data", err)
	}
	return &data, nil
}
