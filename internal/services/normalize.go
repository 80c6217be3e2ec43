package services

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/folio/internal/models"
)

// floatOrZero reports a nullable numeric the way the frontend expects it: null is 0.
func floatOrZero(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return d.Decimal.InexactFloat64()
}

func floatOrNil(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}

// NormalizeRanges reduces range rows into a label keyed report.
// Every label the store returns is kept, including ones this service does not know.
func NormalizeRanges(rows []models.LabeledValue) models.RangeReport {
	out := make(models.RangeReport, len(rows))
	for _, row := range rows {
		out[row.Label] = floatOrZero(row.Value)
	}
	return out
}

// ShortMonth renders a YYYY-MM key as its short month name ("2024-03" -> "Mar").
// Keys in any other form are returned unchanged.
func ShortMonth(yearMonth string) string {
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return yearMonth
	}
	return t.Format("Jan")
}

// NormalizeMonthlyPnL keeps the store's row order. With short set the month
// key is rendered as a short month name.
func NormalizeMonthlyPnL(rows []models.MonthlyPnLRow, short bool) []models.MonthlyPnL {
	out := make([]models.MonthlyPnL, len(rows))
	for i, row := range rows {
		month := row.Month
		if short {
			month = ShortMonth(month)
		}
		out[i] = models.MonthlyPnL{Month: month, PnL: floatOrZero(row.PnL)}
	}
	return out
}

func NormalizeMonthlyTWR(rows []models.MonthlyTWRRow) []models.MonthlyTWR {
	out := make([]models.MonthlyTWR, len(rows))
	for i, row := range rows {
		out[i] = models.MonthlyTWR{Month: row.Month, TWR: floatOrZero(row.TWR)}
	}
	return out
}

func NormalizeMonthlyExpenses(rows []models.MonthlyExpenseRow) []models.MonthlyExpense {
	out := make([]models.MonthlyExpense, len(rows))
	for i, row := range rows {
		out[i] = models.MonthlyExpense{
			Month:       row.Month,
			TradingFees: floatOrZero(row.TradingFees),
			Taxes:       floatOrZero(row.Taxes),
			Interest:    floatOrZero(row.Interest),
		}
	}
	return out
}

func equityPoint(row models.EquityPointRow) models.EquityPoint {
	date := formatDate(row.SnapshotDate)
	if date == "" {
		date = formatDate(row.Date)
	}
	return models.EquityPoint{SnapshotDate: date, NetEquityValue: floatOrZero(row.NetEquityValue)}
}

// GroupEquity groups a range-sampled equity series by range label.
func GroupEquity(rows []models.EquityPointRow) map[string][]models.EquityPoint {
	out := make(map[string][]models.EquityPoint)
	for _, row := range rows {
		out[row.RangeLabel] = append(out[row.RangeLabel], equityPoint(row))
	}
	return out
}

func EquitySeries(rows []models.EquityPointRow) []models.EquityPoint {
	out := make([]models.EquityPoint, len(rows))
	for i, row := range rows {
		out[i] = equityPoint(row)
	}
	return out
}

func benchmarkPoint(row models.BenchmarkPointRow) models.BenchmarkPoint {
	date := formatDate(row.SnapshotDate)
	if date == "" {
		date = formatDate(row.Date)
	}
	return models.BenchmarkPoint{
		RangeLabel:     row.RangeLabel,
		SnapshotDate:   date,
		PortfolioValue: floatOrZero(row.PortfolioValue),
		VNIValue:       floatOrZero(row.VNIValue),
	}
}

// GroupBenchmark groups a range-sampled benchmark series by range label.
func GroupBenchmark(rows []models.BenchmarkPointRow) map[string][]models.BenchmarkPoint {
	out := make(map[string][]models.BenchmarkPoint)
	for _, row := range rows {
		out[row.RangeLabel] = append(out[row.RangeLabel], benchmarkPoint(row))
	}
	return out
}

func BenchmarkSeries(rows []models.BenchmarkPointRow) []models.BenchmarkPoint {
	out := make([]models.BenchmarkPoint, len(rows))
	for i, row := range rows {
		out[i] = benchmarkPoint(row)
	}
	return out
}

// NormalizeAnnualReturns keys returns by year. Missing returns stay null.
func NormalizeAnnualReturns(rows []models.AnnualReturnRow) map[string]models.AnnualReturn {
	out := make(map[string]models.AnnualReturn, len(rows))
	for _, row := range rows {
		out[row.Year] = models.AnnualReturn{
			EquityReturn:  floatOrNil(row.EquityRet),
			VNIndexReturn: floatOrNil(row.VNRet),
		}
	}
	return out
}

// NormalizeCashflow coerces nulls to 0 and, when year is non-zero, keeps only that year.
func NormalizeCashflow(rows []models.CashflowRow, year int) []models.YearlyCashflow {
	out := make([]models.YearlyCashflow, 0, len(rows))
	for _, row := range rows {
		if year != 0 && row.Year != year {
			continue
		}
		out = append(out, models.YearlyCashflow{
			Year:        row.Year,
			Deposits:    floatOrZero(row.Deposits),
			Withdrawals: floatOrZero(row.Withdrawals),
		})
	}
	return out
}

func NormalizeMonthlySnapshots(rows []models.MonthlySnapshot) []models.MonthlySnapshotReport {
	out := make([]models.MonthlySnapshotReport, len(rows))
	for i, row := range rows {
		out[i] = models.MonthlySnapshotReport{
			Date:        row.Date.Format(models.DateLayout),
			Deposits:    floatOrZero(row.Deposits),
			Withdrawals: floatOrZero(row.Withdrawals),
			PnL:         floatOrZero(row.PnL),
			Fee:         floatOrZero(row.Fee),
			Interest:    floatOrZero(row.Interest),
			Tax:         floatOrZero(row.Tax),
		}
	}
	return out
}

func NormalizeYearlySnapshots(rows []models.YearlySnapshot) []models.YearlySnapshotReport {
	out := make([]models.YearlySnapshotReport, len(rows))
	for i, row := range rows {
		out[i] = models.YearlySnapshotReport{
			Year:          row.Year,
			Deposits:      floatOrZero(row.Deposits),
			Withdrawals:   floatOrZero(row.Withdrawals),
			EquityReturn:  floatOrZero(row.EquityRet),
			VNIndexReturn: floatOrZero(row.VNRet),
		}
	}
	return out
}

func NormalizeStockHoldings(rows []models.StockHoldingRow) []models.StockHolding {
	out := make([]models.StockHolding, len(rows))
	for i, row := range rows {
		qty := decimalOrZero(row.Quantity)
		price := decimalOrZero(row.LatestPrice)
		out[i] = models.StockHolding{
			Ticker:      row.Ticker,
			Name:        row.Name,
			LogoURL:     row.LogoURL,
			Quantity:    qty.InexactFloat64(),
			CostBasis:   floatOrZero(row.CostBasis),
			LatestPrice: price.InexactFloat64(),
			MarketValue: qty.Mul(price).InexactFloat64(),
		}
	}
	return out
}

func NormalizeCryptoHoldings(rows []models.CryptoHoldingRow) []models.CryptoHolding {
	out := make([]models.CryptoHolding, len(rows))
	for i, row := range rows {
		out[i] = models.CryptoHolding{
			Ticker:        row.Ticker,
			Name:          row.Name,
			LogoURL:       row.LogoURL,
			Quantity:      floatOrZero(row.Quantity),
			CostBasis:     floatOrZero(row.CostBasis),
			LatestPrice:   floatOrZero(row.LatestPrice),
			LatestUSDRate: floatOrZero(row.LatestUSDRate),
			TotalAmount:   floatOrZero(row.TotalAmount),
		}
	}
	return out
}

func decimalOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// GroupStockPnLByYear keys per-stock annual PnL by year, keeping row order within a year.
func GroupStockPnLByYear(rows []models.StockAnnualPnL) map[string][]models.StockPnL {
	out := make(map[string][]models.StockPnL)
	for _, row := range rows {
		year := strconv.Itoa(row.Year)
		out[year] = append(out[year], models.StockPnL{
			AssetID:  row.AssetID,
			Ticker:   row.Ticker,
			TotalPnL: floatOrZero(row.TotalPnL),
		})
	}
	return out
}

func NormalizeTransactionFeed(rows []models.TransactionFeedRow) []models.TransactionFeedItem {
	out := make([]models.TransactionFeedItem, len(rows))
	for i, row := range rows {
		out[i] = models.TransactionFeedItem{
			TransactionID:   row.TransactionID,
			TransactionDate: row.TransactionDate.Format(models.DateLayout),
			Type:            row.Type,
			Description:     row.Description,
			Ticker:          row.Ticker,
			Name:            row.Name,
			LogoURL:         row.LogoURL,
			Quantity:        floatOrZero(row.Quantity),
			Amount:          floatOrZero(row.Amount),
			CurrencyCode:    row.CurrencyCode,
			NetSold:         floatOrZero(row.NetSold),
		}
	}
	return out
}

func DebtViews(debts []models.Debt) []models.DebtView {
	out := make([]models.DebtView, len(debts))
	for i, d := range debts {
		out[i] = d.View()
	}
	return out
}

// MergeEarnings pairs each PnL month with the TWR of the same month, in PnL order.
func MergeEarnings(pnl []models.MonthlyPnL, twr []models.MonthlyTWR) []models.MonthlyEarning {
	byMonth := make(map[string]float64, len(twr))
	for _, t := range twr {
		if _, seen := byMonth[t.Month]; !seen {
			byMonth[t.Month] = t.TWR
		}
	}
	out := make([]models.MonthlyEarning, len(pnl))
	for i, p := range pnl {
		out[i] = models.MonthlyEarning{Month: p.Month, PnL: p.PnL, TWR: byMonth[p.Month]}
	}
	return out
}

// MonthlyReturns extracts the TWR series in month order.
func MonthlyReturns(rows []models.MonthlyTWR) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row.TWR
	}
	return out
}

func NormalizeTransactionLegs(rows []models.TransactionLegRow) []models.TransactionLeg {
	out := make([]models.TransactionLeg, len(rows))
	for i, row := range rows {
		out[i] = models.TransactionLeg{
			ID:            row.ID,
			TransactionID: row.TransactionID,
			AccountID:     row.AccountID,
			AssetID:       row.AssetID,
			Quantity:      floatOrZero(row.Quantity),
			Amount:        floatOrZero(row.Amount),
			CurrencyCode:  row.CurrencyCode,
			Asset: models.LegAsset{
				Name:       row.AssetName,
				Ticker:     row.AssetTicker,
				AssetClass: row.AssetClass,
			},
		}
	}
	return out
}

var emptyList = json.RawMessage("[]")

// listOrEmpty reports a missing or null list as an empty array.
func listOrEmpty(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyList
	}
	return raw
}
