package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tropicaldog17/folio/internal/models"
)

func num(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNormalizeRanges(t *testing.T) {
	t.Run("keeps exactly the labels returned", func(t *testing.T) {
		got := NormalizeRanges([]models.LabeledValue{
			{Label: "ytd", Value: num("100")},
			{Label: "all_time", Value: num("500")},
		})
		assert.Equal(t, models.RangeReport{"ytd": 100, "all_time": 500}, got)
	})

	t.Run("unknown labels pass through", func(t *testing.T) {
		got := NormalizeRanges([]models.LabeledValue{
			{Label: "mtd", Value: num("1.5")},
			{Label: "last_quarter", Value: num("-20")},
		})
		assert.Equal(t, 1.5, got["mtd"])
		assert.Equal(t, -20.0, got["last_quarter"])
	})

	t.Run("null value reports zero", func(t *testing.T) {
		got := NormalizeRanges([]models.LabeledValue{{Label: "mtd"}})
		v, ok := got["mtd"]
		require.True(t, ok)
		assert.Zero(t, v)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeRanges(nil))
	})
}

func TestShortMonth(t *testing.T) {
	cases := map[string]string{
		"2024-03": "Mar",
		"2023-12": "Dec",
		"2024-01": "Jan",
		"March":   "March",
		"":        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ShortMonth(in), "input %q", in)
	}
}

func TestNormalizeMonthlyPnL(t *testing.T) {
	rows := []models.MonthlyPnLRow{
		{Month: "2024-02", PnL: num("10")},
		{Month: "2024-01", PnL: decimal.NullDecimal{}},
		{Month: "2024-03", PnL: num("-4.25")},
	}

	short := NormalizeMonthlyPnL(rows, true)
	require.Len(t, short, 3)
	assert.Equal(t, []models.MonthlyPnL{
		{Month: "Feb", PnL: 10},
		{Month: "Jan", PnL: 0},
		{Month: "Mar", PnL: -4.25},
	}, short)

	long := NormalizeMonthlyPnL(rows, false)
	assert.Equal(t, "2024-02", long[0].Month)
	assert.Equal(t, "2024-03", long[2].Month)
}

func TestNormalizeMonthlyExpenses(t *testing.T) {
	got := NormalizeMonthlyExpenses([]models.MonthlyExpenseRow{
		{Month: "2024-05", TradingFees: num("12.5"), Taxes: decimal.NullDecimal{}, Interest: num("3")},
	})
	require.Len(t, got, 1)
	assert.Equal(t, models.MonthlyExpense{Month: "2024-05", TradingFees: 12.5, Taxes: 0, Interest: 3}, got[0])
}

func TestNormalizeMonthlySnapshots_NullsBecomeZero(t *testing.T) {
	got := NormalizeMonthlySnapshots([]models.MonthlySnapshot{
		{Date: *date(2024, 1, 31), Deposits: decimal.NullDecimal{}, Withdrawals: num("200"), PnL: num("15.5")},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-31", got[0].Date)
	assert.Zero(t, got[0].Deposits)
	assert.Equal(t, 200.0, got[0].Withdrawals)
	assert.Equal(t, 15.5, got[0].PnL)
	assert.Zero(t, got[0].Fee)
	assert.Zero(t, got[0].Interest)
	assert.Zero(t, got[0].Tax)
}

func TestNormalizeYearlySnapshots(t *testing.T) {
	got := NormalizeYearlySnapshots([]models.YearlySnapshot{
		{Year: 2023, Deposits: num("1000"), EquityRet: num("0.12")},
	})
	require.Len(t, got, 1)
	assert.Equal(t, models.YearlySnapshotReport{Year: 2023, Deposits: 1000, EquityReturn: 0.12}, got[0])
}

func TestGroupEquity(t *testing.T) {
	got := GroupEquity([]models.EquityPointRow{
		{RangeLabel: "1y", SnapshotDate: date(2024, 1, 1), NetEquityValue: num("100")},
		{RangeLabel: "all", SnapshotDate: date(2020, 1, 1), NetEquityValue: num("10")},
		{RangeLabel: "1y", SnapshotDate: date(2024, 2, 1), NetEquityValue: num("110")},
	})
	require.Len(t, got, 2)
	assert.Equal(t, []models.EquityPoint{
		{SnapshotDate: "2024-01-01", NetEquityValue: 100},
		{SnapshotDate: "2024-02-01", NetEquityValue: 110},
	}, got["1y"])
	assert.Len(t, got["all"], 1)
}

func TestEquitySeries_FallsBackToDate(t *testing.T) {
	got := EquitySeries([]models.EquityPointRow{
		{Date: date(2024, 6, 30), NetEquityValue: num("42")},
	})
	assert.Equal(t, []models.EquityPoint{{SnapshotDate: "2024-06-30", NetEquityValue: 42}}, got)
}

func TestGroupBenchmark(t *testing.T) {
	got := GroupBenchmark([]models.BenchmarkPointRow{
		{RangeLabel: "ytd", SnapshotDate: date(2024, 1, 2), PortfolioValue: num("1"), VNIValue: num("1")},
		{RangeLabel: "ytd", SnapshotDate: date(2024, 1, 3), PortfolioValue: num("1.02"), VNIValue: decimal.NullDecimal{}},
	})
	require.Len(t, got["ytd"], 2)
	assert.Equal(t, "2024-01-03", got["ytd"][1].SnapshotDate)
	assert.Equal(t, 1.02, got["ytd"][1].PortfolioValue)
	assert.Zero(t, got["ytd"][1].VNIValue)
}

func TestNormalizeAnnualReturns_KeepsNulls(t *testing.T) {
	got := NormalizeAnnualReturns([]models.AnnualReturnRow{
		{Year: "2023", EquityRet: num("0.1"), VNRet: num("0.05")},
		{Year: "2024", EquityRet: num("0.2")},
	})
	require.Len(t, got, 2)
	require.NotNil(t, got["2023"].VNIndexReturn)
	assert.Equal(t, 0.05, *got["2023"].VNIndexReturn)
	require.NotNil(t, got["2024"].EquityReturn)
	assert.Equal(t, 0.2, *got["2024"].EquityReturn)
	assert.Nil(t, got["2024"].VNIndexReturn)
}

func TestNormalizeCashflow(t *testing.T) {
	rows := []models.CashflowRow{
		{Year: 2023, Deposits: num("100"), Withdrawals: decimal.NullDecimal{}},
		{Year: 2024, Deposits: num("50"), Withdrawals: num("20")},
	}

	all := NormalizeCashflow(rows, 0)
	require.Len(t, all, 2)
	assert.Zero(t, all[0].Withdrawals)

	only := NormalizeCashflow(rows, 2024)
	assert.Equal(t, []models.YearlyCashflow{{Year: 2024, Deposits: 50, Withdrawals: 20}}, only)

	assert.Empty(t, NormalizeCashflow(rows, 1999))
}

func TestNormalizeStockHoldings_MarketValue(t *testing.T) {
	logo := "https://logo/fpt.png"
	got := NormalizeStockHoldings([]models.StockHoldingRow{
		{Ticker: "FPT", Name: "FPT Corp", LogoURL: &logo, Quantity: num("100"), CostBasis: num("9000"), LatestPrice: num("120.5")},
		{Ticker: "VNM", Name: "Vinamilk", Quantity: num("10")},
	})
	require.Len(t, got, 2)
	assert.Equal(t, 12050.0, got[0].MarketValue)
	assert.Equal(t, 9000.0, got[0].CostBasis)
	assert.Zero(t, got[1].LatestPrice)
	assert.Zero(t, got[1].MarketValue)
}

func TestGroupStockPnLByYear(t *testing.T) {
	got := GroupStockPnLByYear([]models.StockAnnualPnL{
		{AssetID: "a1", Ticker: "FPT", Year: 2024, TotalPnL: num("10")},
		{AssetID: "a2", Ticker: "HPG", Year: 2024, TotalPnL: decimal.NullDecimal{}},
		{AssetID: "a1", Ticker: "FPT", Year: 2023, TotalPnL: num("-3")},
	})
	require.Len(t, got, 2)
	assert.Equal(t, []models.StockPnL{
		{AssetID: "a1", Ticker: "FPT", TotalPnL: 10},
		{AssetID: "a2", Ticker: "HPG", TotalPnL: 0},
	}, got["2024"])
	assert.Equal(t, -3.0, got["2023"][0].TotalPnL)
}

func TestNormalizeTransactionFeed(t *testing.T) {
	desc := "Buy 10 FPT at 100"
	got := NormalizeTransactionFeed([]models.TransactionFeedRow{
		{TransactionID: "t1", TransactionDate: *date(2024, 4, 2), Type: "buy", Description: &desc, Quantity: num("10"), Amount: num("1000")},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-04-02", got[0].TransactionDate)
	assert.Equal(t, 1000.0, got[0].Amount)
	assert.Zero(t, got[0].NetSold)
	assert.Equal(t, &desc, got[0].Description)
}

func TestDebtViews(t *testing.T) {
	got := DebtViews([]models.Debt{{
		ID:              "d1",
		LenderName:      "Bank",
		PrincipalAmount: decimal.RequireFromString("5000"),
		InterestRate:    decimal.RequireFromString("7.5"),
		CurrencyCode:    "VND",
		StartDate:       *date(2024, 3, 1),
	}})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-01", got[0].StartDate)
	assert.Equal(t, 7.5, got[0].InterestRate)
}

func TestMergeEarnings(t *testing.T) {
	pnl := []models.MonthlyPnL{{Month: "2024-01", PnL: 10}, {Month: "2024-02", PnL: -3}, {Month: "2024-03", PnL: 0}}
	twr := []models.MonthlyTWR{{Month: "2024-02", TWR: 0.02}, {Month: "2024-02", TWR: 0.5}, {Month: "2024-01", TWR: 0.01}}

	got := MergeEarnings(pnl, twr)
	assert.Equal(t, []models.MonthlyEarning{
		{Month: "2024-01", PnL: 10, TWR: 0.01},
		{Month: "2024-02", PnL: -3, TWR: 0.02},
		{Month: "2024-03", PnL: 0, TWR: 0},
	}, got)
	assert.Empty(t, MergeEarnings(nil, twr))
}

func TestNormalizeCryptoHoldings(t *testing.T) {
	logo := "https://logo.example/btc.png"
	got := NormalizeCryptoHoldings([]models.CryptoHoldingRow{{
		Ticker:        "BTC",
		Name:          "Bitcoin",
		LogoURL:       &logo,
		Quantity:      num("0.5"),
		LatestPrice:   num("60000"),
		LatestUSDRate: num("25400"),
		TotalAmount:   num("762000000"),
	}})
	require.Len(t, got, 1)
	assert.Equal(t, 0.5, got[0].Quantity)
	assert.Equal(t, 0.0, got[0].CostBasis)
	assert.Equal(t, 25400.0, got[0].LatestUSDRate)
	assert.Equal(t, 762000000.0, got[0].TotalAmount)
	assert.Equal(t, &logo, got[0].LogoURL)
}
