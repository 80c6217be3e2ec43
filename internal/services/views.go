package services

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/tropicaldog17/folio/internal/models"
)

func (s *reportingService) CryptoHoldings(ctx context.Context, userID string) ([]models.CryptoHolding, error) {
	rows, err := s.reports.GetCryptoHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NormalizeCryptoHoldings(rows), nil
}

func (s *reportingService) AssetSummary(ctx context.Context, userID string) (json.RawMessage, error) {
	return s.reports.GetAssetSummary(ctx, userID)
}

func (s *reportingService) AssetAccountData(ctx context.Context, userID string) (*models.AssetAccountData, error) {
	data, err := s.reports.GetAssetAccountData(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.AssetAccountData{
		Accounts: listOrEmpty(data.Accounts),
		Assets:   listOrEmpty(data.Assets),
	}, nil
}

// Dashboard reads the dashboard sections concurrently. The first failure
// cancels the remaining reads and fails the whole view.
func (s *reportingService) Dashboard(ctx context.Context, userID string, lifetime models.Period) (*models.Dashboard, error) {
	var d models.Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.TWRData, err = s.TWRByRange(ctx, userID)
		return err
	})
	g.Go(func() error {
		monthly, err := s.MonthlyTWR(ctx, userID, lifetime)
		if err != nil {
			return err
		}
		d.MonthlyReturnData = MonthlyReturns(monthly)
		return nil
	})
	g.Go(func() (err error) {
		d.PnLData, err = s.PnLByRange(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.EquityData, err = s.EquityChartByRange(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.BenchmarkData, err = s.BenchmarkChartByRange(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.BalanceSheetData, err = s.BalanceSheet(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.StockData, err = s.StockHoldings(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.CryptoData, err = s.CryptoHoldings(ctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *reportingService) Holdings(ctx context.Context, userID string) (*models.Holdings, error) {
	stocks, err := s.StockHoldings(ctx)
	if err != nil {
		return nil, err
	}
	crypto, err := s.CryptoHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Holdings{StockHoldings: stocks, CryptoHoldings: crypto}, nil
}

// Earnings is the monthly PnL of a window with each month's TWR attached.
func (s *reportingService) Earnings(ctx context.Context, userID string, period models.Period) ([]models.MonthlyEarning, error) {
	pnl, err := s.MonthlyPnL(ctx, userID, period, false)
	if err != nil {
		return nil, err
	}
	twr, err := s.MonthlyTWR(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	return MergeEarnings(pnl, twr), nil
}

func (s *reportingService) TransactionForm(ctx context.Context, userID string) (*models.TransactionForm, error) {
	data, err := s.AssetAccountData(ctx, userID)
	if err != nil {
		return nil, err
	}
	debts, err := s.reports.GetActiveDebts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.TransactionForm{
		Accounts: data.Accounts,
		Assets:   data.Assets,
		Debts:    listOrEmpty(debts),
	}, nil
}

func (s *reportingService) TransactionLegs(ctx context.Context, txnID string) ([]models.TransactionLeg, error) {
	rows, err := s.ledger.ListTransactionLegs(ctx, txnID)
	if err != nil {
		return nil, err
	}
	return NormalizeTransactionLegs(rows), nil
}
