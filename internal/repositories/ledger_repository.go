package repositories

import (
	"context"

	"github.com/lib/pq"

	"github.com/tropicaldog17/folio/internal/models"
)

type ledgerRepository struct {
	client *QueryClient
}

// NewLedgerRepository creates a repository over the ledger tables
// (assets, debts, snapshots).
func NewLedgerRepository(client *QueryClient) LedgerRepository {
	return &ledgerRepository{client: client}
}

func (r *ledgerRepository) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	tx, err := r.client.From(ctx, models.Asset{}.TableName())
	if err != nil {
		return nil, err
	}
	var asset models.Asset
	if err := Done("asset", tx.Where("id = ?", id).First(&asset)); err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListAssets returns assets ordered by ticker, skipping the given classes.
func (r *ledgerRepository) ListAssets(ctx context.Context, excludeClasses []string) ([]models.Asset, error) {
	tx, err := r.client.From(ctx, models.Asset{}.TableName())
	if err != nil {
		return nil, err
	}
	if len(excludeClasses) > 0 {
		tx = tx.Where("asset_class <> ALL(?)", pq.Array(excludeClasses))
	}
	var assets []models.Asset
	if err := Done("assets", tx.Order("ticker").Find(&assets)); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *ledgerRepository) GetDebt(ctx context.Context, id string) (*models.Debt, error) {
	tx, err := r.client.From(ctx, models.Debt{}.TableName())
	if err != nil {
		return nil, err
	}
	var debt models.Debt
	if err := Done("debt", tx.Where("id = ?", id).First(&debt)); err != nil {
		return nil, err
	}
	return &debt, nil
}

// ListOpenDebts returns debts without a repayment transaction, oldest first.
func (r *ledgerRepository) ListOpenDebts(ctx context.Context) ([]models.Debt, error) {
	tx, err := r.client.From(ctx, models.Debt{}.TableName())
	if err != nil {
		return nil, err
	}
	var debts []models.Debt
	q := tx.Where("repay_txn_id IS NULL").Order("start_date")
	if err := Done("debts", q.Find(&debts)); err != nil {
		return nil, err
	}
	return debts, nil
}

func (r *ledgerRepository) ListMonthlySnapshots(ctx context.Context) ([]models.MonthlySnapshot, error) {
	tx, err := r.client.From(ctx, models.MonthlySnapshot{}.TableName())
	if err != nil {
		return nil, err
	}
	var rows []models.MonthlySnapshot
	if err := Done("monthly_snapshots", tx.Order("date").Find(&rows)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ledgerRepository) ListYearlySnapshots(ctx context.Context) ([]models.YearlySnapshot, error) {
	tx, err := r.client.From(ctx, models.YearlySnapshot{}.TableName())
	if err != nil {
		return nil, err
	}
	var rows []models.YearlySnapshot
	if err := Done("yearly_snapshots", tx.Order("year").Find(&rows)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ledgerRepository) ListStockAnnualPnL(ctx context.Context) ([]models.StockAnnualPnL, error) {
	tx, err := r.client.From(ctx, models.StockAnnualPnL{}.TableName())
	if err != nil {
		return nil, err
	}
	var rows []models.StockAnnualPnL
	if err := Done("stock_annual_pnl", tx.Order("year DESC").Order("ticker").Find(&rows)); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListTransactionLegs returns the legs of one transaction with the name,
// ticker and class of the asset each leg moves.
func (r *ledgerRepository) ListTransactionLegs(ctx context.Context, txnID string) ([]models.TransactionLegRow, error) {
	tx, err := r.client.From(ctx, models.TransactionLegRow{}.TableName())
	if err != nil {
		return nil, err
	}
	q := tx.Select("transaction_legs.*, assets.name AS asset_name, assets.ticker AS asset_ticker, assets.asset_class AS asset_class").
		Joins("LEFT JOIN assets ON assets.id = transaction_legs.asset_id").
		Where("transaction_legs.transaction_id = ?", txnID).
		Order("transaction_legs.id")
	var rows []models.TransactionLegRow
	if err := Done("transaction_legs", q.Find(&rows)); err != nil {
		return nil, err
	}
	return rows, nil
}
