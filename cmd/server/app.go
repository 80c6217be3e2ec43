package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/config"
	"github.com/tropicaldog17/folio/internal/db"
	"github.com/tropicaldog17/folio/internal/logger"
	"github.com/tropicaldog17/folio/internal/repositories"
	"github.com/tropicaldog17/folio/internal/services"
)

// app holds the wired collaborators shared by the commands.
type app struct {
	cfg          *config.Config
	log          *zap.Logger
	db           *db.DB
	reports      services.ReportingService
	transactions services.TransactionService
	snapshots    services.SnapshotService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Env())
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	database, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info("database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name))

	client := repositories.NewQueryClient(database)
	ledger := repositories.NewLedgerRepository(client)

	return &app{
		cfg: cfg,
		log: log,
		db:  database,
		reports: services.NewReportingService(
			repositories.NewReportingRepository(client),
			ledger,
			services.ReportingOptions{
				ChartThreshold:     cfg.ChartThreshold,
				UserChartThreshold: cfg.UserChartThreshold,
				RiskFreeRate:       cfg.RiskFreeRate,
			},
		),
		transactions: services.NewTransactionService(ledger, repositories.NewTransactionRepository(client)),
		snapshots:    services.NewSnapshotService(repositories.NewSnapshotRepository(client), log),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn("closing database", zap.Error(err))
	}
	_ = a.log.Sync()
}
