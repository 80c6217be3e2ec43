package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/auth"
	"github.com/tropicaldog17/folio/internal/handlers"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.InternalSecret == "" {
		a.log.Warn("MY_APP_SECRET is not set; internal routes will reject every request")
	}
	if a.cfg.SessionSecret == "" {
		a.log.Warn("SUPABASE_JWT_SECRET is not set; user routes will reject every request")
	}

	if a.cfg.SnapshotsEnabled {
		sched := scheduler.New(a.log, 30*time.Minute)
		if err := sched.AddJob(a.cfg.SnapshotSchedule, scheduler.NewSnapshotJob(a.snapshots, time.Now)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	router := handlers.NewRouter(handlers.Dependencies{
		Reports:      a.reports,
		Transactions: a.transactions,
		Snapshots:    a.snapshots,
		DB:           a.db,
		Gate:         auth.NewSecretGate(a.cfg.InternalSecret),
		Sessions:     auth.NewSessionVerifier(a.cfg.SessionSecret, a.cfg.DemoUserID),
		Logger:       a.log,
		Now:          time.Now,
	})

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range <token>",
		Short: "Print the window a range token resolves to today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := models.ResolveRange(args[0], time.Now())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(period)
		},
	}
}

func newSnapshotsCmd() *cobra.Command {
	var startDate string

	run := &cobra.Command{
		Use:   "run",
		Short: "Generate portfolio snapshots for every profile up to today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			today := time.Now().Format(models.DateLayout)
			if startDate == "" {
				startDate = today
			}
			period, err := models.ParsePeriod(startDate, today)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.snapshots.Generate(cmd.Context(), period)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	run.Flags().StringVar(&startDate, "start-date", "", "first day to snapshot (YYYY-MM-DD), defaults to today")

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Portfolio snapshot maintenance",
	}
	cmd.AddCommand(run)
	return cmd
}
