package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/tropicaldog17/folio/docs"
	"github.com/tropicaldog17/folio/internal/auth"
	apperrors "github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/services"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Reports      services.ReportingService
	Transactions services.TransactionService
	Snapshots    services.SnapshotService
	DB           Pinger
	Gate         *auth.SecretGate
	Sessions     *auth.SessionVerifier
	Logger       *zap.Logger
	Now          Clock
}

// NewRouter builds the HTTP handler of the service.
func NewRouter(d Dependencies) http.Handler {
	internal := NewInternalHandler(d.Reports, d.Snapshots, d.Now)
	users := NewUserHandler(d.Reports, d.Now)
	perf := NewPerformanceHandler(d.Reports, d.Now)
	txns := NewTransactionHandler(d.Transactions)
	health := NewHealthHandler(d.DB)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, apperrors.NotFound("Not Found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, apperrors.MethodNotAllowed())
	})
	r.HandleFunc("/health", health.HandleHealth).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/api").Subrouter()

	in := api.PathPrefix("/internal").Subrouter()
	in.Use(RequireSecret(d.Gate))
	in.HandleFunc("/pnl", internal.HandlePnL).Methods(http.MethodGet)
	in.HandleFunc("/twr", internal.HandleTWR).Methods(http.MethodGet)
	in.HandleFunc("/balance-sheet", internal.HandleBalanceSheet).Methods(http.MethodGet)
	in.HandleFunc("/equity-chart", internal.HandleEquityChart).Methods(http.MethodGet)
	in.HandleFunc("/benchmark-chart", internal.HandleBenchmarkChart).Methods(http.MethodGet)
	in.HandleFunc("/annual-return", internal.HandleAnnualReturn).Methods(http.MethodGet)
	in.HandleFunc("/annual-return-chart", internal.HandleAnnualReturnChart).Methods(http.MethodGet)
	in.HandleFunc("/cashflow", internal.HandleCashflow).Methods(http.MethodGet)
	in.HandleFunc("/monthly-data", internal.HandleMonthlyData).Methods(http.MethodGet)
	in.HandleFunc("/yearly-data", internal.HandleYearlyData).Methods(http.MethodGet)
	in.HandleFunc("/debts", internal.HandleDebts).Methods(http.MethodGet)
	in.HandleFunc("/assets", internal.HandleAssets).Methods(http.MethodGet)
	in.HandleFunc("/stock-holdings", internal.HandleStockHoldings).Methods(http.MethodGet)
	in.HandleFunc("/pnl-by-stock", internal.HandlePnLByStock).Methods(http.MethodGet)
	in.HandleFunc("/transactions", internal.HandleTransactions).Methods(http.MethodGet)
	in.HandleFunc("/txn-details", internal.HandleTxnDetails).Methods(http.MethodGet)
	in.HandleFunc("/transaction-legs", internal.HandleTransactionLegs).Methods(http.MethodGet)
	in.HandleFunc("/snapshots", internal.HandleGenerateSnapshots).Methods(http.MethodPost)

	session := RequireSession(d.Sessions)

	u := api.PathPrefix("/users/{userId}").Subrouter()
	u.Use(session)
	u.HandleFunc("/pnl", users.HandlePnL).Methods(http.MethodGet)
	u.HandleFunc("/twr", users.HandleTWR).Methods(http.MethodGet)
	u.HandleFunc("/balance-sheet", users.HandleBalanceSheet).Methods(http.MethodGet)
	u.HandleFunc("/monthly-pnl", users.HandleMonthlyPnL).Methods(http.MethodGet)
	u.HandleFunc("/monthly-twr", users.HandleMonthlyTWR).Methods(http.MethodGet)
	u.HandleFunc("/equity-chart", users.HandleEquityChart).Methods(http.MethodGet)
	u.HandleFunc("/benchmark-chart", users.HandleBenchmarkChart).Methods(http.MethodGet)
	u.HandleFunc("/debts", users.HandleDebts).Methods(http.MethodGet)
	u.HandleFunc("/first-snapshot-date", users.HandleFirstSnapshotDate).Methods(http.MethodGet)
	u.HandleFunc("/transaction-feed", users.HandleTransactionFeed).Methods(http.MethodGet)
	u.HandleFunc("/metrics", users.HandleMetrics).Methods(http.MethodGet)
	u.HandleFunc("/dashboard", users.HandleDashboard).Methods(http.MethodGet)
	u.HandleFunc("/holdings", users.HandleHoldings).Methods(http.MethodGet)
	u.HandleFunc("/crypto-holdings", users.HandleCryptoHoldings).Methods(http.MethodGet)
	u.HandleFunc("/earnings", users.HandleEarnings).Methods(http.MethodGet)
	u.HandleFunc("/expenses", users.HandleExpenses).Methods(http.MethodGet)
	u.HandleFunc("/asset-summary", users.HandleAssetSummary).Methods(http.MethodGet)
	u.HandleFunc("/asset-account-data", users.HandleAssetAccountData).Methods(http.MethodGet)
	u.HandleFunc("/transaction-form", users.HandleTransactionForm).Methods(http.MethodGet)

	api.Handle("/performance", session(http.HandlerFunc(perf.HandleTWR))).Methods(http.MethodGet)
	api.Handle("/performance/pnl", session(http.HandlerFunc(perf.HandlePnL))).Methods(http.MethodGet)
	api.Handle("/performance/equity", session(http.HandlerFunc(perf.HandleEquity))).Methods(http.MethodGet)
	api.Handle("/performance/benchmark", session(http.HandlerFunc(perf.HandleBenchmark))).Methods(http.MethodGet)
	api.Handle("/reporting/monthly-expenses", session(http.HandlerFunc(perf.HandleMonthlyExpenses))).Methods(http.MethodGet)
	api.Handle("/transactions", session(http.HandlerFunc(txns.HandleCreate))).Methods(http.MethodPost)

	return RequestLogger(d.Logger)(CORS(Recover(r)))
}
