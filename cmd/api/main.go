package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/dompet/internal/budget/store"
	"github.com/MrJamesThe3rd/dompet/internal/config"
	"github.com/MrJamesThe3rd/dompet/internal/database"
	"github.com/MrJamesThe3rd/dompet/internal/export"
	dompetHttp "github.com/MrJamesThe3rd/dompet/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/dompet/internal/http/analytics"
	budgetHandler "github.com/MrJamesThe3rd/dompet/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/dompet/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/dompet/internal/http/export"
	"github.com/MrJamesThe3rd/dompet/internal/http/identity"
	importHandler "github.com/MrJamesThe3rd/dompet/internal/http/importcsv"
	"github.com/MrJamesThe3rd/dompet/internal/http/request"
	ruleHandler "github.com/MrJamesThe3rd/dompet/internal/http/rule"
	txHandler "github.com/MrJamesThe3rd/dompet/internal/http/transaction"
	"github.com/MrJamesThe3rd/dompet/internal/importer"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
	"github.com/MrJamesThe3rd/dompet/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/dompet/internal/matching/store"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
	txStore "github.com/MrJamesThe3rd/dompet/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	owners := cfg.Owners()
	ident := identity.NewResolver(cfg.Auth.JWTSecret, owners[0], owners[1])

	// "api token <owner>" prints a bearer token and exits.
	if len(os.Args) == 3 && os.Args[1] == "token" {
		token, err := ident.Issue(os.Args[2], cfg.Auth.TokenTTL)
		if err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}

		fmt.Println(token)

		return
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, err := database.Migrate(db)
	if err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "schema_version", version)

	var (
		transactionService = transaction.NewService(txStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db))
		analyticsService   = analytics.NewService(transactionService, budgetService, analytics.Options{
			OwnerA:      owners[0],
			OwnerB:      owners[1],
			TrendWindow: cfg.Analytics.TrendWindow,
		})
		ingestService   = ingest.NewService(transactionService, cfg.Workspace.Currency, owners[0], owners[1])
		matchingService = matching.NewService(matchingStore.New(db))
		importService   = importer.NewService(ingestService, matchingService)
		exportService   = export.NewService(analyticsService, cfg.Workspace.Currency)
	)

	val := request.NewValidator(owners[0], owners[1])

	router := dompetHttp.New(dompetHttp.Handlers{
		Transactions: txHandler.NewHandler(transactionService, val, cfg.Workspace.Currency),
		Budgets:      budgetHandler.NewHandler(budgetService, val),
		Analytics:    analyticsHandler.NewHandler(analyticsService),
		Categories:   categoryHandler.NewHandler(),
		Import:       importHandler.NewHandler(ingestService, importService, val),
		Rules:        ruleHandler.NewHandler(matchingService, val),
		Export:       exportHandler.NewHandler(exportService),
	}, ident, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "port", srv.Addr, "auth", cfg.Auth.JWTSecret != "")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
