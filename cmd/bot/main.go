package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekusatech/inoutcome-wa/internal/api"
	"github.com/fekusatech/inoutcome-wa/internal/auth"
	"github.com/fekusatech/inoutcome-wa/internal/bot"
	"github.com/fekusatech/inoutcome-wa/internal/config"
	"github.com/fekusatech/inoutcome-wa/internal/db"
	"github.com/fekusatech/inoutcome-wa/internal/ledger"
	"github.com/fekusatech/inoutcome-wa/internal/logger"
	"github.com/fekusatech/inoutcome-wa/internal/metrics"
	"github.com/fekusatech/inoutcome-wa/internal/repository/postgres"
	"github.com/fekusatech/inoutcome-wa/internal/wallet"
	"github.com/fekusatech/inoutcome-wa/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	walletSvc, err := wallet.NewService(repos.Wallets)
	if err != nil {
		log.Error("wallet service", "err", err)
		os.Exit(1)
	}
	ledgerSvc := ledger.NewService(repos.Transactions, repos.Sessions, repos.AuditLogs, walletSvc, wp)
	handler := bot.NewHandler(cfg, ledgerSvc, walletSvc, log)

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, 15*time.Minute, 24*time.Hour)
	r := api.NewRouter(cfg, handler, ledgerSvc, walletSvc, tm)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// clean up expired confirmation sessions every hour
	purge := time.NewTicker(time.Hour)
	defer purge.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-purge.C:
				wp.Submit(func() { ledgerSvc.PurgeExpiredSessions(context.Background()) })
			}
		}
	}()

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "groups", len(cfg.AllowedGroupIDs))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
