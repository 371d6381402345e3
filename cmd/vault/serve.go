package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/securevault/vault-system/internal/api"
	"github.com/securevault/vault-system/internal/core/ports"
	"github.com/securevault/vault-system/internal/core/service"
	"github.com/securevault/vault-system/internal/infrastructure/config"
	vaultredis "github.com/securevault/vault-system/internal/infrastructure/db/redis"
	"github.com/securevault/vault-system/internal/infrastructure/seed"
	"github.com/securevault/vault-system/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the secure-search lookup service",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadServer(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "vault-serve"})

	indexer, sealer, err := loadKeys(cfg.Keys)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg.Store, cfg.Mongo, log)
	if err != nil {
		return err
	}
	defer st.close()

	var cache ports.RecordCache
	if cfg.Redis.Enabled {
		rc, err := vaultredis.Connect(ctx, vaultredis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
			TTL:  cfg.Redis.CacheTTL,
		})
		if err != nil {
			return err
		}
		defer rc.Close()
		cache = rc
		st.checks["redis"] = rc.Ping
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", rc.TTL()).Msg("record cache enabled")
	}

	svc := service.NewVaultService(st.repo, cache, indexer, sealer, log)

	if cfg.SeedFile != "" {
		records, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		if _, err := importRecords(ctx, svc, records, cfg.SeedWorkers, log); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: api.NewRouter(api.Deps{
			Vault:       svc,
			Checks:      st.checks,
			CORSOrigins: cfg.CORSOrigins,
			Log:         log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store).Msg("secure vault backend active")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
			return err
		}
		log.Info().Msg("secure vault backend stopped")
		return nil
	})
	return g.Wait()
}
