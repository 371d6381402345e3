package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/securevault/vault-system/internal/core/ports"
	"github.com/securevault/vault-system/internal/core/service"
	"github.com/securevault/vault-system/internal/infrastructure/config"
	"github.com/securevault/vault-system/internal/infrastructure/seed"
	"github.com/securevault/vault-system/pkg/logger"
)

type seedOptions struct {
	file     string
	fake     int
	fakeSeed uint64
}

func newSeedCmd() *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seal plaintext records and load them into the record store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML file of records to import")
	cmd.Flags().IntVar(&opts.fake, "fake", 0, "number of generated records to import")
	cmd.Flags().Uint64Var(&opts.fakeSeed, "fake-seed", 1, "seed for generated records")
	return cmd
}

func (o seedOptions) records() ([]ports.ImportInput, error) {
	var out []ports.ImportInput
	if o.file != "" {
		recs, err := seed.LoadFile(o.file)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	if o.fake > 0 {
		out = append(out, seed.Fake(o.fake, o.fakeSeed)...)
	}
	if len(out) == 0 {
		return nil, errors.New("nothing to import: pass --file or --fake")
	}
	return out, nil
}

func runSeed(cmd *cobra.Command, opts seedOptions) error {
	records, err := opts.records()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg, err := config.LoadSeed(ctx)
	if err != nil {
		return err
	}
	if cfg.Store == config.StoreMemory {
		return errors.New("seed: VAULT_STORE=memory would discard records on exit; use VAULT_SEED_FILE with serve instead")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: cmd.ErrOrStderr(), Service: "vault-seed"})

	indexer, sealer, err := loadKeys(cfg.Keys)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg.Store, cfg.Mongo, log)
	if err != nil {
		return err
	}
	defer st.close()

	svc := service.NewVaultService(st.repo, nil, indexer, sealer, log)
	sum, err := importRecords(ctx, svc, records, cfg.Workers, log)
	if err != nil {
		return err
	}
	if sum.Failed > 0 {
		return fmt.Errorf("seed: %d of %d records failed", sum.Failed, len(records))
	}
	return nil
}
