package main

import (
	"fmt"
	"io"
	"os"
	"supplychain-service/internal/app"
	"supplychain-service/internal/config"
	"supplychain-service/internal/services"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRootCmd builds the dbtool command tree. Every subcommand opens the
// store selected by STORE; --store overrides it.
func newRootCmd(cfg config.Config, log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the distribution dashboard database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.Store, "store", cfg.Store, "storage backend: sqlite or postgres")

	open := func(cmd *cobra.Command) (*app.Backend, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if cfg.Store == config.StoreMemory {
			return nil, fmt.Errorf("dbtool needs a persistent store, got STORE=%s", cfg.Store)
		}
		return app.OpenBackend(cmd.Context(), cfg)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create tables and indexes if missing",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				b, err := open(cmd)
				if err != nil {
					return err
				}
				defer b.Close()
				log.Info("schema ready", zap.String("store", cfg.Store))
				return nil
			},
		},
		newSeedCmd(&cfg, log, open),
		&cobra.Command{
			Use:   "export-kpis",
			Short: "Print the KPI report as CSV",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				b, err := open(cmd)
				if err != nil {
					return err
				}
				defer b.Close()

				csv, err := services.NewKPIService(b.Store).ExportCSV(cmd.Context())
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), csv+"\n")
				return err
			},
		},
		&cobra.Command{
			Use:   "backfill-distances",
			Short: "Look up road distances for routes stored without one",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				b, err := open(cmd)
				if err != nil {
					return err
				}
				defer b.Close()

				provider, err := b.DistanceProvider(cfg)
				if err != nil {
					return err
				}
				if provider == nil {
					return fmt.Errorf("backfill-distances needs ORS_API_KEY")
				}

				n, err := services.NewRouteService(b.Store.Routes, nil, provider).BackfillDistances(cmd.Context())
				if err != nil {
					return err
				}
				log.Info("distances backfilled", zap.Int("routes", n))
				return nil
			},
		},
	)
	return root
}

func newSeedCmd(cfg *config.Config, log *zap.Logger, open func(*cobra.Command) (*app.Backend, error)) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load a YAML or JSON seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(file); err != nil {
				return fmt.Errorf("seed file: %w", err)
			}

			b, err := open(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			data, err := services.LoadSeedFile(file)
			if err != nil {
				return err
			}
			res, err := services.Seed(cmd.Context(), b.Store, data, time.Now())
			if err != nil {
				return err
			}

			log.Info("seeding complete",
				zap.String("file", file),
				zap.String("store", cfg.Store),
				zap.Int("products", res.Products),
				zap.Int("vendors", res.Vendors),
				zap.Int("orders", res.Orders),
				zap.Int("routes", res.Routes))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", cfg.SeedPath, "seed file (.yaml, .yml or .json)")
	return cmd
}
