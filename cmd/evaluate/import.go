package main

import (
	"fmt"
	"log/slog"

	"github.com/FrenchMajesty/classresult/adapters/sqlite"
	"github.com/FrenchMajesty/classresult/internal/logging"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <results>",
		Short: "Append results to the SQLite result store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}

			dbPath, err := resolveDBPath(cmd, cfg)
			if err != nil {
				return err
			}

			results, err := loadResults(ctx, args[0])
			if err != nil {
				return err
			}

			store, err := sqlite.Open(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer store.Close()

			evalCfg := cfg.evaluatorConfig()
			evalCfg.Store = store
			eval, err := newEvaluator(ctx, evalCfg, results)
			if err != nil {
				return err
			}
			if err := eval.Close(ctx); err != nil {
				return err
			}

			logging.New("import").Info("imported results",
				slog.String("db", dbPath),
				slog.Int("imported", len(results)),
				slog.Int("total", eval.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d results (%d stored)\n", len(results), eval.Len())
			return nil
		},
	}

	cmd.Flags().String("db", "", "Path to SQLite database file (overrides CLASSRESULT_DB env var)")

	return cmd
}
