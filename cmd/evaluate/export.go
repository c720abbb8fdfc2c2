package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/FrenchMajesty/classresult/internal/logging"
	"github.com/FrenchMajesty/classresult/report"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <results>",
		Short: "Export results and metrics to CSV and/or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			csvPath, _ := cmd.Flags().GetString("csv")
			xlsxPath, _ := cmd.Flags().GetString("xlsx")
			if csvPath == "" && xlsxPath == "" {
				return fmt.Errorf("nothing to export: pass --csv and/or --xlsx")
			}

			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}

			results, err := loadResults(ctx, args[0])
			if err != nil {
				return err
			}

			logger := logging.New("export")

			if csvPath != "" {
				file, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", csvPath, err)
				}
				if err := report.WriteCSV(file, results); err != nil {
					file.Close()
					return err
				}
				if err := file.Close(); err != nil {
					return err
				}
				logger.Info("wrote csv", slog.String("path", csvPath), slog.Int("results", len(results)))
			}

			if xlsxPath != "" {
				eval, err := newEvaluator(ctx, cfg.evaluatorConfig(), results)
				if err != nil {
					return err
				}
				if err := report.WriteXLSX(xlsxPath, eval.Results(), eval.Metrics()); err != nil {
					return err
				}
				logger.Info("wrote workbook", slog.String("path", xlsxPath), slog.Int("results", len(results)))
			}

			return nil
		},
	}

	cmd.Flags().String("csv", "", "Write results to this CSV file")
	cmd.Flags().String("xlsx", "", "Write results and metrics to this XLSX workbook")

	return cmd
}
