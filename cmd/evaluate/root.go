package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/FrenchMajesty/classresult/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCmd builds the evaluate command tree
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evaluate",
		Short:         "Score and export classification results",
		Long:          "evaluate reads classification trial results (JSON or CSV), scores them and exports reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine; a malformed one is not.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			levelName, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			level, err := logging.ParseLevel(levelName)
			if err != nil {
				return err
			}
			logging.Init(level, format, os.Stderr)
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "Path to YAML evaluation config")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "Log format (text or json)")

	root.AddCommand(newSummaryCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newIndexCmd())

	return root
}
