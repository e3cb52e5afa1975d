package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/config"
)

func newInitCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the data directory and a default teller.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			cfg := config.Default(dataDir)
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("creating data dir: %w", err)
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s (data dir: %s)\n", path, cfg.DataDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "directory for the CSV tables")
	return cmd
}
