package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/accounts"
	"github.com/teller-dev/teller/internal/analytics"
	"github.com/teller-dev/teller/internal/buildinfo"
	"github.com/teller-dev/teller/internal/config"
	"github.com/teller-dev/teller/internal/customers"
	"github.com/teller-dev/teller/internal/ledger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "teller",
		Short:   "Flat-file banking record store and analytics",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", config.FileName, "path to teller.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newDormantCommand())
	rootCmd.AddCommand(newDormantLargeCommand())
	rootCmd.AddCommand(newSalaryCommand())
	rootCmd.AddCommand(newHighBalanceCommand())
	rootCmd.AddCommand(newWaiverCommand())
	rootCmd.AddCommand(newSummaryCommand())

	return rootCmd
}

// loadConfig reads the config named by the --config flag. A .env file
// and the TELLER_DATA_DIR variable can override the data directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg = config.Default("data")
		} else {
			return nil, err
		}
	}

	_ = godotenv.Load()
	if dir := os.Getenv("TELLER_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// stores opens the three entity services over the configured data dir.
func stores(cfg *config.Config) (*customers.Service, *accounts.Service, *ledger.Service) {
	return customers.NewService(cfg.DataDir),
		accounts.NewService(cfg.DataDir),
		ledger.NewService(cfg.DataDir)
}

// engine builds the analytics engine with the configured keyword set.
func engine(cfg *config.Config) *analytics.Engine {
	_, accts, led := stores(cfg)
	return analytics.NewEngine(accts, led, analytics.WithKeywords(cfg.Keywords()))
}
