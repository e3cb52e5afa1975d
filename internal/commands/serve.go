package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/server"
)

func newServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("listen") && cfg.Server.Listen != "" {
				listen = cfg.Server.Listen
			}

			cust, accts, led := stores(cfg)
			srv := server.New(cfg.DataDir, cust, accts, led, engine(cfg))

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s (data dir: %s)\n", listen, cfg.DataDir)
			return srv.Router().Run(listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "listen address")
	return cmd
}
