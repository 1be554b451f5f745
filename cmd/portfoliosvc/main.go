package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/indraprashad/Adhikari-tech-solution/internal/app"
	"github.com/indraprashad/Adhikari-tech-solution/internal/config"
	"github.com/indraprashad/Adhikari-tech-solution/internal/logger"
)

func newRootCmd() *cobra.Command {
	var configPath string

	load := func() (*config.Config, zerolog.Logger, error) {
		var cfg *config.Config
		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return nil, zerolog.Nop(), err
		}
		return cfg, logger.New(cfg.LogLevel, cfg.LogPretty), nil
	}

	root := &cobra.Command{
		Use:           "portfoliosvc",
		Short:         "Portfolio site and back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg, log)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the tables and seed the default access policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			return app.Migrate(cfg, log)
		},
	})

	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log := logger.New("error", false)
		log.Fatal().Err(err).Msg("portfoliosvc failed")
	}
}
