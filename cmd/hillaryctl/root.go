package main

import (
	"github.com/spf13/cobra"

	"github.com/foxred/hillary/pkg/config"
	"github.com/foxred/hillary/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "hillaryctl",
	Short:         "Administración de Hillary",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(logger.Config{
			Env:     cfg.App.Env,
			Level:   cfg.App.LogLevel,
			Service: "hillaryctl",
			Output:  cmd.ErrOrStderr(),
		})
		return nil
	},
}
