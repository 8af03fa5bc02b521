package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/templui/cuidador/cmd/admin/cmd"
	"github.com/templui/cuidador/internal/config"
	"github.com/templui/cuidador/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{AppName: cfg.AppName, Env: cfg.AppEnv, SentryDSN: cfg.SentryDSN})

	rootCmd := &cobra.Command{
		Use:          "admin",
		Short:        "Maintenance tools for the cuidador database",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd(cfg))
	rootCmd.AddCommand(cmd.ExportCmd(cfg))
	rootCmd.AddCommand(cmd.EldersCmd(cfg))

	err := rootCmd.Execute()
	logger.Flush()
	if err != nil {
		os.Exit(1)
	}
}
