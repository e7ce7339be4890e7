package main

import (
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/container"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Init()

		if err := config.Connect(cmd.Context(), config.Cfg.DatabaseDSN); err != nil {
			return err
		}
		if err := config.Migrate(config.DB, container.Models()...); err != nil {
			return err
		}

		config.Log.WithField("tables", len(container.Models())).Info("Migration finished")
		return nil
	},
}
