package main

import (
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/academy-lambda/internal/container"
	"github.com/saulo-duarte/academy-lambda/internal/jobs"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run every reconciliation sweep once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := container.New(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		return jobs.RunAll(cmd.Context(), c.Jobs()...)
	},
}
