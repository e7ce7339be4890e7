package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/container"
	"github.com/saulo-duarte/academy-lambda/internal/jobs"
	"github.com/saulo-duarte/academy-lambda/internal/router"
)

const shutdownTimeout = 10 * time.Second

var noScheduler bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reconciliation scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := container.New(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		scheduler := jobs.NewScheduler()
		if !noScheduler {
			for _, job := range c.Jobs() {
				if err := scheduler.Register(config.Cfg.SweepSchedule, job); err != nil {
					return err
				}
			}
			scheduler.Start()
		}

		server := &http.Server{
			Addr:              ":" + config.Cfg.Port,
			Handler:           router.NewFromContainer(c),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErr := make(chan error, 1)
		go func() {
			config.Log.WithField("addr", server.Addr).Info("Serving the API")
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		select {
		case err := <-serverErr:
			if err != nil {
				config.Log.WithError(err).Error("Server shut down unexpectedly")
				return err
			}
		case <-ctx.Done():
		}

		config.Log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := server.Shutdown(shutdownCtx); err != nil {
				config.Log.WithError(err).Warn("Server did not shut down gracefully")
			}
		}()
		go func() {
			defer wg.Done()
			if err := scheduler.Stop(shutdownCtx); err != nil {
				config.Log.WithError(err).Warn("Background jobs did not finish by the deadline")
			}
		}()
		wg.Wait()
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "do not run reconciliation sweeps in this process")
}
