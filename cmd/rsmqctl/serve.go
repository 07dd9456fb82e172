package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/julesChu12/rsmq/pkg/httpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP server (health, queue introspection, metrics)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		log, err := newLogger(settings)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer log.Sync()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		client, err := newQueueClient(ctx, settings)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = settings.AdminAddr
		}

		srv := httpserver.New(client, "rsmqctl", log)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-quit
			log.Info("shutting down admin server")
			cancel()
		}()

		log.Infow("starting admin server", "addr", addr)
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			return fmt.Errorf("admin server: %w", err)
		}
		log.Info("admin server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "address to bind the admin server; defaults to the configured admin.addr")
	rootCmd.AddCommand(serveCmd)
}
