package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julesChu12/rsmq"
	"github.com/julesChu12/rsmq/pkg/cache"
	"github.com/julesChu12/rsmq/pkg/config"
	"github.com/julesChu12/rsmq/pkg/logger"
)

// loadSettings builds the process's Settings from --env-file, rsmq.env (if
// present) and RSMQ_-prefixed environment variables, in that precedence.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	envFile, _ := cmd.Flags().GetString("env-file")

	loader := config.New().WithEnvPrefix("RSMQ").WithDotenv("rsmq.env")
	if envFile != "" {
		loader = loader.WithDotenv(envFile)
	}

	settings, err := config.LoadSettings(loader)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func newLogger(s *config.Settings) (*logger.Logger, error) {
	return logger.New(logger.Config{Level: s.LogLevel, Format: s.LogFormat})
}

// newQueueClient opens a pooled rsmq client for the CLI's string-payload
// use, built from the resolved Settings.
func newQueueClient(ctx context.Context, s *config.Settings) (*rsmq.Client[string], error) {
	opts := rsmq.DefaultOptions()
	opts.Host = s.RedisHost
	opts.Port = s.RedisPort
	opts.DB = s.RedisDB
	opts.Username = s.RedisUser
	opts.Password = s.RedisPass
	opts.NS = s.Namespace
	opts.Realtime = s.Realtime

	return rsmq.NewPooledClient(ctx, opts, rsmq.StringCodec{})
}

// newLockClient opens the small pooled cache.Client used only to acquire
// the maintenance lock around destructive commands.
func newLockClient(s *config.Settings) *cache.Client {
	cfg := cache.DefaultConfig()
	cfg.Addr = fmt.Sprintf("%s:%d", s.RedisHost, s.RedisPort)
	cfg.Password = s.RedisPass
	cfg.DB = s.RedisDB
	return cache.New(cfg)
}

func lockKeyForQueue(s *config.Settings, qname string) string {
	return fmt.Sprintf("%s:rsmqctl-lock:%s", s.Namespace, qname)
}
