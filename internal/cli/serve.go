package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/cache"
	"github.com/matzehuels/sightline/pkg/pipeline"
	"github.com/matzehuels/sightline/pkg/server"
	"github.com/matzehuels/sightline/pkg/session"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Configuration is read from SIGHTLINE_* environment variables, optionally
loaded from a .env file:

  SIGHTLINE_ADDR          listen address (default :8080)
  SIGHTLINE_REDIS_ADDR    Redis for the shared cache and sessions
  SIGHTLINE_SESSION_TTL   editing session lifetime (default 2h)
  SIGHTLINE_CACHE_DIR     file cache directory when Redis is not set
  SIGHTLINE_NO_CACHE      disable caching

Without Redis, sessions are kept in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), *cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides SIGHTLINE_ADDR)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config) error {
	var (
		store session.Store
		cch   cache.Cache
	)

	switch {
	case cfg.RedisAddr != "":
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		cch = cache.NewRedisCache(client)
		if cfg.NoCache {
			cch = cache.NewNullCache()
			defer client.Close()
		}
		store = session.NewRedisStore(client, "")
		c.Logger.Info("using redis", "addr", cfg.RedisAddr)
	default:
		store = session.NewMemoryStore()
		var err error
		switch {
		case cfg.NoCache:
			cch = cache.NewNullCache()
		case cfg.CacheDir != "":
			cch, err = cache.NewFileCache(cfg.CacheDir)
		default:
			cch, err = newCache(false)
		}
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
	}

	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	srv := server.New(cfg, runner, store, c.Logger)
	return srv.Run(ctx)
}
