package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chartfit/pkg/cache"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string // listen address
	redisAddr     string // shared Redis cache; empty uses the local cache
	redisPassword string
	redisDB       int
	namespace     string // cache key namespace
	watch         bool   // hot-reload the --profile file
	maxBodyBytes  int64  // request body limit
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:         server.DefaultAddr,
		maxBodyBytes: server.DefaultMaxBodyBytes,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sizing and chart API over HTTP",
		Example: `  chartfit serve --addr :9000
  chartfit serve --profile tuning.toml --watch --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "prefix for every cache key")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the --profile file when it changes")
	cmd.Flags().Int64Var(&opts.maxBodyBytes, "max-body", opts.maxBodyBytes, "maximum request body size in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	if opts.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: opts.redisPassword,
			DB:       opts.redisDB,
			Prefix:   appName + ":",
		})
		if err != nil {
			return err
		}
		runner.Cache.Close()
		runner.Cache = rc
		logger.Info("using redis cache", "addr", opts.redisAddr)
	}
	if opts.namespace != "" {
		runner.Keyer = cache.NewScopedKeyer(runner.Keyer, opts.namespace+":")
	}

	srv := server.New(runner, logger, server.Config{
		Addr:         opts.addr,
		MaxBodyBytes: opts.maxBodyBytes,
	})

	g, ctx := errgroup.WithContext(ctx)
	if opts.watch {
		if c.profilePath == "" {
			printWarning("--watch has no effect without --profile")
		} else {
			g.Go(func() error {
				return profile.Watch(ctx, c.profilePath, runner.Profiles, logger)
			})
		}
	}
	g.Go(func() error {
		logger.Info("listening", "addr", opts.addr)
		return srv.ListenAndServe(ctx)
	})
	return g.Wait()
}
