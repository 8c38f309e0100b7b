package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/penman/internal/server"
	"github.com/matzehuels/penman/pkg/auth"
	"github.com/matzehuels/penman/pkg/cache"
	"github.com/matzehuels/penman/pkg/config"
	"github.com/matzehuels/penman/pkg/observability"
	"github.com/matzehuels/penman/pkg/render"
	"github.com/matzehuels/penman/pkg/translate"
	"github.com/matzehuels/penman/pkg/users"
)

// dialTimeout bounds how long serve waits for MongoDB and Redis at startup.
const dialTimeout = 10 * time.Second

// serveOpts holds flag overrides for the serve command.
type serveOpts struct {
	port int
	host string
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the penman HTTP API",
		Long: `Run the penman HTTP API.

Users are stored in MongoDB when mongo.uri is configured and in memory
otherwise. Translations are cached in Redis when redis.addr is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = opts.host
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (overrides config and $PORT)")
	cmd.Flags().StringVar(&opts.host, "host", "", "listen host")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)
	observability.NewLogHooks(logger).Register()
	defer observability.Reset()

	store, err := openUserStore(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dialTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("close user store", "error", err)
		}
	}()
	if cfg.Mongo.URI == "" {
		logger.Warn("mongo.uri not set, users are kept in memory")
	}

	shared, err := openSharedCache(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer shared.Close()

	secret := cfg.Auth.Secret
	if secret == "" {
		if secret, err = auth.RandomSecret(); err != nil {
			return err
		}
		logger.Warn("auth.secret not set, using an ephemeral signing key; tokens will not survive a restart")
	}
	issuer, err := auth.NewIssuer([]byte(secret), cfg.Auth.TokenTTL.Std())
	if err != nil {
		return err
	}
	gateway := auth.NewGateway(store, issuer, auth.Options{
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})

	provider := translate.NewMyMemory(translate.MyMemoryConfig{
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.Provider.Timeout.Std(),
		Email:   cfg.Provider.Email,
	})
	relay := translate.NewRelay(provider, translate.RelayOptions{
		Cache:    shared,
		Keyer:    cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"),
		CacheTTL: cfg.Cache.TTL.Std(),
		Policy:   providerPolicy(cfg.Provider),
		Logger:   logger,
	})

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
		CORSOrigins:     cfg.Server.CORSOrigins,
		MaxUpload:       cfg.Render.MaxUpload,
		Render: render.Options{
			Width:      cfg.Render.Width,
			LineHeight: cfg.Render.LineHeight,
			Margin:     cfg.Render.Margin,
		},
		FontSize: cfg.Render.FontSize,
		FontPath: cfg.Render.FontPath,
	}, relay, gateway, logger)

	logger.Info("Starting penman", "provider", provider.Name())
	return srv.Run(ctx)
}

// openUserStore connects to MongoDB, or returns an in-memory store when no
// URI is configured.
func openUserStore(ctx context.Context, cfg config.MongoConfig) (users.Store, error) {
	if cfg.URI == "" {
		return users.NewMemoryStore(), nil
	}
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	store, err := users.NewMongoStore(dialCtx, users.MongoConfig{
		URI:        cfg.URI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
	})
	if err != nil {
		return nil, fmt.Errorf("connect user store: %w", err)
	}
	return store, nil
}

// openSharedCache connects to Redis, or returns a null cache when no
// address is configured.
func openSharedCache(ctx context.Context, cfg config.RedisConfig) (cache.Cache, error) {
	if cfg.Addr == "" {
		return cache.NewNullCache(), nil
	}
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	rc, err := cache.NewRedisCache(dialCtx, cache.RedisConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect translation cache: %w", err)
	}
	return rc, nil
}
