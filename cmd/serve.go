package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikogura/folio/pkg/config"
	"github.com/nikogura/folio/pkg/logging"
	"github.com/nikogura/folio/pkg/server"
	"github.com/nikogura/folio/pkg/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveListen string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the preview and export API over HTTP",
	Long: `Serve the render, preview, export, AI and form session endpoints.

Sessions are kept in memory unless server.redis_addr (FOLIO_REDIS_ADDR)
is set. Metrics are exposed on /metrics.

Example:
  folio serve --listen :8080
  FOLIO_REDIS_ADDR=localhost:6379 folio serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if getVerbose() {
		level = "debug"
	}

	var logger *zap.Logger
	logger, err = logging.New(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store session.Store
	store, err = newSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opts := server.Options{
		Logger: logger,
		Store:  store,
		PDF:    server.PandocPDF(cfg.Pandoc.TemplatePath, cfg.Pandoc.ClassFile, cfg.Pandoc.Engine),
	}

	client := cfg.NewLLMClient()
	if client.Configured() {
		opts.Generator = client
		logger.Info("ai content generation enabled", zap.String("provider", client.Provider()), zap.String("model", client.Model()))
	} else {
		logger.Warn("no ai api key configured; /ai/generate-content will return 503")
	}

	listen := serveListen
	if listen == "" {
		listen = cfg.Server.Listen
	}

	err = server.New(opts).ListenAndServe(ctx, listen)
	if err != nil {
		err = errors.Wrapf(err, "server on %s failed", listen)
		return err
	}

	return err
}

func newSessionStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store session.Store, err error) {
	if cfg.Server.RedisAddr == "" {
		logger.Info("using in-memory session store", zap.Duration("ttl", cfg.SessionTTL()))
		store = session.NewMemoryStore(session.WithMemoryTTL(cfg.SessionTTL()))
		return store, err
	}

	redisStore := session.NewRedisStore(cfg.Server.RedisAddr, cfg.Server.RedisPassword, cfg.Server.RedisDB,
		session.WithTTL(cfg.SessionTTL()))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = redisStore.Ping(pingCtx)
	if err != nil {
		err = errors.Wrapf(err, "failed to reach redis at %s", cfg.Server.RedisAddr)
		return store, err
	}

	logger.Info("using redis session store",
		zap.String("addr", cfg.Server.RedisAddr),
		zap.Duration("ttl", cfg.SessionTTL()))

	store = redisStore
	return store, err
}
