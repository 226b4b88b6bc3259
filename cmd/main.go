package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/http/api"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/mq/queue"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/mq/worker"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/source"
	app "github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/app"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/config"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if cfg.LogFormat != "text" {
		if err := logger.InitWithWriter(os.Stdout, cfg.LogFormat); err != nil {
			os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
			os.Exit(1)
		}
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "boxscore server failed", logger.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run serves the API until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	svc, closer, err := buildService(cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	reloads := queue.NewInMemoryQueue()
	reloader := worker.NewReloadWorker(reloads, svc,
		worker.WithInterval(cfg.ReloadInterval),
		worker.WithLogger(log),
	)
	go reloader.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, api.WithReloadQueue(reloads)),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	_ = reloads.Close()
	if err := reloader.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "reload worker shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// buildService wires the configured source, and the SQLite ledger sink
// when persistence is on, into a Service. The closer releases the database
// and is safe to call when none was opened.
func buildService(cfg *config.Config, log logger.Logger) (*app.Service, io.Closer, error) {
	opts := []app.Option{
		app.WithLogger(log),
		app.WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
	}

	var db *source.DB
	if cfg.Source == config.SourceSQLite || cfg.PersistLedger {
		var err error
		if db, err = source.Open(cfg.SQLitePath); err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", cfg.SQLitePath, err)
		}
	}

	switch cfg.Source {
	case config.SourceSQLite:
		opts = append(opts, app.WithLoader(db))
	default:
		opts = append(opts, app.WithLoader(source.NewJSONFile(cfg.EventsPath)))
	}
	if cfg.PersistLedger {
		opts = append(opts, app.WithLedgerSink(db))
	}

	return app.New(opts...), db, nil
}

func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, opts ...api.ServerOption) http.Handler {
	mux := http.NewServeMux()
	opts = append([]api.ServerOption{api.WithAllowedOrigins(cfg.CORSAllowedOrigins)}, opts...)
	server := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit, opts...)
	server.Register(ctx, mux)
	return server.Handler(mux)
}
