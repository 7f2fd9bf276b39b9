package internal

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"instarecipe/internal/collection"
	"instarecipe/internal/fetch"
	"instarecipe/internal/llm"
	"instarecipe/internal/pipeline"
	"instarecipe/internal/progress"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

type App struct {
	conf        *structures.Config
	logger      providers.Logger
	fileManager *progress.FileManager
	resolver    fetch.Resolver
	processor   llm.Processor
}

// NewApp runs the whole pipeline: restore progress, parse the collection
// export, process every post, persist, shut down. A SIGINT or SIGTERM
// cancels the run context; progress written so far stays on disk and the
// next run resumes from it.
func NewApp(
	conf *structures.Config,
	logger providers.Logger,
	parser *collection.Parser,
	store *progress.Store,
	fileManager *progress.FileManager,
	backups *progress.BackupManager,
	resolver fetch.Resolver,
	processor llm.Processor,
	orchestrator *pipeline.Orchestrator,
) (*App, error) {
	app := &App{
		conf:        conf,
		logger:      logger,
		fileManager: fileManager,
		resolver:    resolver,
		processor:   processor,
	}
	defer app.close()

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	if err := fileManager.LoadFromFile(conf.Progress.FilePath); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "Restored progress for %d posts from %s", store.Len(), conf.Progress.FilePath)

	if err := backups.Rotate(conf.Progress.FilePath); err != nil {
		logger.Warnf(providers.TypeApp, "Progress backup failed: %v", err)
	}

	posts, err := parser.Posts()
	if err != nil {
		return nil, err
	}

	metricsServer := app.startMetricsServer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := orchestrator.Run(ctx, posts); err != nil {
		logger.Warnf(providers.TypeApp, "Run interrupted: %v", err)
	}

	if err := fileManager.SaveToFile(conf.Progress.FilePath); err != nil {
		return nil, err
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warnf(providers.TypeApp, "Metrics server shutdown: %v", err)
		}
	}

	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}

// startMetricsServer exposes /metrics for the duration of the run. Long
// multi-model runs are worth watching; short ones just don't get scraped.
func (a *App) startMetricsServer() *http.Server {
	if !a.conf.Metrics.Enabled || a.conf.Metrics.Listen == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         a.conf.Metrics.Listen,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		a.logger.Infof(providers.TypeApp, "Serving metrics on %s", a.conf.Metrics.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Errorf(providers.TypeApp, "Metrics server error: %v", err)
		}
	}()
	return srv
}

func (a *App) close() {
	a.resolver.Close()
	a.processor.Close()
	a.fileManager.Close()
	a.logger.Close()
}
