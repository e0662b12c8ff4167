package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	summary "github.com/nextpdf/ai-service/internal/domain/summary"
	"github.com/nextpdf/ai-service/internal/infra/config"
	"github.com/nextpdf/ai-service/internal/infra/summary/queue"
)

// App encapsulates the HTTP server and worker lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	tasks  queue.HandlerQueue
	svc    *summary.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, tasks queue.HandlerQueue, svc *summary.Service) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With("component", "bootstrap"),
		server: server,
		tasks:  tasks,
		svc:    svc,
	}
}

// Run starts the worker loop and the HTTP server, then blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.tasks.SetHandler(a.svc.ProcessTask)
	a.logger.Info("task worker started")

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		a.stopWorker()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		a.stopWorker()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) stopWorker() {
	if closer, ok := a.tasks.(interface{ Close() }); ok {
		closer.Close()
	}
}
