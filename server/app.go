package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/authenticator"
	"github.com/blogem/campus-feedback/config"
	"github.com/blogem/campus-feedback/controllers"
	"github.com/blogem/campus-feedback/live"
	"github.com/blogem/campus-feedback/metrics"
	"github.com/blogem/campus-feedback/middleware"
	"github.com/blogem/campus-feedback/repositories"
	"github.com/blogem/campus-feedback/sentiment"
	"github.com/blogem/campus-feedback/services"
)

const shutdownTimeout = 10 * time.Second

// App is the assembled web application
type App struct {
	Handler  http.Handler
	Services *services.Services

	addr       string
	hub        *live.Hub
	limiter    *middleware.RateLimiter
	closeStore func()
	logger     *zap.Logger
}

// NewApp connects the configured store and classifier and assembles the application
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	classifier, err := NewClassifier(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	repos, closeStore, err := OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	app, err := Build(cfg, repos, classifier, clockwork.NewRealClock(), logger)
	if err != nil {
		closeStore()
		return nil, err
	}
	app.closeStore = closeStore
	return app, nil
}

// Build assembles the application around an opened store and classifier
func Build(cfg *config.Config, repos *repositories.Repositories, classifier sentiment.Classifier, clock clockwork.Clock, logger *zap.Logger) (*App, error) {
	verifier, err := authenticator.NewPasswordVerifier(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin verifier: %w", err)
	}

	registry := metrics.NewRegistry()
	hub := live.NewHub(metrics.NewLiveMetrics(registry), logger)

	srvs := services.NewServices(services.Dependencies{
		Repos:      repos,
		Classifier: classifier,
		Clock:      clock,
		Publisher:  hub,
		Metrics:    metrics.NewFeedbackMetrics(registry),
		Logger:     logger,
	})

	limiter := middleware.NewRateLimiter(cfg.SubmitRatePerMinute, clock)

	router, err := NewRouter(RouterOptions{
		Controllers:       controllers.NewControllers(srvs, verifier, logger),
		Verifier:          verifier,
		Audit:             srvs.Admin,
		LiveHandler:       live.NewHandler(hub, SameOrigin(cfg.AllowedOrigins), logger),
		RateLimiter:       limiter,
		Registry:          registry,
		HTTPMetrics:       metrics.NewHTTPMetrics(registry),
		AllowedOrigins:    cfg.AllowedOrigins,
		Production:        cfg.IsProduction(),
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		Logger:            logger,
	})
	if err != nil {
		hub.Stop()
		limiter.Stop()
		return nil, err
	}

	return &App{
		Handler:    router,
		Services:   srvs,
		addr:       cfg.Addr(),
		hub:        hub,
		limiter:    limiter,
		closeStore: func() {},
		logger:     logger,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.addr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", zap.String("addr", a.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutdown signal received, cleaning up...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Live connections are hijacked and not drained by Shutdown
	a.hub.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// Close releases the hub, the rate limiter and the store
func (a *App) Close() {
	a.hub.Stop()
	a.limiter.Stop()
	a.closeStore()
}
