// Package server provides the HTTP host lifecycle for the watch face.
// server.Run handles signals, config loading, observability init, health
// checks, the face routes and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aelexs/watchface/internal/config"
	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/observability"
)

// Params configures the lifecycle runner.
type Params struct {
	// Name identifies the service in logs, traces and /healthz.
	Name string

	// Config is used as-is when set; otherwise Run loads it with
	// ConfigOptions.
	Config        *config.Config
	ConfigOptions []config.Option

	// Clock is read at every mount and render. Nil means the system clock.
	Clock domain.Clock
}

// Run executes the full service lifecycle: signal handling, config loading,
// observability initialization, HTTP server with health checks and face
// routes, and graceful shutdown. If ln is non-nil, it is used instead of
// creating a new listener from config (enables port-0 testing).
func Run(ctx context.Context, p Params, ln net.Listener) error {
	// Signal-based cancellation: ctx.Done() closes on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if p.Name == "" {
		p.Name = domain.ServiceName
	}

	cfg := p.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(ctx, p.ConfigOptions...); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// Initialize structured logging with secret redaction
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: p.Name,
		Environment: cfg.Environment,
	})

	// --- Startup order: tracer -> metrics -> HTTP server ---

	res := observability.NewResource(observability.ResourceConfig{
		ServiceName:    cfg.OTEL.ServiceName,
		ServiceVersion: domain.ServiceVersion,
		Environment:    cfg.Environment,
		Preset:         cfg.Face.Preset,
		Motion:         cfg.Face.Motion,
	})
	tracerProvider, err := observability.InitTracer(ctx, observability.TracerConfig{
		Resource:     res,
		OTLPEndpoint: cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	metricsProvider, err := observability.InitMetrics(ctx, observability.MetricsConfig{
		Resource:     res,
		OTLPEndpoint: cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	widgetMetrics, err := observability.NewWidgetMetrics(metricsProvider.Meter("watchface/widget"))
	if err != nil {
		return fmt.Errorf("initialize widget metrics: %w", err)
	}

	// Health check shutdown coordination via atomic flag.
	var shuttingDown atomic.Bool

	handler := NewHandler(HandlerParams{
		Name:         p.Name,
		Server:       cfg.Server,
		Face:         cfg.Face,
		Clock:        p.Clock,
		Logger:       logger,
		Metrics:      widgetMetrics,
		Tracer:       tracerProvider.Tracer("watchface/server"),
		ShuttingDown: &shuttingDown,
	})

	// Bind listener (use injected listener or create from config).
	if ln == nil {
		ln, err = (&net.ListenConfig{}).Listen(ctx, "tcp", fmt.Sprintf(":%d", cfg.Server.HTTPPort))
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	// Streams outlive Shutdown once hijacked; cancelling their base
	// context is what ends them.
	streamCtx, cancelStreams := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelStreams()

	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  domain.HTTPReadTimeout,
		WriteTimeout: domain.HTTPWriteTimeout,
		IdleTimeout:  domain.HTTPIdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return streamCtx },
	}

	// --- Structured concurrency via errgroup ---
	g, ctx := errgroup.WithContext(ctx)

	// Goroutine 1: Serve HTTP
	g.Go(func() error {
		logger.Info("starting HTTP server",
			slog.String("addr", ln.Addr().String()),
			slog.String("environment", cfg.Environment),
			slog.String("preset", cfg.Face.Preset),
		)
		if serveErr := server.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	// Goroutine 2: Shutdown trigger: waits for context cancellation, then drains.
	// Shutdown order is explicit reverse of startup: streams -> HTTP server -> metrics -> tracer.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("received shutdown signal, starting graceful shutdown")

		// 1. Mark shutting down: health checks return 503
		shuttingDown.Store(true)

		// 2. Drain delay: let load balancer propagate endpoint removal
		time.Sleep(domain.ShutdownDrainDelay)

		// 3. Unmount every streaming widget
		cancelStreams()

		// 4. Drain HTTP server, then wait for hijacked streams
		httpCtx, httpCancel := context.WithTimeout(context.Background(), domain.ShutdownHTTPTimeout)
		defer httpCancel()
		if shutdownErr := server.Shutdown(httpCtx); shutdownErr != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", shutdownErr.Error()))
		}
		handler.Wait()

		// 5. Flush OTEL (reverse: metrics first, then tracer)
		otelCtx, otelCancel := context.WithTimeout(context.Background(), domain.ShutdownOTELTimeout)
		defer otelCancel()
		if shutdownErr := metricsProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown metrics", slog.String("error", shutdownErr.Error()))
		}
		if shutdownErr := tracerProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", shutdownErr.Error()))
		}

		logger.Info("shutdown complete")
		return nil
	})

	return g.Wait()
}
