// Command server serves Mandelbrot datasets over HTTP (POST /generate),
// JSON websocket messages (/ws) and irpc over websocket (/irpc). Every
// request is computed locally by render.Sampler.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marben/irpc"
	"golang.org/x/time/rate"

	mandel "github.com/marben/mandel_data"
	"github.com/marben/mandel_data/internal/config"
	"github.com/marben/mandel_data/internal/logger"
	"github.com/marben/mandel_data/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a TOML or YAML configuration file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Init(os.Stderr, cfg.Logging.Level, cfg.Logging.JSONFormat())
	log := slog.With("component", "server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newHandler(ctx, cfg, log),
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newHandler wires the sampler, the routes and the middleware chain. The irpc
// server behind /irpc runs until ctx is done.
func newHandler(ctx context.Context, cfg config.Config, log *slog.Logger) http.Handler {
	gs := &generationServer{
		provider: render.NewSampler(
			render.WithWorkers(cfg.Render.Workers),
			render.WithTileSize(cfg.Render.TileSize, cfg.Render.TileSize),
			render.WithLogger(log),
		),
		maxPoints: cfg.Server.MaxPoints,
		origins:   cfg.Server.AllowedOrigins,
		msgRate:   rate.Limit(cfg.Server.RateLimitRPS),
		msgBurst:  cfg.Server.RateLimitBurst,
		logger:    log,
	}

	irpcListener := newWSListener(ctx, cfg.Server.Addr+"/irpc")
	serveIrpc(ctx, gs, irpcListener, log)

	limiter := newRateLimiter(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, log)
	cors := newCORS(cfg.Server.AllowedOrigins, log)

	return cors.Handler(limiter.Middleware(gs.routes(irpcListener)))
}

// serveIrpc serves provider to every connection accepted on l until ctx is
// done.
func serveIrpc(ctx context.Context, provider mandel.DatasetProvider, l *wsListener, log *slog.Logger) {
	irpcServer := irpc.NewServer(
		irpc.WithOnConnect(func(ep *irpc.Endpoint) {
			log.Info("got irpc connection", "remote", ep.RemoteAddr())
		}),
		irpc.WithServices(mandel.NewDatasetProviderIrpcService(provider)),
	)

	go func() {
		// l shares ctx, so it may report net.ErrClosed before Close runs.
		err := irpcServer.Serve(l)
		if !errors.Is(err, irpc.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
			log.Error("irpc server stopped", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		if err := irpcServer.Close(); err != nil {
			log.Warn("closing irpc server", "err", err)
		}
	}()
}
