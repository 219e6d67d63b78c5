// Package render computes escape-time datasets for Mandelbrot viewports.
package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"

	mandel "github.com/marben/mandel_data"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTileW = 64
	defaultTileH = 64
)

// Sampler evaluates every pixel center of a viewport. Work is split into
// tiles spread over a pool of workers; each point is written into its own
// slot, so the result does not depend on the number of workers.
type Sampler struct {
	workers      int
	tileW, tileH int
	onProgress   func(done float64)
	logger       *slog.Logger
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithWorkers sets the number of goroutines. n < 1 means GOMAXPROCS.
// WithWorkers(1) renders the tiles one after another on a single goroutine.
func WithWorkers(n int) Option {
	return func(s *Sampler) {
		s.workers = n
	}
}

// WithTileSize sets the tile dimensions in pixels.
func WithTileSize(w, h int) Option {
	return func(s *Sampler) {
		if w > 0 && h > 0 {
			s.tileW, s.tileH = w, h
		}
	}
}

// WithProgress registers a callback receiving the finished fraction of the
// grid after every tile. Calls are serialized.
func WithProgress(fn func(done float64)) Option {
	return func(s *Sampler) {
		s.onProgress = fn
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) {
		s.logger = l
	}
}

func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{
		tileW: defaultTileW,
		tileH: defaultTileH,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "sampler")
	return s
}

var _ mandel.DatasetProvider = (*Sampler)(nil)

// Generate samples the viewport described by p with a new Sampler.
func Generate(ctx context.Context, p mandel.GenerationParameters, opts ...Option) (mandel.Dataset, error) {
	return NewSampler(opts...).Generate(ctx, p)
}

// Generate validates p and evaluates all p.Width*p.Height pixel centers.
// Points are ordered top row first, each row from min X to max X.
// Either the full dataset or an error is returned, never both.
func (s *Sampler) Generate(ctx context.Context, p mandel.GenerationParameters) (mandel.Dataset, error) {
	if err := p.Validate(); err != nil {
		return mandel.Dataset{}, err
	}
	if err := ctx.Err(); err != nil {
		return mandel.Dataset{}, fmt.Errorf("generate: %w", err)
	}

	start := time.Now()
	geom := p.Geometry()
	points := make([]mandel.SamplePoint, p.Points())
	ts := newTileScheduler(p.Width, p.Height, s.tileW, s.tileH, s.onProgress)
	workers := min(s.workers, len(ts.tiles))

	s.logger.Debug("generation started",
		"width", p.Width,
		"height", p.Height,
		"tiles", len(ts.tiles),
		"workers", workers,
	)

	g, ctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				tile, found := ts.popTile()
				if !found {
					return nil
				}
				renderTile(points, geom, p, tile)
				ts.tileFinished(tile)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return mandel.Dataset{}, fmt.Errorf("generate: %w", err)
	}

	s.logger.Debug("generation finished",
		"points", len(points),
		"elapsed", time.Since(start),
	)

	return mandel.Dataset{
		Metadata: mandel.NewMetadata(p),
		Points:   points,
	}, nil
}

// renderTile fills the slots of points covered by tile.
func renderTile(points []mandel.SamplePoint, geom mandel.Geometry, p mandel.GenerationParameters, tile image.Rectangle) {
	for row := tile.Min.Y; row < tile.Max.Y; row++ {
		y := geom.Y(row)
		base := row * p.Width

		for col := tile.Min.X; col < tile.Max.X; col++ {
			x := geom.X(col)
			points[base+col] = mandel.SamplePoint{
				X:          x,
				Y:          y,
				Iterations: EscapeTime(x, y, p.MaxIterations, p.Bound, p.Power),
			}
		}
	}
}
