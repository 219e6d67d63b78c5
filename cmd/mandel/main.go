// Command mandel writes Mandelbrot escape-time data for a viewport as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	mandel "github.com/marben/mandel_data"
	"github.com/marben/mandel_data/internal/config"
	"github.com/marben/mandel_data/internal/logger"
	"github.com/marben/mandel_data/remote"
	"github.com/marben/mandel_data/render"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "mandel %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level := cfg.Logging.Level
	if opts.quiet {
		level = logger.LevelOff
	}
	log := logger.New(stderr, level, cfg.Logging.JSONFormat())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generate(ctx, cfg, stdout, log); err != nil {
		fmt.Fprintf(stderr, "Error: generating Mandelbrot set data: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig layers defaults, the config file, the environment and finally
// the flags that were given explicitly.
func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()

	if err := config.LoadDotEnv(); err != nil {
		return cfg, err
	}
	if opts.configPath != "" {
		if err := cfg.LoadFile(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	opts.apply(&cfg)

	if cfg.Region != "" {
		for _, name := range []string{"center-x", "center-y", "scale"} {
			if opts.set[name] {
				return cfg, fmt.Errorf("--%s conflicts with region %q, which sets center and scale", name, cfg.Region)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func generate(ctx context.Context, cfg config.Config, stdout io.Writer, log *slog.Logger) error {
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	log.Info("Generating Mandelbrot set data...")

	start := time.Now()
	provider, closeProvider, err := newProvider(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeProvider()

	ds, err := provider.Generate(ctx, params)
	if err != nil {
		return err
	}

	if err := writeOutput(&ds, cfg.Output, stdout); err != nil {
		return err
	}

	if cfg.Output.Path != "" {
		log.Info("Successfully wrote data", "path", cfg.Output.Path)
	}
	p := message.NewPrinter(language.English)
	log.Info("Generated points in the Mandelbrot set",
		"points", p.Sprintf("%d", len(ds.Points)),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	log.Info("Metadata", "metadata", ds.Metadata)
	return nil
}

// newProvider returns the remote client when a server URL is configured and
// the local sampler otherwise.
func newProvider(ctx context.Context, cfg config.Config, log *slog.Logger) (mandel.DatasetProvider, func(), error) {
	if cfg.Remote.URL != "" {
		c, err := remote.Dial(ctx, cfg.Remote.URL, log)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { c.Close() }, nil
	}

	nextReport := 0.1
	s := render.NewSampler(
		render.WithWorkers(cfg.Render.Workers),
		render.WithTileSize(cfg.Render.TileSize, cfg.Render.TileSize),
		render.WithLogger(log),
		render.WithProgress(func(done float64) {
			if done >= nextReport {
				log.Debug("progress", "done", fmt.Sprintf("%.0f%%", done*100))
				nextReport += 0.1
			}
		}),
	)
	return s, func() {}, nil
}

func writeOutput(ds *mandel.Dataset, out config.OutputConfig, stdout io.Writer) error {
	if out.Path == "" {
		return mandel.WriteDataset(stdout, ds, !out.Compact)
	}

	return writeFile(out.Path, func(w io.Writer) error {
		return mandel.WriteDataset(w, ds, !out.Compact)
	})
}

// writeFile writes to a temporary file next to path and renames it into
// place. A failed write leaves path untouched.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err = write(f); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return nil
}
