package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	mandel "github.com/marben/mandel_data"
	"github.com/marben/mandel_data/internal/config"
)

type options struct {
	configPath  string
	quiet       bool
	showVersion bool

	params   mandel.GenerationParameters
	region   string
	output   string
	compact  bool
	workers  int
	remote   string
	logLevel string

	// set holds the long names of flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	d := mandel.DefaultParameters

	// short flag name -> long name
	aliases := make(map[string]string)

	fs := flag.NewFlagSet("mandel", flag.ContinueOnError)
	fs.SetOutput(stderr)

	float := func(p *float64, long, short string, value float64, usage string) {
		fs.Float64Var(p, long, value, usage)
		if short != "" {
			fs.Float64Var(p, short, value, usage+" (shorthand)")
			aliases[short] = long
		}
	}
	integer := func(p *int, long, short string, value int, usage string) {
		fs.IntVar(p, long, value, usage)
		if short != "" {
			fs.IntVar(p, short, value, usage+" (shorthand)")
			aliases[short] = long
		}
	}
	str := func(p *string, long, short, value, usage string) {
		fs.StringVar(p, long, value, usage)
		if short != "" {
			fs.StringVar(p, short, value, usage+" (shorthand)")
			aliases[short] = long
		}
	}
	boolean := func(p *bool, long, short string, usage string) {
		fs.BoolVar(p, long, false, usage)
		if short != "" {
			fs.BoolVar(p, short, false, usage+" (shorthand)")
			aliases[short] = long
		}
	}

	float(&o.params.CenterX, "center-x", "x", d.CenterX, "x-coordinate of the center of the view")
	float(&o.params.CenterY, "center-y", "y", d.CenterY, "y-coordinate of the center of the view")
	integer(&o.params.Width, "width", "w", d.Width, "width in pixels of the result")
	integer(&o.params.Height, "height", "h", d.Height, "height in pixels of the result")
	float(&o.params.Scale, "scale", "s", d.Scale, "scale factor (size of a pixel)")
	integer(&o.params.MaxIterations, "max-iterations", "n", d.MaxIterations, "maximum number of iterations to perform at each pixel")
	float(&o.params.Bound, "bound", "b", d.Bound, "divergence cutoff; iterations stop once abs(z) >= bound")
	integer(&o.params.Power, "power", "p", d.Power, "exponent used in the mandelbrot equation")
	str(&o.output, "output", "o", "", "output file path (defaults to stdout)")
	boolean(&o.quiet, "quiet", "q", "suppress informational messages")

	str(&o.region, "region", "", "", "named landmark overriding center and scale: "+strings.Join(mandel.RegionNames(), ", "))
	str(&o.configPath, "config", "c", "", "path to a TOML or YAML configuration file")
	integer(&o.workers, "workers", "", 0, "number of worker goroutines (0 = one per CPU)")
	boolean(&o.compact, "compact", "", "write JSON without indentation")
	str(&o.remote, "remote", "", "", "generate on a mandel server instead, e.g. ws://localhost:8080/irpc")
	str(&o.logLevel, "log-level", "", "", "log level: debug, info, warn, error")
	boolean(&o.showVersion, "version", "", "show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mandel [options]\n\n")
		fmt.Fprintf(stderr, "Generate data for visualizing the Mandelbrot set.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		o.set[name] = true
	})
	return o, nil
}

// apply copies explicitly given flags over cfg.
func (o options) apply(cfg *config.Config) {
	setters := map[string]func(){
		"center-x":       func() { cfg.Generation.CenterX = o.params.CenterX },
		"center-y":       func() { cfg.Generation.CenterY = o.params.CenterY },
		"width":          func() { cfg.Generation.Width = o.params.Width },
		"height":         func() { cfg.Generation.Height = o.params.Height },
		"scale":          func() { cfg.Generation.Scale = o.params.Scale },
		"max-iterations": func() { cfg.Generation.MaxIterations = o.params.MaxIterations },
		"bound":          func() { cfg.Generation.Bound = o.params.Bound },
		"power":          func() { cfg.Generation.Power = o.params.Power },
		"region":         func() { cfg.Region = o.region },
		"output":         func() { cfg.Output.Path = o.output },
		"compact":        func() { cfg.Output.Compact = o.compact },
		"workers":        func() { cfg.Render.Workers = o.workers },
		"remote":         func() { cfg.Remote.URL = o.remote },
		"log-level":      func() { cfg.Logging.Level = o.logLevel },
	}
	for name, set := range setters {
		if o.set[name] {
			set()
		}
	}
}
