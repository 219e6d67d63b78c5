// Package config assembles generation and server settings from built-in
// defaults, an optional TOML or YAML file and MANDEL_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	mandel "github.com/marben/mandel_data"
)

type Config struct {
	// Region names a landmark that overrides the center and scale of
	// Generation, see mandel.LookupRegion.
	Region     string                      `toml:"region" yaml:"region"`
	Generation mandel.GenerationParameters `toml:"generation" yaml:"generation"`
	Render     RenderConfig                `toml:"render" yaml:"render"`
	Output     OutputConfig                `toml:"output" yaml:"output"`
	Server     ServerConfig                `toml:"server" yaml:"server"`
	Remote     RemoteConfig                `toml:"remote" yaml:"remote"`
	Logging    LoggingConfig               `toml:"logging" yaml:"logging"`
}

type RenderConfig struct {
	// Workers < 1 means one per CPU.
	Workers  int `toml:"workers" yaml:"workers"`
	TileSize int `toml:"tile_size" yaml:"tile_size"`
}

type OutputConfig struct {
	Path    string `toml:"path" yaml:"path"`
	Compact bool   `toml:"compact" yaml:"compact"`
}

type ServerConfig struct {
	Addr                     string   `toml:"addr" yaml:"addr"`
	AllowedOrigins           []string `toml:"allowed_origins" yaml:"allowed_origins"`
	MaxPoints                int      `toml:"max_points" yaml:"max_points"`
	RateLimitRPS             float64  `toml:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst           int      `toml:"rate_limit_burst" yaml:"rate_limit_burst"`
	ReadHeaderTimeoutSeconds int      `toml:"read_header_timeout_seconds" yaml:"read_header_timeout_seconds"`
}

// RemoteConfig points the mandel command at the /irpc endpoint of a
// generation server, e.g. ws://localhost:8080/irpc. An empty URL generates
// locally.
type RemoteConfig struct {
	URL string `toml:"url" yaml:"url"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// JSONFormat reports whether log records should be JSON.
func (l LoggingConfig) JSONFormat() bool {
	return strings.EqualFold(l.Format, "json")
}

func Default() Config {
	return Config{
		Generation: mandel.DefaultParameters,
		Render: RenderConfig{
			TileSize: 64,
		},
		Server: ServerConfig{
			Addr:                     ":8080",
			AllowedOrigins:           []string{"*"},
			MaxPoints:                4_000_000,
			RateLimitRPS:             2,
			RateLimitBurst:           4,
			ReadHeaderTimeoutSeconds: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFile overlays the config file at path onto c. Files ending in .yaml or
// .yml are YAML, anything else is TOML. Keys absent from the file keep their
// current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves c untouched.
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	return nil
}

// LoadDotEnv copies variables from the given .env files (default ".env")
// into the process environment. Variables already set win, and missing files
// are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays MANDEL_* variables onto c. lookup is usually
// os.LookupEnv. A malformed value is an error naming the variable.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	e := envReader{lookup: lookup}

	e.setString("MANDEL_REGION", &c.Region)
	e.setFloat("MANDEL_CENTER_X", &c.Generation.CenterX)
	e.setFloat("MANDEL_CENTER_Y", &c.Generation.CenterY)
	e.setInt("MANDEL_WIDTH", &c.Generation.Width)
	e.setInt("MANDEL_HEIGHT", &c.Generation.Height)
	e.setFloat("MANDEL_SCALE", &c.Generation.Scale)
	e.setInt("MANDEL_MAX_ITERATIONS", &c.Generation.MaxIterations)
	e.setFloat("MANDEL_BOUND", &c.Generation.Bound)
	e.setInt("MANDEL_POWER", &c.Generation.Power)

	e.setInt("MANDEL_WORKERS", &c.Render.Workers)
	e.setInt("MANDEL_TILE_SIZE", &c.Render.TileSize)

	e.setString("MANDEL_LOG_LEVEL", &c.Logging.Level)
	e.setString("MANDEL_LOG_FORMAT", &c.Logging.Format)

	e.setString("MANDEL_SERVER_ADDR", &c.Server.Addr)
	e.setList("MANDEL_SERVER_ORIGINS", &c.Server.AllowedOrigins)
	e.setInt("MANDEL_MAX_POINTS", &c.Server.MaxPoints)
	e.setFloat("MANDEL_RATE_LIMIT_RPS", &c.Server.RateLimitRPS)
	e.setInt("MANDEL_RATE_LIMIT_BURST", &c.Server.RateLimitBurst)

	e.setString("MANDEL_REMOTE_URL", &c.Remote.URL)

	return errors.Join(e.errs...)
}

// Params returns the generation parameters with the region, if any, applied.
func (c *Config) Params() (mandel.GenerationParameters, error) {
	if c.Region == "" {
		return c.Generation, nil
	}
	r, err := mandel.LookupRegion(c.Region)
	if err != nil {
		return mandel.GenerationParameters{}, err
	}
	return r.Fit(c.Generation)
}

// Validate checks the generation parameters and the server limits.
func (c *Config) Validate() error {
	p, err := c.Params()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if c.Render.TileSize <= 0 {
		return fmt.Errorf("render.tile_size must be positive, got %d", c.Render.TileSize)
	}
	if c.Server.MaxPoints <= 0 {
		return fmt.Errorf("server.max_points must be positive, got %d", c.Server.MaxPoints)
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("server rate limit must not be negative")
	}
	if c.Remote.URL != "" {
		u, err := url.Parse(c.Remote.URL)
		if err != nil {
			return fmt.Errorf("remote.url: %w", err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("remote.url: scheme must be ws or wss, got %q", u.Scheme)
		}
	}
	return nil
}

type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (e *envReader) setString(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) setInt(key string, dst *int) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func (e *envReader) setFloat(key string, dst *float64) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = f
}

func (e *envReader) setList(key string, dst *[]string) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
