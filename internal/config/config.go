// Package config reads the gridwalk configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/time/rate"

	"github.com/KoT9R/UI-lab/compact"
	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/logging"
)

// Config is the top-level gridwalk configuration.
type Config struct {
	Tolerance   float64 `toml:"tolerance"`
	MaxParallel int     `toml:"max-parallel"`
	LogFormat   string  `toml:"log-format"`
	LogLevel    string  `toml:"log-level"`

	// EmitLimiter paces the points emitted across all walks.
	EmitLimiter Limiter `toml:"emit-limiter"`

	Walks []Walk `toml:"walk"`
}

// Walk describes one grid walk over a compact.
type Walk struct {
	Name string    `toml:"name"`
	Low  []float64 `toml:"low"`
	High []float64 `toml:"high"`

	// Step defaults to 1 on every axis.
	Step []float64 `toml:"step"`

	// Direction is a permutation of axis indices; the axis holding 0 varies
	// fastest. Empty keeps the natural order.
	Direction []float64 `toml:"direction"`

	Reverse bool `toml:"reverse"`

	// Limit caps the number of emitted points. 0 walks until exhausted.
	Limit int `toml:"limit"`
}

// Limiter allows N events every Every. A zero Every disables the limit.
type Limiter struct {
	Every duration `toml:"every"`
	N     int      `toml:"n"`
}

// Limiter builds the rate.Limiter described by l.
func (l *Limiter) Limiter() *rate.Limiter {
	if l.Every.Duration <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	return Config{
		Tolerance:   compact.DefaultTolerance,
		MaxParallel: 4,
		LogFormat:   "text",
		LogLevel:    "info",
		EmitLimiter: Limiter{N: 1},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	c := Default()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, err
	}
	return finish(c, meta)
}

// Decode parses and validates a configuration held in a string.
func Decode(data string) (Config, error) {
	c := Default()
	meta, err := toml.Decode(data, &c)
	if err != nil {
		return Config{}, err
	}
	return finish(c, meta)
}

func finish(c Config, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err errUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

func (e errUnknownConfig) Unwrap() error {
	return errs.ErrWrongArgument
}

// Validate checks the values that do not depend on geometry. Corner order
// and direction permutations are checked when the walk is built.
func (c *Config) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format+": %w", append(args, errs.ErrWrongArgument)...))
	}

	if c.Tolerance <= 0 {
		add("tolerance %v must be positive", c.Tolerance)
	}
	if c.MaxParallel < 1 {
		add("max-parallel %d must be at least 1", c.MaxParallel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		add("log-format %q must be text or json", c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		add("log-level %q", c.LogLevel)
	}
	if c.EmitLimiter.Every.Duration < 0 {
		add("emit-limiter.every %v is negative", c.EmitLimiter.Every.Duration)
	}
	if c.EmitLimiter.Every.Duration > 0 && c.EmitLimiter.N < 1 {
		add("emit-limiter.n %d must be at least 1", c.EmitLimiter.N)
	}

	if len(c.Walks) == 0 {
		add("no walk configured")
	}
	names := make(map[string]bool, len(c.Walks))
	for i, w := range c.Walks {
		if w.Name == "" {
			add("walk %d has no name", i)
		} else if names[w.Name] {
			add("walk %q is defined twice", w.Name)
		}
		names[w.Name] = true

		dim := len(w.Low)
		switch {
		case dim == 0:
			add("walk %q has no low corner", w.Name)
		case len(w.High) != dim:
			add("walk %q: high has %d coordinates, low has %d", w.Name, len(w.High), dim)
		}
		if len(w.Step) != 0 && len(w.Step) != dim {
			add("walk %q: step has %d coordinates, low has %d", w.Name, len(w.Step), dim)
		}
		if len(w.Direction) != 0 && len(w.Direction) != dim {
			add("walk %q: direction has %d coordinates, low has %d", w.Name, len(w.Direction), dim)
		}
		if w.Limit < 0 {
			add("walk %q: limit %d is negative", w.Name, w.Limit)
		}
	}

	return errors.Join(problems...)
}

// Logger builds the logger selected by log-format and log-level, writing to
// w or stderr when w is nil. debug forces the debug level.
func (c *Config) Logger(w io.Writer, debug bool) *logging.Logger {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	if c.LogFormat == "json" {
		return logging.NewJSON(w, level)
	}
	return logging.NewText(w, level)
}
