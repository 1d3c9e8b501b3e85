package bench

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textbench/internal/engine"
	"github.com/dshills/textbench/internal/trace"
)

// Config is the full run plan: which traces, which engines, how many
// trials.
type Config struct {
	Corpus  trace.Registry  `toml:"corpus"`
	Run     RunConfig       `toml:"run"`
	Engines EngineSelection `toml:"engines"`
}

// EngineSelection names the engines to measure in each direction. The
// downstream list is the explicit composition point for update-capture
// capability; naming an upstream-only engine here fails validation.
type EngineSelection struct {
	Upstream   []string `toml:"upstream"`
	Downstream []string `toml:"downstream"`
}

// DefaultConfig returns the full-matrix run plan over the standard corpus.
func DefaultConfig() *Config {
	return &Config{
		Corpus: *trace.DefaultRegistry(),
		Run:    DefaultRunConfig(),
		Engines: EngineSelection{
			Upstream:   engine.Names(),
			Downstream: engine.DownstreamNames(),
		},
	}
}

// LoadConfig reads a TOML run plan and overlays it on the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(path, data)
}

// ParseConfig strictly decodes a TOML run plan. Unknown keys and type
// mismatches are errors carrying the document position.
func ParseConfig(path string, data []byte) (*Config, error) {
	cfg := DefaultConfig()

	// A [corpus] section replaces the default corpus wholesale; merging
	// the two would silently benchmark traces the plan never named.
	var sections map[string]any
	if err := toml.Unmarshal(data, &sections); err != nil {
		return nil, decodeError(path, err)
	}
	if _, ok := sections["corpus"]; ok {
		cfg.Corpus = trace.Registry{}
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, decodeError(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeError(path string, err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return fmt.Errorf("parsing %s:%d:%d: %w", path, row, col, err)
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) {
		return fmt.Errorf("parsing %s: unknown keys:\n%s", path, serr.String())
	}
	return fmt.Errorf("parsing %s: %w", path, err)
}

// Validate checks the plan against the engine registry. Engine resolution
// happens here, before any measurement, so capability gaps abort the whole
// run instead of a late cell.
func (c *Config) Validate() error {
	if err := c.Run.validate(); err != nil {
		return err
	}
	if len(c.Corpus.Files) == 0 {
		return ErrNoTraces
	}
	if len(c.Engines.Upstream) == 0 && len(c.Engines.Downstream) == 0 {
		return ErrNoEngines
	}
	for _, name := range c.Engines.Upstream {
		if _, err := engine.Lookup(name); err != nil {
			return fmt.Errorf("engines.upstream: %w", err)
		}
	}
	for _, name := range c.Engines.Downstream {
		if _, err := engine.Downstream(name); err != nil {
			return fmt.Errorf("engines.downstream: %w", err)
		}
	}
	return nil
}
