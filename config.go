package lineage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/lineage/digest"
	"github.com/viant/lineage/internal/env"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the lineage configuration. It
// can be populated from JSON or YAML. The zero-value is useful – empty
// fields fall back to package defaults.
type Config struct {
	Digest  string        `json:"digest,omitempty" yaml:"digest,omitempty"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

// TracingConfig controls the OpenTelemetry stdout exporter.
type TracingConfig struct {
	Enabled bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"`
	Service string `json:"service,omitempty" yaml:"service,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Digest: digest.NameSHA256,
		Tracing: TracingConfig{
			Service: "lineage",
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if _, err := digest.Lookup(c.Digest); err != nil {
		return fmt.Errorf("invalid digest: %w", err)
	}
	if c.Tracing.Enabled && c.Tracing.Service == "" {
		return fmt.Errorf("tracing.service must not be empty when tracing is enabled")
	}
	return nil
}

// LoadConfig reads a YAML (or JSON) document from URL, expands ${env.KEY}
// expressions and decodes it over DefaultConfig.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	decoder := yaml.NewDecoder(strings.NewReader(env.Expand(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(ret); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
