package oracle

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/jsoracle/dump"
)

// Config controls the dump rendering. The zero value of each field means
// "use the default", so a partial YAML file only overrides what it names.
type Config struct {
	NodeSnippetLimit int  `yaml:"nodeSnippetLimit,omitempty"` // max bytes of source shown per tree node
	TokenTextLimit   int  `yaml:"tokenTextLimit,omitempty"`   // max bytes of source shown per token
	KeepVarNames     bool `yaml:"keepVarNames,omitempty"`     // forces minify-style naming even in mangle mode
}

// DefaultConfig returns the configuration that reproduces the canonical
// dump protocol byte-for-byte.
func DefaultConfig() *Config {
	return &Config{
		NodeSnippetLimit: dump.NodeSnippetLimit,
		TokenTextLimit:   dump.TokenTextLimit,
	}
}

// LoadConfig reads a YAML configuration from a file path or URL, layered
// over the defaults.
func LoadConfig(ctx context.Context, location string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", location, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", location, err)
	}
	return config, nil
}
