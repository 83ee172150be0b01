package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/merkle-open/nitro-frontify-deployer/internal/compiler"
	"github.com/merkle-open/nitro-frontify-deployer/internal/transfer"
)

// Config is the file and environment facing configuration shape.
type Config struct {
	Root          string            `mapstructure:"root" yaml:"root"`
	Target        string            `mapstructure:"target" yaml:"target"`
	Mapping       map[string]string `mapstructure:"mapping" yaml:"mapping"`
	Compiler      string            `mapstructure:"compiler" yaml:"compiler"`
	NameProcessor string            `mapstructure:"name_processor" yaml:"name_processor"`

	Schema struct {
		Name string `mapstructure:"name" yaml:"name"`
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"schema" yaml:"schema"`

	Shared struct {
		CSS []string `mapstructure:"css" yaml:"css"`
		JS  []string `mapstructure:"js" yaml:"js"`
	} `mapstructure:"shared" yaml:"shared"`

	Assets struct {
		Folder  string   `mapstructure:"folder" yaml:"folder"`
		Filters []string `mapstructure:"filters" yaml:"filters"`
	} `mapstructure:"assets" yaml:"assets"`

	Sync struct {
		BaseURL     string   `mapstructure:"base_url" yaml:"base_url"`
		ProjectID   string   `mapstructure:"project_id" yaml:"project_id"`
		AccessToken string   `mapstructure:"access_token" yaml:"access_token"`
		Patterns    []string `mapstructure:"patterns" yaml:"patterns"`
	} `mapstructure:"sync" yaml:"sync"`

	LegacyHiddenFilter bool `mapstructure:"legacy_hidden_filter" yaml:"legacy_hidden_filter"`
}

// Load unmarshals the current viper state into a Config and applies
// defaults for values not explicitly set.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if config.Root == "" {
		config.Root = "components"
	}
	if config.Target == "" {
		config.Target = "dist/frontify"
	}
	if config.Compiler == "" {
		config.Compiler = "go-template"
	}
	if len(config.Mapping) == 0 {
		config.Mapping = map[string]string{
			"atoms":     "atom",
			"molecules": "molecule",
			"organisms": "organism",
		}
	}

	return &config, nil
}

// ToOptions converts the file configuration into validated pipeline options.
// The registry access token is resolved here, once: an explicit value wins,
// otherwise the well-known environment variable is consulted.
func (c *Config) ToOptions() (*Options, error) {
	comp, err := compiler.ByName(c.Compiler)
	if err != nil {
		return nil, err
	}

	opts := &Options{
		RootDirectory:         c.Root,
		TargetDirectory:       c.Target,
		Mapping:               c.Mapping,
		Compiler:              comp,
		NameProcessor:         transfer.NameProcessorByName(c.NameProcessor),
		SchemaName:            c.Schema.Name,
		SchemaFile:            c.Schema.File,
		SharedCSSFiles:        c.Shared.CSS,
		SharedJSFiles:         c.Shared.JS,
		AssetFolder:           c.Assets.Folder,
		AssetFilters:          c.Assets.Filters,
		UseLegacyHiddenFilter: c.LegacyHiddenFilter,
		Sync: SyncOptions{
			BaseURL:     c.Sync.BaseURL,
			ProjectID:   c.Sync.ProjectID,
			AccessToken: c.Sync.AccessToken,
			Patterns:    c.Sync.Patterns,
		},
	}

	if opts.Sync.AccessToken == "" {
		opts.Sync.AccessToken = os.Getenv(TokenEnvVar)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return opts, nil
}
