// Package config provides configuration management for the deployer using
// Viper for file and environment loading, plus the programmatic Options
// consumed by the pipeline constructors.
//
// Options are asserted at construction time: a missing root directory, empty
// mapping or absent compiler fails immediately with a ConfigurationError
// instead of surfacing halfway through a deploy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/merkle-open/nitro-frontify-deployer/internal/compiler"
	"github.com/merkle-open/nitro-frontify-deployer/internal/errors"
	"github.com/merkle-open/nitro-frontify-deployer/internal/schema"
	"github.com/merkle-open/nitro-frontify-deployer/internal/transfer"
)

// TokenEnvVar is the well-known environment variable holding the registry
// access token when none is configured explicitly.
const TokenEnvVar = "FRONTIFY_ACCESS_TOKEN"

// SyncOptions configures the registry sync calls.
type SyncOptions struct {
	// BaseURL is the registry endpoint, e.g. https://company.frontify.com.
	BaseURL string
	// ProjectID identifies the target pattern-library project.
	ProjectID string
	// AccessToken authenticates sync calls. Resolved once at startup: an
	// explicit value wins over the TokenEnvVar environment variable.
	AccessToken string
	// Patterns are the glob patterns selecting descriptor files for
	// pattern sync, relative to the target directory.
	Patterns []string
}

// Options is the full programmatic configuration surface of the pipeline.
type Options struct {
	// RootDirectory is the component tree root. Required, must exist.
	RootDirectory string
	// TargetDirectory receives built artifacts. Required.
	TargetDirectory string
	// Mapping translates type folder names to registry types. Required.
	Mapping map[string]string
	// Compiler renders example templates. Required.
	Compiler compiler.Compiler
	// NameProcessor optionally transforms resolved component names.
	NameProcessor transfer.NameProcessor
	// SchemaName selects the validation schema. Defaults to the built-in
	// pattern schema.
	SchemaName string
	// SchemaFile optionally loads additional schemas from YAML.
	SchemaFile string
	// SharedCSSFiles and SharedJSFiles are staged into the core-assets
	// pseudo-component.
	SharedCSSFiles []string
	SharedJSFiles  []string
	// AssetFolder is the optional directory synced via asset sync; empty
	// skips asset sync entirely.
	AssetFolder string
	// AssetFilters are glob patterns selecting files within AssetFolder.
	AssetFilters []string
	// Sync configures the registry client.
	Sync SyncOptions
	// UseLegacyHiddenFilter selects the legacy not-hidden example
	// predicate instead of the main flag.
	UseLegacyHiddenFilter bool
}

// Validate asserts the options and normalizes paths. It must be called
// before handing the options to any pipeline constructor.
func (o *Options) Validate() error {
	if o.RootDirectory == "" {
		return errors.NewConfigError("root directory is required")
	}
	info, err := os.Stat(o.RootDirectory)
	if err != nil {
		return errors.NewConfigError(fmt.Sprintf("root directory %q does not exist", o.RootDirectory))
	}
	if !info.IsDir() {
		return errors.NewConfigError(fmt.Sprintf("root directory %q is not a directory", o.RootDirectory))
	}
	abs, err := filepath.Abs(o.RootDirectory)
	if err != nil {
		return errors.NewConfigError(fmt.Sprintf("resolving root directory: %v", err))
	}
	o.RootDirectory = abs

	if o.TargetDirectory == "" {
		return errors.NewConfigError("target directory is required")
	}
	abs, err = filepath.Abs(o.TargetDirectory)
	if err != nil {
		return errors.NewConfigError(fmt.Sprintf("resolving target directory: %v", err))
	}
	o.TargetDirectory = abs

	if len(o.Mapping) == 0 {
		return errors.NewConfigError("folder type mapping is required")
	}
	for folder, mappedType := range o.Mapping {
		if strings.TrimSpace(folder) == "" || strings.TrimSpace(mappedType) == "" {
			return errors.NewConfigError("folder type mapping contains an empty entry")
		}
	}

	if o.Compiler == nil {
		return errors.NewConfigError("template compiler is required")
	}

	if o.AssetFolder != "" {
		if _, err := os.Stat(o.AssetFolder); err != nil {
			return errors.NewConfigError(fmt.Sprintf("asset folder %q does not exist", o.AssetFolder))
		}
	}

	for _, file := range append(append([]string{}, o.SharedCSSFiles...), o.SharedJSFiles...) {
		if _, err := os.Stat(file); err != nil {
			return errors.NewConfigError(fmt.Sprintf("shared asset file %q does not exist", file))
		}
	}

	if o.SchemaName == "" {
		o.SchemaName = schema.DefaultPatternSchema
	}
	if o.NameProcessor == nil {
		o.NameProcessor = transfer.IdentityNameProcessor
	}
	if len(o.Sync.Patterns) == 0 {
		o.Sync.Patterns = []string{"*/*/pattern.json"}
	}

	return nil
}
