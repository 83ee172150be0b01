// Package deployer sequences the pipeline stages: validate every component,
// build descriptors and markup into the target tree, then sync assets and
// patterns to the registry. Any stage failure aborts the remaining stages;
// nothing is synced after a validation or build failure.
package deployer

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/merkle-open/nitro-frontify-deployer/internal/builder"
	"github.com/merkle-open/nitro-frontify-deployer/internal/catalog"
	"github.com/merkle-open/nitro-frontify-deployer/internal/config"
	"github.com/merkle-open/nitro-frontify-deployer/internal/frontify"
	"github.com/merkle-open/nitro-frontify-deployer/internal/logging"
	"github.com/merkle-open/nitro-frontify-deployer/internal/schema"
	"github.com/merkle-open/nitro-frontify-deployer/internal/transfer"
	"github.com/merkle-open/nitro-frontify-deployer/internal/validate"
)

// State is the orchestrator's observable stage.
type State int32

const (
	StateIdle State = iota
	StateValidating
	StateBuilding
	StateSyncing
	StateDone
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateBuilding:
		return "building"
	case StateSyncing:
		return "syncing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DeployResult aggregates the two independent sync calls.
type DeployResult struct {
	Assets     []frontify.SyncedAsset
	Components []frontify.SyncedPattern
}

// Deployer is the top of the pipeline call graph.
type Deployer struct {
	opts      *config.Options
	scanner   *catalog.Scanner
	validator *validate.Validator
	builder   *builder.Builder
	registry  frontify.Registry
	log       logging.Logger
	state     atomic.Int32
}

// Option customizes a deployer.
type Option func(*Deployer)

// WithRegistry replaces the registry client, primarily for tests.
func WithRegistry(registry frontify.Registry) Option {
	return func(d *Deployer) {
		d.registry = registry
	}
}

// WithLogger attaches a logger.
func WithLogger(log logging.Logger) Option {
	return func(d *Deployer) {
		d.log = log
	}
}

// New validates the options and assembles the pipeline. Configuration
// problems surface here, before any stage runs.
func New(opts *config.Options, deployerOpts ...Option) (*Deployer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	scanner, err := catalog.NewScanner(opts.RootDirectory)
	if err != nil {
		return nil, err
	}

	engine := schema.NewEngine()
	if opts.SchemaFile != "" {
		if err := engine.LoadFile(opts.SchemaFile); err != nil {
			return nil, err
		}
	}

	generator := transfer.NewGenerator(transfer.GeneratorConfig{
		Root:                  scanner.Root(),
		Catalog:               scanner,
		Mapping:               opts.Mapping,
		NameProcessor:         opts.NameProcessor,
		Properties:            engine.Properties(opts.SchemaName),
		UseLegacyHiddenFilter: opts.UseLegacyHiddenFilter,
	})

	d := &Deployer{
		opts:      opts,
		scanner:   scanner,
		validator: validate.NewValidator(scanner, engine, opts.SchemaName, opts.Mapping),
		builder: builder.NewBuilder(builder.Config{
			Root:           scanner.Root(),
			Target:         opts.TargetDirectory,
			Catalog:        scanner,
			Generator:      generator,
			Compiler:       opts.Compiler,
			SharedCSSFiles: opts.SharedCSSFiles,
			SharedJSFiles:  opts.SharedJSFiles,
		}),
		log: logging.Nop(),
	}
	for _, opt := range deployerOpts {
		opt(d)
	}
	if d.registry == nil {
		d.registry = frontify.NewClient(opts.Sync)
	}

	return d, nil
}

// RootDirectory returns the absolute component root directory.
func (d *Deployer) RootDirectory() string {
	return d.opts.RootDirectory
}

// State returns the current pipeline stage.
func (d *Deployer) State() State {
	return State(d.state.Load())
}

func (d *Deployer) setState(s State) {
	d.state.Store(int32(s))
}

// ValidateComponents runs the validation stage on its own.
func (d *Deployer) ValidateComponents() error {
	return d.validator.ValidateAll()
}

// BuildComponents runs the build stage on its own.
func (d *Deployer) BuildComponents(ctx context.Context) error {
	return d.builder.BuildAll(ctx)
}

// Deploy runs validation, build and sync in sequence and returns the
// aggregated sync result. The first stage failure aborts the deploy and is
// surfaced unchanged.
func (d *Deployer) Deploy(ctx context.Context) (*DeployResult, error) {
	d.setState(StateValidating)
	d.log.Info(ctx, "validating components", "root", d.opts.RootDirectory)
	if err := d.validator.ValidateAll(); err != nil {
		d.setState(StateFailed)
		return nil, err
	}

	d.setState(StateBuilding)
	d.log.Info(ctx, "building components", "target", d.opts.TargetDirectory)
	if err := d.builder.BuildAll(ctx); err != nil {
		d.setState(StateFailed)
		return nil, err
	}

	d.setState(StateSyncing)
	d.log.Info(ctx, "syncing to registry", "endpoint", d.opts.Sync.BaseURL)
	result, err := d.sync(ctx)
	if err != nil {
		d.setState(StateFailed)
		return nil, err
	}

	d.setState(StateDone)
	d.log.Info(ctx, "deploy finished",
		"assets", len(result.Assets),
		"components", len(result.Components))

	return result, nil
}

// sync runs asset sync and pattern sync concurrently. An unconfigured asset
// folder short-circuits asset sync to an empty result without touching the
// registry.
func (d *Deployer) sync(ctx context.Context) (*DeployResult, error) {
	result := &DeployResult{
		Assets:     []frontify.SyncedAsset{},
		Components: []frontify.SyncedPattern{},
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if d.opts.AssetFolder == "" {
			return nil
		}
		assets, err := d.registry.SyncAssets(ctx, d.opts.AssetFolder, d.opts.AssetFilters)
		if err != nil {
			return err
		}
		result.Assets = assets

		return nil
	})
	group.Go(func() error {
		components, err := d.registry.SyncPatterns(ctx, d.opts.TargetDirectory, d.opts.Sync.Patterns)
		if err != nil {
			return err
		}
		result.Components = components

		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
