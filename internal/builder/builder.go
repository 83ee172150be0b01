// Package builder renders component examples to static markup and persists
// each component's registry descriptor into the target tree.
package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/merkle-open/nitro-frontify-deployer/internal/catalog"
	"github.com/merkle-open/nitro-frontify-deployer/internal/compiler"
	"github.com/merkle-open/nitro-frontify-deployer/internal/errors"
	"github.com/merkle-open/nitro-frontify-deployer/internal/htmlfmt"
	"github.com/merkle-open/nitro-frontify-deployer/internal/transfer"
)

// Core-assets pseudo-component identity. The registry only ingests assets
// wrapped in a pattern package, so shared CSS/JS ship as one synthetic
// component.
const (
	CoreAssetsName      = "core-assets"
	CoreAssetsType      = "atom"
	CoreAssetsStability = "stable"
)

// Config configures a builder.
type Config struct {
	// Root is the absolute component root directory.
	Root string
	// Target is the output directory receiving descriptors and markup.
	Target string
	// Catalog enumerates components for BuildAll.
	Catalog catalog.Catalog
	// Generator derives the descriptor written per component.
	Generator *transfer.Generator
	// Compiler renders example templates.
	Compiler compiler.Compiler
	// SharedCSSFiles and SharedJSFiles are staged into the core-assets
	// package. When both are empty the package is not materialized.
	SharedCSSFiles []string
	SharedJSFiles  []string
}

// Builder writes build output for components.
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build writes one component's pattern.json and its rendered variation
// markup beneath the target directory. The descriptor is written before any
// variation so directory creation order is deterministic.
func (b *Builder) Build(ctx context.Context, c *catalog.Component) error {
	td, err := b.cfg.Generator.ToTransferData(ctx, c)
	if err != nil {
		return err
	}

	relDir, err := filepath.Rel(b.cfg.Root, c.Directory)
	if err != nil {
		return fmt.Errorf("resolving component directory %s: %w", c.Directory, err)
	}

	if err := b.writeTransferData(filepath.Join(b.cfg.Target, relDir), td); err != nil {
		return err
	}

	for _, key := range td.VariationKeys() {
		variation, _ := td.Variation(key)
		if err := b.buildVariation(c, key, variation); err != nil {
			return err
		}
	}

	return nil
}

// buildVariation compiles one example template and writes the pretty-printed
// markup to the variation's html asset path.
func (b *Builder) buildVariation(c *catalog.Component, key string, variation transfer.Variation) error {
	source := filepath.Join(c.Directory, filepath.FromSlash(key))
	destination := filepath.Join(b.cfg.Target, filepath.FromSlash(variation.Assets.HTML[0]))

	raw, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", source, err)
	}

	tpl, err := b.cfg.Compiler.Compile(string(raw), source)
	if err != nil {
		return errors.NewTemplateCompileError(source, err)
	}

	markup, err := tpl.Render(nil)
	if err != nil {
		return errors.NewTemplateCompileError(source, err)
	}

	pretty, err := htmlfmt.Pretty(markup)
	if err != nil {
		return errors.NewTemplateCompileError(source, err)
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	return os.WriteFile(destination, []byte(pretty), 0o644)
}

// BuildAll builds every catalog component concurrently plus the core-assets
// package. The aggregate waits for all builds and fails with the first
// error.
func (b *Builder) BuildAll(ctx context.Context) error {
	components, err := b.cfg.Catalog.GetComponents()
	if err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(ctx)
	for _, component := range components {
		component := component
		group.Go(func() error {
			return b.Build(ctx, component)
		})
	}
	group.Go(func() error {
		return b.buildCoreAssets(ctx)
	})

	return group.Wait()
}

// buildCoreAssets stages the configured shared CSS/JS files into
// <target>/core/assets/{css,js} and writes the package descriptor.
func (b *Builder) buildCoreAssets(ctx context.Context) error {
	if len(b.cfg.SharedCSSFiles) == 0 && len(b.cfg.SharedJSFiles) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	assetsDir := filepath.Join(b.cfg.Target, "core", "assets")

	td := &transfer.TransferData{
		Name:      CoreAssetsName,
		Type:      CoreAssetsType,
		Stability: CoreAssetsStability,
	}
	if err := b.writeTransferData(assetsDir, td); err != nil {
		return err
	}

	if err := stageFiles(b.cfg.SharedCSSFiles, filepath.Join(assetsDir, "css")); err != nil {
		return err
	}

	return stageFiles(b.cfg.SharedJSFiles, filepath.Join(assetsDir, "js"))
}

// writeTransferData persists a descriptor as pretty-printed pattern.json,
// creating the directory as needed.
func (b *Builder) writeTransferData(dir string, td *transfer.TransferData) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating target directory: %w", err)
	}

	encoded, err := json.MarshalIndent(td, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding transfer data for %s: %w", td.Name, err)
	}

	return os.WriteFile(filepath.Join(dir, catalog.MetaFileName), encoded, 0o644)
}

func stageFiles(files []string, dir string) error {
	if len(files) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating asset directory: %w", err)
	}
	for _, file := range files {
		if err := copyFile(file, filepath.Join(dir, filepath.Base(file))); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening shared asset %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating staged asset %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("staging asset %s: %w", src, err)
	}

	return out.Close()
}
