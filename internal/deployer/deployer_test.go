package deployer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merkle-open/nitro-frontify-deployer/internal/compiler"
	"github.com/merkle-open/nitro-frontify-deployer/internal/config"
	"github.com/merkle-open/nitro-frontify-deployer/internal/errors"
	"github.com/merkle-open/nitro-frontify-deployer/internal/frontify"
)

// fakeRegistry records sync calls and answers with one entry per matched file.
type fakeRegistry struct {
	patternCalls atomic.Int64
	assetCalls   atomic.Int64
	patternDir   string
	assetFolder  string
	failPatterns error
}

func (f *fakeRegistry) SyncPatterns(_ context.Context, dir string, globs []string) ([]frontify.SyncedPattern, error) {
	f.patternCalls.Add(1)
	f.patternDir = dir
	if f.failPatterns != nil {
		return nil, f.failPatterns
	}

	var synced []frontify.SyncedPattern
	for _, glob := range globs {
		matches, err := filepath.Glob(filepath.Join(dir, filepath.FromSlash(glob)))
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			synced = append(synced, frontify.SyncedPattern{Name: filepath.Base(filepath.Dir(match)), Path: match})
		}
	}

	return synced, nil
}

func (f *fakeRegistry) SyncAssets(_ context.Context, folder string, _ []string) ([]frontify.SyncedAsset, error) {
	f.assetCalls.Add(1)
	f.assetFolder = folder

	return []frontify.SyncedAsset{{Name: "app.css", Path: filepath.Join(folder, "app.css")}}, nil
}

func writeComponent(t *testing.T, root, folder, name string, meta map[string]any) {
	t.Helper()

	dir := filepath.Join(root, folder, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	raw, err := json.MarshalIndent(meta, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pattern.json"), raw, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "example.hbs"), []byte("<div>"+name+"</div>"), 0o644))
}

func testOptions(t *testing.T) *config.Options {
	t.Helper()

	root := t.TempDir()
	writeComponent(t, root, "atoms", "button", map[string]any{
		"name": "button", "type": "atom", "stability": "stable",
	})
	writeComponent(t, root, "molecules", "teaser", map[string]any{
		"name": "teaser", "type": "molecule", "stability": "beta",
	})

	return &config.Options{
		RootDirectory:   root,
		TargetDirectory: filepath.Join(t.TempDir(), "dist"),
		Mapping:         map[string]string{"atoms": "atom", "molecules": "molecule"},
		Compiler:        compiler.StaticCompiler{},
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(&config.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestDeploySyncsPatternsAndAssets(t *testing.T) {
	opts := testOptions(t)
	opts.AssetFolder = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(opts.AssetFolder, "app.css"), []byte("body{}"), 0o644))
	opts.AssetFilters = []string{"*.css"}

	registry := &fakeRegistry{}
	d, err := New(opts, WithRegistry(registry))
	require.NoError(t, err)

	result, err := d.Deploy(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Components, 2)
	assert.Len(t, result.Assets, 1)
	assert.Equal(t, StateDone, d.State())
	assert.Equal(t, opts.TargetDirectory, registry.patternDir)
	assert.Equal(t, opts.AssetFolder, registry.assetFolder)
}

func TestDeployWithoutAssetFolderSkipsAssetSync(t *testing.T) {
	opts := testOptions(t)

	registry := &fakeRegistry{}
	d, err := New(opts, WithRegistry(registry))
	require.NoError(t, err)

	result, err := d.Deploy(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Assets)
	assert.NotNil(t, result.Assets)
	assert.Len(t, result.Components, 2)
	assert.Equal(t, int64(0), registry.assetCalls.Load())
	assert.Equal(t, int64(1), registry.patternCalls.Load())
}

func TestDeployAbortsOnValidationFailure(t *testing.T) {
	opts := testOptions(t)
	writeComponent(t, opts.RootDirectory, "helpers", "grid", map[string]any{
		"name": "grid", "type": "helper",
	})

	registry := &fakeRegistry{}
	d, err := New(opts, WithRegistry(registry))
	require.NoError(t, err)

	_, err = d.Deploy(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnmappedFolder))
	assert.Equal(t, StateFailed, d.State())
	assert.Equal(t, int64(0), registry.patternCalls.Load(), "nothing reaches the registry after a validation failure")
	assert.Equal(t, int64(0), registry.assetCalls.Load())

	_, err = os.Stat(opts.TargetDirectory)
	assert.True(t, os.IsNotExist(err), "nothing is built after a validation failure")
}

func TestDeployEmptyCatalog(t *testing.T) {
	opts := testOptions(t)
	opts.RootDirectory = t.TempDir()

	d, err := New(opts, WithRegistry(&fakeRegistry{}))
	require.NoError(t, err)

	_, err = d.Deploy(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Component validation failed - no components found", err.Error())
	assert.Equal(t, StateFailed, d.State())
}

func TestDeployPropagatesSyncFailure(t *testing.T) {
	opts := testOptions(t)

	registry := &fakeRegistry{failPatterns: errors.NewSyncConfigError("registry access token is not configured")}
	d, err := New(opts, WithRegistry(registry))
	require.NoError(t, err)

	_, err = d.Deploy(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSyncConfig))
	assert.Equal(t, StateFailed, d.State())
}

func TestStateTransitions(t *testing.T) {
	opts := testOptions(t)

	d, err := New(opts, WithRegistry(&fakeRegistry{}))
	require.NoError(t, err)
	assert.Equal(t, StateIdle, d.State())

	_, err = d.Deploy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, d.State())
	assert.Equal(t, "done", d.State().String())
}

func TestClean(t *testing.T) {
	opts := testOptions(t)

	d, err := New(opts, WithRegistry(&fakeRegistry{}))
	require.NoError(t, err)
	require.NoError(t, d.BuildComponents(context.Background()))

	built := filepath.Join(opts.TargetDirectory, "atoms", "button", "example.html")
	_, err = os.Stat(built)
	require.NoError(t, err)

	require.NoError(t, d.Clean())
	_, err = os.Stat(built)
	assert.True(t, os.IsNotExist(err))

	// Cleaning an already clean target is not an error.
	require.NoError(t, d.Clean())
}

func TestValidateAndBuildStandalone(t *testing.T) {
	opts := testOptions(t)

	d, err := New(opts, WithRegistry(&fakeRegistry{}))
	require.NoError(t, err)

	require.NoError(t, d.ValidateComponents())
	require.NoError(t, d.BuildComponents(context.Background()))

	raw, err := os.ReadFile(filepath.Join(opts.TargetDirectory, "atoms", "button", "pattern.json"))
	require.NoError(t, err)

	var descriptor map[string]any
	require.NoError(t, json.Unmarshal(raw, &descriptor))
	assert.Equal(t, "button", descriptor["name"])
	assert.Equal(t, "atom", descriptor["type"])
}
