package transfer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/merkle-open/nitro-frontify-deployer/internal/catalog"
)

// identityProperties are the descriptor fields handled explicitly during the
// whitelist copy.
const (
	propName      = "name"
	propType      = "type"
	propStability = "stability"
	propID        = "id"
)

// GeneratorConfig configures a transfer data generator.
type GeneratorConfig struct {
	// Root is the absolute component root directory; html asset paths are
	// computed relative to it.
	Root string
	// Catalog enumerates the component examples.
	Catalog catalog.Catalog
	// Mapping translates type folder names to registry types.
	Mapping map[string]string
	// NameProcessor transforms the resolved component name; nil means
	// identity.
	NameProcessor NameProcessor
	// Properties is the schema-declared field whitelist. Raw metadata
	// fields outside this list never reach the descriptor.
	Properties []string
	// UseLegacyHiddenFilter selects the older schema era where every
	// not-hidden example qualifies, instead of only main examples.
	UseLegacyHiddenFilter bool
}

// Generator maps raw component metadata and examples into TransferData.
type Generator struct {
	cfg GeneratorConfig
}

// NewGenerator creates a generator. Nil strategy fields get their defaults.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.NameProcessor == nil {
		cfg.NameProcessor = IdentityNameProcessor
	}
	if len(cfg.Properties) == 0 {
		cfg.Properties = []string{propName, propType, propStability, propID}
	}

	return &Generator{cfg: cfg}
}

// Qualifies reports whether an example is surfaced downstream under the
// configured filtering era.
func (g *Generator) Qualifies(example catalog.Example) bool {
	if g.cfg.UseLegacyHiddenFilter {
		return !example.Hidden
	}

	return example.Main
}

// ToTransferData derives the registry descriptor for one component. It waits
// on example enumeration and is otherwise a pure function of its inputs.
func (g *Generator) ToTransferData(ctx context.Context, c *catalog.Component) (*TransferData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	location, err := ResolveLocation(c, g.cfg.Mapping)
	if err != nil {
		return nil, err
	}

	td := &TransferData{Type: location.Type}

	// Whitelist copy: only schema-declared properties survive.
	for _, prop := range g.cfg.Properties {
		value, present := c.Data[prop]
		if !present {
			continue
		}
		switch prop {
		case propName:
			if name, ok := value.(string); ok {
				td.Name = name
			}
		case propType:
			if declared, ok := value.(string); ok {
				td.Type = declared
			}
		case propStability:
			if stability, ok := value.(string); ok {
				td.Stability = stability
			}
		case propID:
			td.ID = value
		default:
			if td.Extra == nil {
				td.Extra = make(map[string]any)
			}
			td.Extra[prop] = value
		}
	}

	if td.Name == "" {
		td.Name = c.Name()
	}
	td.Name = g.cfg.NameProcessor(td.Name, location.Folder, location.Type, c.Directory)

	examples, err := g.cfg.Catalog.GetComponentExamples(c.Directory)
	if err != nil {
		return nil, fmt.Errorf("enumerating examples for %s: %w", c.Directory, err)
	}

	for _, example := range examples {
		if !g.Qualifies(example) {
			continue
		}
		key, err := filepath.Rel(c.Directory, example.Filepath)
		if err != nil {
			return nil, fmt.Errorf("resolving example path %s: %w", example.Filepath, err)
		}

		htmlPath := filepath.Join(filepath.Dir(example.Filepath), example.Stem()+".html")
		relHTML, err := filepath.Rel(g.cfg.Root, htmlPath)
		if err != nil {
			return nil, fmt.Errorf("resolving asset path %s: %w", htmlPath, err)
		}

		td.SetVariation(filepath.ToSlash(key), Variation{
			Name:   td.Name + " -- " + example.Stem(),
			Assets: Assets{HTML: []string{filepath.ToSlash(relHTML)}},
		})
	}

	return td, nil
}
