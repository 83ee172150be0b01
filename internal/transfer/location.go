package transfer

import (
	"github.com/merkle-open/nitro-frontify-deployer/internal/catalog"
	"github.com/merkle-open/nitro-frontify-deployer/internal/errors"
)

// Location is the derived position of a component within the tree: the type
// folder grouping it and the registry type that folder maps to.
type Location struct {
	// Folder is the type folder name, e.g. "atoms".
	Folder string
	// Type is the mapped registry type, e.g. "atom".
	Type string
}

// ResolveLocation derives a component's location from its path and the
// configured folder mapping. A type folder without a mapping entry is an
// UnmappedFolder validation error.
func ResolveLocation(c *catalog.Component, mapping map[string]string) (Location, error) {
	folder := c.TypeFolderName()
	mappedType, ok := mapping[folder]
	if !ok {
		return Location{}, errors.NewUnmappedFolderError(folder)
	}

	return Location{Folder: folder, Type: mappedType}, nil
}
