// Package catalog provides component discovery for a nitro frontend tree.
//
// A component is a directory holding a pattern.json metadata file plus one or
// more example templates. The scanner walks the configured root directory,
// reads each metadata file and exposes the raw declared fields untouched;
// interpretation (defaults, type mapping, whitelisting) happens downstream.
package catalog

import (
	"path/filepath"
)

// MetaFileName is the metadata file that marks a component directory.
const MetaFileName = "pattern.json"

// Component is one discoverable UI pattern unit. Identity is the absolute
// path of its metadata file. Instances are produced fresh per scan and must
// be treated as immutable by consumers.
type Component struct {
	// Directory is the absolute path of the owning folder.
	Directory string
	// MetaFile is the absolute path of the pattern.json file.
	MetaFile string
	// Data holds the raw declared metadata fields.
	Data map[string]any
}

// Name returns the component's folder name.
func (c *Component) Name() string {
	return filepath.Base(c.Directory)
}

// TypeFolderName returns the name of the folder two levels above the
// metadata file, i.e. the type folder grouping components of one kind
// (atoms, molecules, ...).
func (c *Component) TypeFolderName() string {
	return filepath.Base(filepath.Dir(filepath.Dir(c.MetaFile)))
}

// Example is a renderable instance of a component.
type Example struct {
	// Filepath is the absolute path of the template source.
	Filepath string
	// Main marks the example surfaced downstream.
	Main bool
	// Hidden is the legacy exclusion flag from the older schema era.
	Hidden bool
}

// Stem returns the example's file name without its extension.
func (e Example) Stem() string {
	base := filepath.Base(e.Filepath)

	return base[:len(base)-len(filepath.Ext(base))]
}

// Catalog enumerates components and their examples.
type Catalog interface {
	GetComponents() (map[string]*Component, error)
	GetComponentExamples(dir string) ([]Example, error)
}
