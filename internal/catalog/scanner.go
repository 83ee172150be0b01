package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// templateExtensions are the file extensions recognized as example sources.
var templateExtensions = map[string]bool{
	".hbs":      true,
	".twig":     true,
	".mustache": true,
	".html":     true,
}

// skippedDirs are never descended into during a scan.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"target":       true,
}

// Scanner discovers components beneath a root directory. The walk order is
// lexical, so repeated scans of an unchanged tree enumerate identically.
type Scanner struct {
	root string
}

// NewScanner creates a scanner for the given root directory. The root must
// exist; configuration validates that before construction.
func NewScanner(root string) (*Scanner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root directory: %w", err)
	}

	return &Scanner{root: abs}, nil
}

// Root returns the absolute root directory of the scanner.
func (s *Scanner) Root() string {
	return s.root
}

// GetComponents walks the root tree and returns every component keyed by the
// absolute path of its metadata file.
func (s *Scanner) GetComponents() (map[string]*Component, error) {
	components := make(map[string]*Component)

	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			name := entry.Name()
			if path != s.root && (strings.HasPrefix(name, ".") || skippedDirs[name]) {
				return filepath.SkipDir
			}

			return nil
		}
		if entry.Name() != MetaFileName {
			return nil
		}

		component, err := s.readComponent(path)
		if err != nil {
			return err
		}
		components[path] = component

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning components in %s: %w", s.root, err)
	}

	return components, nil
}

func (s *Scanner) readComponent(metaFile string) (*Component, error) {
	raw, err := os.ReadFile(metaFile)
	if err != nil {
		return nil, fmt.Errorf("reading component metadata: %w", err)
	}

	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing component metadata %s: %w", metaFile, err)
	}

	return &Component{
		Directory: filepath.Dir(metaFile),
		MetaFile:  metaFile,
		Data:      data,
	}, nil
}

// GetComponentExamples enumerates the example templates of one component
// directory in lexical path order.
//
// Candidate files are template sources either declared in the metadata's
// "examples" object (relative path -> {main, hidden}) or named "example.*".
// Undeclared example.* files default to main, matching the newer schema era
// where each component surfaces exactly its main example.
func (s *Scanner) GetComponentExamples(dir string) ([]Example, error) {
	declared, err := s.exampleFlags(dir)
	if err != nil {
		return nil, err
	}

	var examples []Example
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != dir && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}
		if !templateExtensions[filepath.Ext(entry.Name())] {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if flags, ok := declared[rel]; ok {
			examples = append(examples, Example{Filepath: path, Main: flags.Main, Hidden: flags.Hidden})

			return nil
		}
		if stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())); stem == "example" {
			examples = append(examples, Example{Filepath: path, Main: true})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating examples in %s: %w", dir, err)
	}

	return examples, nil
}

type exampleDecl struct {
	Main   bool
	Hidden bool
}

// exampleFlags reads the optional per-example flags from the component
// metadata. A missing metadata file means no declarations.
func (s *Scanner) exampleFlags(dir string) (map[string]exampleDecl, error) {
	metaFile := filepath.Join(dir, MetaFileName)
	component, err := s.readComponent(metaFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	raw, ok := component.Data["examples"].(map[string]any)
	if !ok {
		return nil, nil
	}

	declared := make(map[string]exampleDecl, len(raw))
	for rel, value := range raw {
		flags, ok := value.(map[string]any)
		if !ok {
			continue
		}
		decl := exampleDecl{}
		if main, ok := flags["main"].(bool); ok {
			decl.Main = main
		}
		if hidden, ok := flags["hidden"].(bool); ok {
			decl.Hidden = hidden
		}
		declared[filepath.ToSlash(rel)] = decl
	}

	return declared, nil
}
