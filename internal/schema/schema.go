// Package schema provides declarative validation of component metadata.
//
// A schema is an ordered list of field rules (required, type, enum, pattern)
// identified by name. Schemas ship as built-in defaults and can be extended or
// replaced from YAML documents. Unknown metadata fields are always permitted;
// the declared field list doubles as the property whitelist used when deriving
// transfer data.
package schema

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// FieldError describes a single schema violation.
type FieldError struct {
	Field      string
	Constraint string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Constraint)
}

// Rule describes the constraints of one declared field.
type Rule struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"` // string, number, boolean, object, array
	Required bool     `yaml:"required"`
	Enum     []string `yaml:"enum"`
	Pattern  string   `yaml:"pattern"`

	pattern *regexp.Regexp
}

// Schema is a named, ordered set of field rules.
type Schema struct {
	Name   string `yaml:"name"`
	Fields []Rule `yaml:"fields"`
}

// Engine validates raw metadata maps against registered schemas.
type Engine struct {
	schemas map[string]*Schema
}

// NewEngine creates an engine preloaded with the built-in schemas.
func NewEngine() *Engine {
	e := &Engine{schemas: make(map[string]*Schema)}
	for _, s := range builtinSchemas() {
		// Built-in patterns are compile-checked by tests.
		_ = e.Register(s)
	}

	return e
}

// Register adds or replaces a schema, compiling its field patterns.
func (e *Engine) Register(s *Schema) error {
	if s.Name == "" {
		return fmt.Errorf("schema has no name")
	}
	for i := range s.Fields {
		rule := &s.Fields[i]
		if rule.Name == "" {
			return fmt.Errorf("schema %q: field %d has no name", s.Name, i)
		}
		switch rule.Type {
		case "", "string", "number", "boolean", "object", "array":
		default:
			return fmt.Errorf("schema %q: field %q has unknown type %q", s.Name, rule.Name, rule.Type)
		}
		if rule.Pattern != "" {
			compiled, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return fmt.Errorf("schema %q: field %q pattern: %w", s.Name, rule.Name, err)
			}
			rule.pattern = compiled
		}
	}
	e.schemas[s.Name] = s

	return nil
}

// LoadFile registers every schema found in a YAML document.
func (e *Engine) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading schema file: %w", err)
	}

	var doc struct {
		Schemas []*Schema `yaml:"schemas"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing schema file %s: %w", path, err)
	}
	for _, s := range doc.Schemas {
		if err := e.Register(s); err != nil {
			return err
		}
	}

	return nil
}

// Names returns the registered schema names, sorted.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.schemas))
	for name := range e.schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Properties returns the declared field names of a schema in declaration
// order. An unknown schema yields nil.
func (e *Engine) Properties(schemaName string) []string {
	s, ok := e.schemas[schemaName]
	if !ok {
		return nil
	}
	props := make([]string, 0, len(s.Fields))
	for _, rule := range s.Fields {
		props = append(props, rule.Name)
	}

	return props
}

// Validate checks data against the named schema and returns every violation
// in field declaration order. An unknown schema is itself a violation.
func (e *Engine) Validate(schemaName string, data map[string]any) []FieldError {
	s, ok := e.schemas[schemaName]
	if !ok {
		return []FieldError{{Field: schemaName, Constraint: "references an unknown schema"}}
	}

	var violations []FieldError
	for _, rule := range s.Fields {
		value, present := data[rule.Name]
		if !present {
			if rule.Required {
				violations = append(violations, FieldError{
					Field:      rule.Name,
					Constraint: "is required",
				})
			}
			continue
		}
		violations = append(violations, checkRule(rule, value)...)
	}

	return violations
}

func checkRule(rule Rule, value any) []FieldError {
	var violations []FieldError

	if rule.Type != "" && !matchesType(rule.Type, value) {
		violations = append(violations, FieldError{
			Field:      rule.Name,
			Constraint: "must be of type " + rule.Type,
		})

		return violations
	}

	if len(rule.Enum) > 0 {
		str, ok := value.(string)
		if !ok || !containsString(rule.Enum, str) {
			violations = append(violations, FieldError{
				Field:      rule.Name,
				Constraint: fmt.Sprintf("must be one of %v", rule.Enum),
			})
		}
	}

	if rule.pattern != nil {
		str, ok := value.(string)
		if !ok || !rule.pattern.MatchString(str) {
			violations = append(violations, FieldError{
				Field:      rule.Name,
				Constraint: fmt.Sprintf("must match pattern %q", rule.Pattern),
			})
		}
	}

	return violations
}

func matchesType(typeName string, value any) bool {
	switch typeName {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		// encoding/json decodes all numbers to float64
		switch value.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	default:
		return true
	}
}

func containsString(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}

	return false
}
