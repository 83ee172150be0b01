// Package validate checks every discovered component against the configured
// schema and folder mapping before anything is built or synced.
package validate

import (
	"sort"
	"strings"

	"github.com/merkle-open/nitro-frontify-deployer/internal/catalog"
	"github.com/merkle-open/nitro-frontify-deployer/internal/errors"
	"github.com/merkle-open/nitro-frontify-deployer/internal/schema"
	"github.com/merkle-open/nitro-frontify-deployer/internal/transfer"
)

// SchemaValidator is the validation engine consumed by the validator.
type SchemaValidator interface {
	Validate(schemaName string, data map[string]any) []schema.FieldError
}

// Validator runs the validation stage of the pipeline.
type Validator struct {
	catalog    catalog.Catalog
	schemas    SchemaValidator
	schemaName string
	mapping    map[string]string
}

// NewValidator creates a validator over the given catalog.
func NewValidator(cat catalog.Catalog, schemas SchemaValidator, schemaName string, mapping map[string]string) *Validator {
	return &Validator{
		catalog:    cat,
		schemas:    schemas,
		schemaName: schemaName,
		mapping:    mapping,
	}
}

// ValidateAll validates every component and returns nil only if all pass.
// Components are checked in metadata path order and the first failure aborts
// the remaining checks.
func (v *Validator) ValidateAll() error {
	components, err := v.catalog.GetComponents()
	if err != nil {
		return err
	}
	if len(components) == 0 {
		return errors.NewEmptyCatalogError()
	}

	keys := make([]string, 0, len(components))
	for key := range components {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := v.validateComponent(components[key]); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateComponent(c *catalog.Component) error {
	if violations := v.schemas.Validate(v.schemaName, c.Data); len(violations) > 0 {
		details := make([]string, len(violations))
		for i, violation := range violations {
			details[i] = violation.Error()
		}

		return errors.NewSchemaViolationError(v.schemaName, c.MetaFile, strings.Join(details, "; "))
	}

	if _, err := transfer.ResolveLocation(c, v.mapping); err != nil {
		return err
	}

	return nil
}
