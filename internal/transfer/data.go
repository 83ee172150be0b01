// Package transfer derives the canonical artifact descriptor for each
// component: the normalized, schema-shaped data the pattern registry
// consumes. Generation is a pure function of the component metadata, its
// qualifying examples, the folder mapping and the configured name processor.
package transfer

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Assets holds the artifact paths of one variation.
type Assets struct {
	HTML []string `json:"html"`
}

// Variation is the canonical, synced form of one component example.
type Variation struct {
	Name   string `json:"name"`
	Assets Assets `json:"assets"`
}

// TransferData is the registry descriptor of one component. Variations keep
// their insertion order through marshaling so pattern.json output is
// reproducible run to run.
type TransferData struct {
	Name      string
	Type      string
	Stability string
	ID        any
	// Extra holds schema-declared properties beyond the identity fields,
	// copied verbatim from the component metadata.
	Extra map[string]any

	variations map[string]Variation
	order      []string
}

// SetVariation records a variation under its key, preserving first-insertion
// order.
func (td *TransferData) SetVariation(key string, v Variation) {
	if td.variations == nil {
		td.variations = make(map[string]Variation)
	}
	if _, exists := td.variations[key]; !exists {
		td.order = append(td.order, key)
	}
	td.variations[key] = v
}

// Variation returns the variation stored under key.
func (td *TransferData) Variation(key string) (Variation, bool) {
	v, ok := td.variations[key]

	return v, ok
}

// VariationKeys returns the variation keys in insertion order.
func (td *TransferData) VariationKeys() []string {
	keys := make([]string, len(td.order))
	copy(keys, td.order)

	return keys
}

// VariationCount returns the number of recorded variations.
func (td *TransferData) VariationCount() int {
	return len(td.order)
}

// MarshalJSON emits the descriptor with a stable member order: identity
// fields first, then any extra declared properties (sorted), then the
// variations in insertion order.
func (td *TransferData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(encoded)

		return nil
	}

	if err := write("name", td.Name); err != nil {
		return nil, err
	}
	if err := write("type", td.Type); err != nil {
		return nil, err
	}
	if td.Stability != "" {
		if err := write("stability", td.Stability); err != nil {
			return nil, err
		}
	}
	if td.ID != nil {
		if err := write("id", td.ID); err != nil {
			return nil, err
		}
	}

	extraKeys := make([]string, 0, len(td.Extra))
	for key := range td.Extra {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)
	for _, key := range extraKeys {
		if err := write(key, td.Extra[key]); err != nil {
			return nil, err
		}
	}

	if buf.Len() > 1 {
		buf.WriteByte(',')
	}
	buf.WriteString(`"variations":{`)
	for i, key := range td.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		encoded, err := json.Marshal(td.variations[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}
