package schema

// DefaultPatternSchema is the schema components are validated against unless
// configuration selects another one.
const DefaultPatternSchema = "frontify-pattern"

// Stability values accepted by the pattern registry.
var stabilityValues = []string{"unstable", "experimental", "beta", "stable", "deprecated"}

// builtinSchemas returns the schemas registered on every new engine.
//
// None of the identity fields are required: name and type default from the
// component's location on disk when absent, so the rules only constrain
// values that are explicitly declared.
func builtinSchemas() []*Schema {
	return []*Schema{
		{
			Name: DefaultPatternSchema,
			Fields: []Rule{
				{Name: "name", Type: "string", Pattern: `^[A-Za-z0-9][A-Za-z0-9 _-]*$`},
				{Name: "type", Type: "string"},
				{Name: "stability", Type: "string", Enum: stabilityValues},
				{Name: "id", Type: "number"},
			},
		},
		{
			Name: "frontify-assets",
			Fields: []Rule{
				{Name: "name", Type: "string"},
				{Name: "type", Type: "string"},
				{Name: "stability", Type: "string", Enum: stabilityValues},
			},
		},
	}
}
