package transfer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameProcessor transforms a component's resolved name. It must be pure:
// the pipeline calls it once per generation and assumes identical output for
// identical input.
type NameProcessor func(defaultName, folderName, folderType, absolutePath string) string

// IdentityNameProcessor returns the resolved name unchanged.
func IdentityNameProcessor(defaultName, _, _, _ string) string {
	return defaultName
}

var titleCaser = cases.Title(language.English)

// TitleNameProcessor turns hyphen- and underscore-separated folder names
// into title-cased display names ("button-group" -> "Button Group").
func TitleNameProcessor(defaultName, _, _, _ string) string {
	words := strings.FieldsFunc(defaultName, func(r rune) bool {
		return r == '-' || r == '_'
	})

	return titleCaser.String(strings.Join(words, " "))
}

// NameProcessorByName returns a built-in processor by its configuration
// name. Unknown names fall back to the identity processor.
func NameProcessorByName(name string) NameProcessor {
	if name == "title" {
		return TitleNameProcessor
	}

	return IdentityNameProcessor
}
