package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCategories seeds an empty registry.
var DefaultCategories = []string{"Alimentação", "Transporte", "Pets", "Salário"}

// NormalizeCategory trims a category name and converts it to title case
// ("pets" and "PETS" both become "Pets").
func NormalizeCategory(name string) string {
	// cases.Caser is stateful, so a new one is built per call.
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}
