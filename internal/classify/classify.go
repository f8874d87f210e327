// Package classify suggests a category for free-text descriptions such as
// bank statement lines or chat messages.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultFallback is returned when no rule matches.
const DefaultFallback = "Extras"

// Rule maps any of its keywords to Category.
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules is the rule set the statement importer has always used.
// Order matters: the first matching rule wins.
var DefaultRules = []Rule{
	{Category: "Remédios", Keywords: []string{"droga", "farmácia", "medic"}},
	{Category: "Terapia", Keywords: []string{"psicóloga", "terapia", "consultório"}},
	{Category: "Gatos", Keywords: []string{"pet", "ração", "bicho", "gato"}},
	{Category: "Alimentação", Keywords: []string{"mercado", "pão", "ifood", "restaurante", "lanchonete"}},
	{Category: "Assinaturas", Keywords: []string{"netflix", "spotify", "google one", "prime"}},
	{Category: "Estudos", Keywords: []string{"curso", "dio", "plataforma"}},
	{Category: "Viagem", Keywords: []string{"passagem", "viagem", "hotel"}},
	{Category: "Extras", Keywords: []string{"presente", "loja", "diversos"}},
	{Category: "Transporte", Keywords: []string{"uber", "99", "ônibus", "combustível"}},
	{Category: "Salário", Keywords: []string{"salário", "pagamento"}},
	{Category: "INSS", Keywords: []string{"inss"}},
	{Category: "VR", Keywords: []string{"caju", "vr"}},
}

// Classify returns the category of the first rule with a keyword contained
// in text, compared case-insensitively, or fallback if none matches.
func Classify(text string, rules []Rule, fallback string) string {
	lower := cases.Lower(language.Und)
	haystack := lower.String(text)

	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(haystack, lower.String(kw)) {
				return rule.Category
			}
		}
	}
	return fallback
}
