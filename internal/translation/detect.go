// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"regexp"
	"strings"
)

// accountingTerms are common bookkeeping words per language. A whole-word
// match counts double a bare character-pattern hit.
var accountingTerms = map[string][]string{
	"en": {"cash", "bank", "asset", "liability", "equity", "revenue", "expense", "account", "receivable", "payable"},
	"de": {"kasse", "bank", "vermögen", "verbindlichkeit", "eigenkapital", "umsatz", "ausgaben", "konto", "forderung"},
	"fr": {"caisse", "banque", "actif", "passif", "capitaux", "revenus", "charges", "compte", "créances"},
	"es": {"caja", "banco", "activo", "pasivo", "patrimonio", "ingresos", "gastos", "cuenta", "cobrar"},
	"sv": {"kassa", "bank", "tillgång", "skuld", "eget", "intäkt", "kostnad", "konto", "fordran"},
	"it": {"cassa", "banca", "attivo", "passivo", "patrimonio", "ricavi", "costi", "conto", "crediti"},
}

var characterPatterns = map[string]*regexp.Regexp{
	"de": regexp.MustCompile(`[äöüßÄÖÜ]`),
	"fr": regexp.MustCompile(`[éèàçêëîïôùûüÉÈÀÇ]`),
	"es": regexp.MustCompile(`[ñáéíóúüÑÁÉÍÓÚÜ]`),
	"sv": regexp.MustCompile(`[åäöÅÄÖ]`),
	"it": regexp.MustCompile(`[àèéìíîòóùúÀÈÉÌÍÎÒÓÙÚ]`),
}

// termPatterns holds a compiled whole-word matcher per accounting term.
var termPatterns = func() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(accountingTerms))
	for lang, terms := range accountingTerms {
		patterns := make([]*regexp.Regexp, 0, len(terms))
		for _, term := range terms {
			patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
		}
		out[lang] = patterns
	}
	return out
}()

// DetectLanguage guesses the language of the given texts by scoring
// accounting-term hits and language-specific characters. It is a heuristic
// approximation rather than a principled per-row detection pass and defaults
// to "en" when nothing scores.
func DetectLanguage(texts []string) string {
	combined := strings.ToLower(strings.Join(texts, " "))

	scores := make(map[string]int, len(accountingTerms))
	for lang, patterns := range termPatterns {
		for _, pattern := range patterns {
			scores[lang] += 2 * len(pattern.FindAllStringIndex(combined, -1))
		}
	}
	for lang, pattern := range characterPatterns {
		scores[lang] += len(pattern.FindAllStringIndex(combined, -1))
	}

	best, bestScore := "en", 0
	for _, lang := range []string{"en", "de", "fr", "es", "sv", "it"} {
		if scores[lang] > bestScore {
			best, bestScore = lang, scores[lang]
		}
	}
	return best
}
