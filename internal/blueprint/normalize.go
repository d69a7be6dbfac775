package blueprint

import (
	"regexp"
	"strings"
)

// CanonicalTypes is the closed set of component types the renderer accepts.
var CanonicalTypes = []string{
	"Hero",
	"Stats",
	"Testimonials",
	"ValuePropositions",
	"ProductPreview",
	"FeatureHighlight",
	"CTASection",
	"FAQ",
	"Logos",
}

var canonicalSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CanonicalTypes))
	for _, t := range CanonicalTypes {
		m[t] = struct{}{}
	}
	return m
}()

// typeAliases maps lowercased morphological variants to canonical names.
var typeAliases = map[string]string{
	"hero":               "Hero",
	"stats":              "Stats",
	"testimonials":       "Testimonials",
	"valuepropositions":  "ValuePropositions",
	"value_propositions": "ValuePropositions",
	"valueproposition":   "ValuePropositions",
	"value_proposition":  "ValuePropositions",
	"productpreview":     "ProductPreview",
	"product_preview":    "ProductPreview",
	"product":            "ProductPreview",
	"featurehighlight":   "FeatureHighlight",
	"feature_highlight":  "FeatureHighlight",
	"ctasection":         "CTASection",
	"cta_section":        "CTASection",
	"faq":                "FAQ",
	"logos":              "Logos",
	"logo":               "Logos",
}

var nonAliasRunes = regexp.MustCompile(`[^a-z0-9_]+`)

// IsCanonicalType reports whether t is already a canonical component type.
func IsCanonicalType(t string) bool {
	_, ok := canonicalSet[t]
	return ok
}

// NormalizeComponentType maps a free-form type string to its canonical name.
// Unrecognized input passes through unchanged, so the function never fails
// and is idempotent: a canonical name maps to itself.
func NormalizeComponentType(input string) string {
	if input == "" {
		return input
	}
	if IsCanonicalType(input) {
		return input
	}

	raw := strings.TrimSpace(input)
	if exact, ok := typeAliases[strings.ToLower(raw)]; ok {
		return exact
	}

	// Fuzzy pass: compare with all separators stripped.
	normalized := nonAliasRunes.ReplaceAllString(strings.ToLower(raw), "_")
	flat := strings.ReplaceAll(normalized, "_", "")
	for alias, canonical := range typeAliases {
		if strings.ReplaceAll(alias, "_", "") == flat {
			return canonical
		}
	}

	return input
}
