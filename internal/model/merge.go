package model

import "strings"

// IngredientMerge is a user-confirmed canonicalization rule: any name in
// SourceNames resolves to CanonicalName. Rules are applied in list order,
// first match wins.
type IngredientMerge struct {
	CanonicalName string
	SourceNames   []string
}

// NewIngredientMerge builds a merge rule, trimming the canonical name and
// dropping any source that is a case-insensitive duplicate of it. A rule
// whose canonical name maps to itself would be a no-op entry.
func NewIngredientMerge(canonicalName string, sourceNames []string) IngredientMerge {
	canonical := strings.TrimSpace(canonicalName)
	lowerCanonical := normalizeLower(canonical)

	sources := make([]string, 0, len(sourceNames))
	for _, src := range sourceNames {
		src = strings.TrimSpace(src)
		if src == "" || normalizeLower(src) == lowerCanonical {
			continue
		}
		sources = append(sources, src)
	}

	return IngredientMerge{
		CanonicalName: canonical,
		SourceNames:   sources,
	}
}

// Covers reports whether name (case-insensitively) appears in the rule,
// either as the canonical name or as a source.
func (m IngredientMerge) Covers(name string) bool {
	lower := normalizeLower(name)
	if normalizeLower(m.CanonicalName) == lower {
		return true
	}
	for _, src := range m.SourceNames {
		if normalizeLower(src) == lower {
			return true
		}
	}
	return false
}

// SimilarPair is a suggested merge candidate: two distinct names scoring
// above the similarity threshold. Exact matches are never suggested; they
// already collapse through case-insensitive aggregation.
type SimilarPair struct {
	Name1      string
	Name2      string
	Similarity float64
}
