package grocer

import (
	"sort"

	"github.com/kitchenwise/pantry/internal/model"
)

// DefaultThreshold is the minimum similarity at which two distinct names
// are proposed as merge candidates.
const DefaultThreshold = 0.7

// FindSimilarPairs scans a set of ingredient names for likely duplicates
// worth a merge rule. Names are deduplicated by normalization first. A pair
// is skipped only when both sides already appear in an existing rule; one
// covered side still yields a suggestion, since the other may belong in the
// same rule. Pairs scoring in [threshold, 1) are returned sorted by
// descending similarity. Exact matches are excluded: they collapse through
// case-insensitive aggregation, not through rules.
func FindSimilarPairs(names []string, rules []model.IngredientMerge, threshold float64) []model.SimilarPair {
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		n := Normalize(name)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}

	covered := make(map[string]struct{})
	for _, rule := range rules {
		covered[Normalize(rule.CanonicalName)] = struct{}{}
		for _, src := range rule.SourceNames {
			covered[Normalize(src)] = struct{}{}
		}
	}

	var pairs []model.SimilarPair
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			_, iCovered := covered[unique[i]]
			_, jCovered := covered[unique[j]]
			if iCovered && jCovered {
				continue
			}

			score := Similarity(unique[i], unique[j])
			if score >= threshold && score < 1 {
				pairs = append(pairs, model.SimilarPair{
					Name1:      unique[i],
					Name2:      unique[j],
					Similarity: score,
				})
			}
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Similarity > pairs[b].Similarity
	})

	return pairs
}
