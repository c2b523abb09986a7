package grocer

import (
	"testing"

	"github.com/kitchenwise/pantry/internal/model"
)

func TestFindSimilarPairs(t *testing.T) {
	names := []string{"tomato", "tomatoes", "garlic", "Tomato"}

	pairs := FindSimilarPairs(names, nil, DefaultThreshold)

	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].Name1 != "tomato" || pairs[0].Name2 != "tomatoes" {
		t.Errorf("unexpected pair: %+v", pairs[0])
	}
	if pairs[0].Similarity != containmentScore {
		t.Errorf("similarity = %v, want containment score %v", pairs[0].Similarity, containmentScore)
	}
}

func TestFindSimilarPairsExcludesExactMatches(t *testing.T) {
	// Case variants normalize to the same name and must never be suggested.
	pairs := FindSimilarPairs([]string{"Tomato", "tomato", "TOMATO"}, nil, 0)
	if len(pairs) != 0 {
		t.Errorf("exact duplicates suggested: %+v", pairs)
	}
}

func TestFindSimilarPairsThresholdBoundary(t *testing.T) {
	// potato/tomato scores exactly 1 - 2/6.
	score := Similarity("potato", "tomato")

	atThreshold := FindSimilarPairs([]string{"potato", "tomato"}, nil, score)
	if len(atThreshold) != 1 {
		t.Errorf("pair at threshold excluded, want included")
	}

	above := FindSimilarPairs([]string{"potato", "tomato"}, nil, score+0.001)
	if len(above) != 0 {
		t.Errorf("pair below threshold included: %+v", above)
	}
}

func TestFindSimilarPairsSkipsFullyCoveredPairs(t *testing.T) {
	rules := []model.IngredientMerge{
		{CanonicalName: "tomato", SourceNames: []string{"tomatoes"}},
	}

	// Both sides covered by the rule: already resolved, no suggestion.
	pairs := FindSimilarPairs([]string{"tomato", "tomatoes"}, rules, DefaultThreshold)
	if len(pairs) != 0 {
		t.Errorf("fully covered pair re-suggested: %+v", pairs)
	}

	// Only one side covered: still worth suggesting.
	pairs = FindSimilarPairs([]string{"tomato", "tomatos"}, rules, DefaultThreshold)
	if len(pairs) != 1 {
		t.Errorf("half-covered pair skipped, want suggested: %+v", pairs)
	}
}

func TestFindSimilarPairsSortedDescending(t *testing.T) {
	names := []string{"cherry tomato", "tomato", "potato"}

	pairs := FindSimilarPairs(names, nil, 0.3)
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Similarity > pairs[i-1].Similarity {
			t.Fatalf("pairs not sorted descending: %+v", pairs)
		}
	}
}
