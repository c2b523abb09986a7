package grocer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kitchenwise/pantry/internal/model"
)

// Source identifies where a batch of ingredients came from, usually a
// recipe. Label lands in each item's FromRecipe provenance.
type Source struct {
	Label string
	ID    string
}

// Aggregate folds a batch of incoming ingredients into an existing set of
// shopping items and returns the combined set. Items are keyed by the
// normalized canonical name, so case variants and rule-mapped aliases land
// on the same entry. Matching entries get their quantities merged and the
// source label appended to provenance (once); category and checked state
// stay with the first writer. New entries display the canonical name, so
// accepted merge rules visibly take effect.
//
// Existing item keys run through the resolver too: items added before a
// rule existed still bucket correctly on later passes.
//
// Aggregate never mutates its inputs. Folding several recipes means one
// call per recipe, each output feeding the next call's existing set.
func Aggregate(existing []model.ShoppingItem, incoming []model.Ingredient, source Source, rules []model.IngredientMerge) []model.ShoppingItem {
	items := make([]model.ShoppingItem, len(existing))
	copy(items, existing)

	index := make(map[string]int, len(items))
	for i, item := range items {
		index[Normalize(CanonicalName(item.Name, rules))] = i
	}

	for _, ing := range incoming {
		canonical := CanonicalName(ing.Name, rules)
		key := Normalize(canonical)

		if i, ok := index[key]; ok {
			items[i].Quantity = MergeQuantities(items[i].Quantity, ing.Quantity)
			items[i].FromRecipe = appendSource(items[i].FromRecipe, source.Label)
			continue
		}

		items = append(items, model.ShoppingItem{
			ID:           uuid.NewString(),
			Name:         canonical,
			Quantity:     ing.Quantity,
			Category:     ing.Category,
			Checked:      false,
			FromRecipe:   source.Label,
			FromRecipeID: source.ID,
		})
		index[key] = len(items) - 1
	}

	return items
}

// appendSource adds label to a comma-joined provenance list unless it is
// already there, keeping repeated adds from the same recipe idempotent.
func appendSource(existing, label string) string {
	if label == "" {
		return existing
	}
	if existing == "" {
		return label
	}
	for _, part := range strings.Split(existing, ", ") {
		if part == label {
			return existing
		}
	}
	return existing + ", " + label
}
