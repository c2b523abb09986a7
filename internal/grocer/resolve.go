package grocer

import "github.com/kitchenwise/pantry/internal/model"

// CanonicalName maps a raw ingredient name through the merge rules. Rules
// are scanned in list order and the first match wins: a name matching a
// rule's canonical name returns that canonical name unchanged, a name
// matching one of its sources returns the rule's canonical name. With no
// match the name passes through untouched.
func CanonicalName(name string, rules []model.IngredientMerge) string {
	lower := Normalize(name)

	for _, rule := range rules {
		if Normalize(rule.CanonicalName) == lower {
			return rule.CanonicalName
		}
		for _, src := range rule.SourceNames {
			if Normalize(src) == lower {
				return rule.CanonicalName
			}
		}
	}

	return name
}
