package grocer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenwise/pantry/internal/model"
)

func TestAggregateCaseInsensitiveDedup(t *testing.T) {
	first := Aggregate(nil, []model.Ingredient{
		{Name: "Tomato", Quantity: "2", Category: model.CategoryVegetable},
	}, Source{Label: "Salad", ID: "r1"}, nil)

	second := Aggregate(first, []model.Ingredient{
		{Name: "tomato", Quantity: "3", Category: model.CategoryVegetable},
	}, Source{Label: "Soup", ID: "r2"}, nil)

	require.Len(t, second, 1)
	assert.Equal(t, "5", second[0].Quantity)
	assert.Equal(t, "Salad, Soup", second[0].FromRecipe)
	assert.Equal(t, "Tomato", second[0].Name, "first-seen spelling kept without a rule")
	assert.False(t, second[0].Checked)
	assert.NotEmpty(t, second[0].ID)
}

func TestAggregateMergeRuleCollapses(t *testing.T) {
	rules := []model.IngredientMerge{
		{CanonicalName: "Chicken Leg", SourceNames: []string{"Chicken Thigh"}},
	}

	items := Aggregate(nil, []model.Ingredient{
		{Name: "Chicken Thigh", Quantity: "2", Category: model.CategoryMeat},
	}, Source{Label: "Curry", ID: "r1"}, rules)

	items = Aggregate(items, []model.Ingredient{
		{Name: "Chicken Leg", Quantity: "1", Category: model.CategoryMeat},
	}, Source{Label: "Roast", ID: "r2"}, rules)

	require.Len(t, items, 1)
	assert.Equal(t, "Chicken Leg", items[0].Name, "canonical name is displayed once a rule matches")
	assert.Equal(t, "3", items[0].Quantity)
	assert.Equal(t, "Curry, Roast", items[0].FromRecipe)
}

func TestAggregateRuleAddedAfterItems(t *testing.T) {
	// Item added before the rule existed still buckets once the rule is in
	// play on the next pass.
	items := Aggregate(nil, []model.Ingredient{
		{Name: "tomatoes", Quantity: "2", Category: model.CategoryVegetable},
	}, Source{Label: "Salad", ID: "r1"}, nil)

	rules := []model.IngredientMerge{
		{CanonicalName: "Tomato", SourceNames: []string{"tomatoes"}},
	}

	items = Aggregate(items, []model.Ingredient{
		{Name: "Tomato", Quantity: "1", Category: model.CategoryVegetable},
	}, Source{Label: "Soup", ID: "r2"}, rules)

	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].Quantity)
}

func TestAggregateProvenanceIdempotent(t *testing.T) {
	src := Source{Label: "Stew", ID: "r1"}

	items := Aggregate(nil, []model.Ingredient{
		{Name: "Carrot", Quantity: "1", Category: model.CategoryVegetable},
	}, src, nil)
	items = Aggregate(items, []model.Ingredient{
		{Name: "Carrot", Quantity: "1", Category: model.CategoryVegetable},
	}, src, nil)

	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].Quantity)
	assert.Equal(t, "Stew", items[0].FromRecipe, "same source label appended only once")
}

func TestAggregateFirstWriterWinsCategoryAndChecked(t *testing.T) {
	existing := []model.ShoppingItem{
		{ID: "i1", Name: "Butter", Quantity: "100g", Category: model.CategoryDairy, Checked: true, FromRecipe: "Toast"},
	}

	items := Aggregate(existing, []model.Ingredient{
		{Name: "butter", Quantity: "50g", Category: model.CategoryOther},
	}, Source{Label: "Bake", ID: "r2"}, nil)

	require.Len(t, items, 1)
	assert.Equal(t, model.CategoryDairy, items[0].Category)
	assert.True(t, items[0].Checked)
	assert.Equal(t, "150g", items[0].Quantity)
}

func TestAggregateDoesNotMutateInputs(t *testing.T) {
	existing := []model.ShoppingItem{
		{ID: "i1", Name: "Salt", Quantity: "1", Category: model.CategoryCondiment, FromRecipe: "Soup"},
	}

	_ = Aggregate(existing, []model.Ingredient{
		{Name: "Salt", Quantity: "2", Category: model.CategoryCondiment},
	}, Source{Label: "Stew", ID: "r2"}, nil)

	assert.Equal(t, "1", existing[0].Quantity, "input snapshot must stay untouched")
	assert.Equal(t, "Soup", existing[0].FromRecipe)
}

func TestAggregateUnmergeableQuantities(t *testing.T) {
	items := Aggregate(nil, []model.Ingredient{
		{Name: "Flour", Quantity: "500g", Category: model.CategoryGrain},
	}, Source{Label: "Bread", ID: "r1"}, nil)

	items = Aggregate(items, []model.Ingredient{
		{Name: "Flour", Quantity: "2 cups", Category: model.CategoryGrain},
	}, Source{Label: "Pancakes", ID: "r2"}, nil)

	require.Len(t, items, 1)
	assert.Equal(t, "500g, 2 cups", items[0].Quantity)
}

func TestAggregateTwoRecipesEndToEnd(t *testing.T) {
	items := Aggregate(nil, []model.Ingredient{
		{Name: "西红柿", Quantity: "2个", Category: model.CategoryVegetable},
	}, Source{Label: "番茄炒蛋", ID: "r1"}, nil)

	items = Aggregate(items, []model.Ingredient{
		{Name: "西红柿", Quantity: "1个", Category: model.CategoryVegetable},
	}, Source{Label: "油焖鸡", ID: "r2"}, nil)

	require.Len(t, items, 1)
	assert.Equal(t, "西红柿", items[0].Name)
	assert.Equal(t, "3个", items[0].Quantity)
	assert.Equal(t, "番茄炒蛋, 油焖鸡", items[0].FromRecipe)
}
