package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/model"
)

func TestSaveAndGetRecipe(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	recipe := testRecipe("Tomato Soup",
		model.Ingredient{Name: "Tomato", Quantity: "4", Category: model.CategoryVegetable},
		model.Ingredient{Name: "Salt", Quantity: "", Category: model.CategoryCondiment},
	)

	if err := store.SaveRecipe(ctx, recipe); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	got, err := store.GetRecipe(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("Failed to get recipe: %v", err)
	}
	if got.Name != "Tomato Soup" {
		t.Errorf("Name = %q, want %q", got.Name, "Tomato Soup")
	}
	if len(got.Ingredients) != 2 {
		t.Fatalf("Ingredients = %d, want 2", len(got.Ingredients))
	}
	if got.Ingredients[0].Name != "Tomato" || got.Ingredients[0].Category != model.CategoryVegetable {
		t.Errorf("First ingredient wrong: %+v", got.Ingredients[0])
	}
	if got.Ingredients[1].Quantity != "" {
		t.Errorf("Empty quantity not preserved: %q", got.Ingredients[1].Quantity)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("Timestamps not set on save")
	}
}

func TestGetRecipeByName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	recipe := testRecipe("Fried Rice",
		model.Ingredient{Name: "Rice", Quantity: "2 cups", Category: model.CategoryGrain})
	if err := store.SaveRecipe(ctx, recipe); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	got, err := store.GetRecipeByName(ctx, "fried rice")
	if err != nil {
		t.Fatalf("Case-insensitive lookup failed: %v", err)
	}
	if got.ID != recipe.ID {
		t.Errorf("Got wrong recipe: %s", got.ID)
	}

	if _, err := store.GetRecipeByName(ctx, "no such recipe"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveRecipeReplacesIngredients(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	recipe := testRecipe("Stir Fry",
		model.Ingredient{Name: "Broccoli", Quantity: "1", Category: model.CategoryVegetable},
		model.Ingredient{Name: "Garlic", Quantity: "3", Category: model.CategoryVegetable},
	)
	if err := store.SaveRecipe(ctx, recipe); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	recipe.Ingredients = []model.Ingredient{
		{Name: "Bok Choy", Quantity: "2", Category: model.CategoryVegetable},
	}
	if err := store.SaveRecipe(ctx, recipe); err != nil {
		t.Fatalf("Failed to update recipe: %v", err)
	}

	got, err := store.GetRecipe(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("Failed to get recipe: %v", err)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Name != "Bok Choy" {
		t.Errorf("Ingredients not replaced: %+v", got.Ingredients)
	}
}

func TestListRecipesFavoritesFirst(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	plain := testRecipe("Aubergine Bake")
	favorite := testRecipe("Zucchini Pasta")
	for _, r := range []*model.Recipe{plain, favorite} {
		if err := store.SaveRecipe(ctx, r); err != nil {
			t.Fatalf("Failed to save recipe: %v", err)
		}
	}
	if err := store.SetRecipeFavorite(ctx, favorite.ID, true); err != nil {
		t.Fatalf("Failed to set favorite: %v", err)
	}

	recipes, err := store.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("Failed to list recipes: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("Got %d recipes, want 2", len(recipes))
	}
	if recipes[0].Name != "Zucchini Pasta" || !recipes[0].IsFavorite {
		t.Errorf("Favorite not listed first: %+v", recipes[0])
	}
}

func TestDeleteRecipe(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	recipe := testRecipe("Short-lived",
		model.Ingredient{Name: "Dust", Quantity: "1", Category: model.CategoryOther})
	if err := store.SaveRecipe(ctx, recipe); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	if err := store.DeleteRecipe(ctx, recipe.ID); err != nil {
		t.Fatalf("Failed to delete recipe: %v", err)
	}
	if _, err := store.GetRecipe(ctx, recipe.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteRecipe(ctx, recipe.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}

	// Cascade: the ingredient corpus no longer contains the recipe's names.
	names, err := store.GetKnownIngredientNames(ctx)
	if err != nil {
		t.Fatalf("Failed to get names: %v", err)
	}
	for _, name := range names {
		if name == "Dust" {
			t.Error("Deleted recipe's ingredients still present")
		}
	}
}
