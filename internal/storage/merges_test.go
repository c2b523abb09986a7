package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/model"
)

func TestMergeRulesPreserveOrder(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	rules := []model.IngredientMerge{
		model.NewIngredientMerge("Tomato", []string{"tomatoes"}),
		model.NewIngredientMerge("Scallion", []string{"green onion", "spring onion"}),
		model.NewIngredientMerge("Chicken Leg", []string{"chicken thigh"}),
	}

	for _, rule := range rules {
		if err := store.SaveMergeRule(ctx, rule); err != nil {
			t.Fatalf("Failed to save rule: %v", err)
		}
	}

	got, err := store.GetMergeRules(ctx)
	if err != nil {
		t.Fatalf("Failed to get rules: %v", err)
	}
	if len(got) != len(rules) {
		t.Fatalf("Got %d rules, want %d", len(got), len(rules))
	}
	// First-match resolution depends on insertion order surviving.
	for i, rule := range rules {
		if got[i].CanonicalName != rule.CanonicalName {
			t.Errorf("Rule %d = %q, want %q", i, got[i].CanonicalName, rule.CanonicalName)
		}
	}
	if len(got[1].SourceNames) != 2 {
		t.Errorf("Source names not preserved: %+v", got[1])
	}
}

func TestSaveMergeRuleDuplicate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveMergeRule(ctx, model.NewIngredientMerge("Tomato", []string{"tomatoes"})); err != nil {
		t.Fatalf("Failed to save rule: %v", err)
	}

	err := store.SaveMergeRule(ctx, model.NewIngredientMerge("tomato", []string{"roma"}))
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry for case-variant canonical, got %v", err)
	}
}

func TestSaveMergeRuleRejectsSelfMatch(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Bypassing the constructor must not sneak a self-referencing rule in.
	raw := model.IngredientMerge{CanonicalName: "Tomato", SourceNames: []string{"tomato"}}
	if err := store.SaveMergeRule(context.Background(), raw); err == nil {
		t.Error("Expected validation error for self-matching source")
	}
}

func TestDeleteMergeRule(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveMergeRule(ctx, model.NewIngredientMerge("Tomato", []string{"tomatoes"})); err != nil {
		t.Fatalf("Failed to save rule: %v", err)
	}

	if err := store.DeleteMergeRule(ctx, "TOMATO"); err != nil {
		t.Fatalf("Case-insensitive delete failed: %v", err)
	}
	if err := store.DeleteMergeRule(ctx, "Tomato"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestReplaceMergeRules(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveMergeRule(ctx, model.NewIngredientMerge("Old", []string{"stale"})); err != nil {
		t.Fatalf("Failed to save rule: %v", err)
	}

	replacement := []model.IngredientMerge{
		model.NewIngredientMerge("Fresh", []string{"new"}),
	}
	if err := store.ReplaceMergeRules(ctx, replacement); err != nil {
		t.Fatalf("Failed to replace rules: %v", err)
	}

	got, err := store.GetMergeRules(ctx)
	if err != nil {
		t.Fatalf("Failed to get rules: %v", err)
	}
	if len(got) != 1 || got[0].CanonicalName != "Fresh" {
		t.Errorf("Rules not replaced: %+v", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	empty, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("Failed to get empty settings: %v", err)
	}
	if empty.GistID != "" || !empty.LastSync.IsZero() {
		t.Errorf("Fresh settings not zero: %+v", empty)
	}

	now := time.Now().Truncate(time.Second)
	if err := store.UpdateSettings(ctx, &model.Settings{
		GistID:    "abc123",
		GistToken: "ghp_secret",
		LastSync:  now,
	}); err != nil {
		t.Fatalf("Failed to update settings: %v", err)
	}

	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("Failed to get settings: %v", err)
	}
	if got.GistID != "abc123" || got.GistToken != "ghp_secret" {
		t.Errorf("Settings wrong: %+v", got)
	}
	if !got.LastSync.Equal(now) {
		t.Errorf("LastSync = %v, want %v", got.LastSync, now)
	}
}

func TestGetKnownIngredientNames(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	recipe := testRecipe("Soup",
		model.Ingredient{Name: "Tomato", Quantity: "2", Category: model.CategoryVegetable},
		model.Ingredient{Name: "Salt", Quantity: "", Category: model.CategoryCondiment},
	)
	if err := store.SaveRecipe(ctx, recipe); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	list, err := store.CreateList(ctx, "Weekly")
	if err != nil {
		t.Fatalf("Failed to create list: %v", err)
	}
	if err := store.AddItem(ctx, list.ID, testItem("Olive Oil", "1")); err != nil {
		t.Fatalf("Failed to add item: %v", err)
	}

	names, err := store.GetKnownIngredientNames(ctx)
	if err != nil {
		t.Fatalf("Failed to get names: %v", err)
	}

	want := map[string]bool{"Tomato": false, "Salt": false, "Olive Oil": false}
	for _, name := range names {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("Name %q missing from corpus", name)
		}
	}
}
