// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/kitchenwise/pantry/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Recipe operations
	SaveRecipe(ctx context.Context, recipe *model.Recipe) error
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	GetRecipeByName(ctx context.Context, name string) (*model.Recipe, error)
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	SetRecipeFavorite(ctx context.Context, id string, favorite bool) error

	// Shopping list operations
	CreateList(ctx context.Context, name string) (*model.ShoppingList, error)
	ImportList(ctx context.Context, list *model.ShoppingList) error
	GetList(ctx context.Context, id string) (*model.ShoppingList, error)
	GetListByName(ctx context.Context, name string) (*model.ShoppingList, error)
	ListLists(ctx context.Context) ([]model.ShoppingList, error)
	DeleteList(ctx context.Context, id string) error
	CurrentList(ctx context.Context) (*model.ShoppingList, error)
	SetCurrentList(ctx context.Context, id string) error

	// Shopping item operations
	ReplaceItems(ctx context.Context, listID string, items []model.ShoppingItem) error
	AddItem(ctx context.Context, listID string, item model.ShoppingItem) error
	SetItemChecked(ctx context.Context, listID, itemID string, checked bool) error
	DeleteItem(ctx context.Context, listID, itemID string) error
	ClearCheckedItems(ctx context.Context, listID string) (int, error)

	// Merge rule operations
	SaveMergeRule(ctx context.Context, rule model.IngredientMerge) error
	GetMergeRules(ctx context.Context) ([]model.IngredientMerge, error)
	DeleteMergeRule(ctx context.Context, canonicalName string) error
	ReplaceMergeRules(ctx context.Context, rules []model.IngredientMerge) error

	// Meal plan operations
	SaveMealPlanEntry(ctx context.Context, entry *model.MealPlanEntry) error
	GetMealPlanEntries(ctx context.Context, start, end time.Time) ([]model.MealPlanEntry, error)
	DeleteMealPlanEntry(ctx context.Context, id string) error

	// Sync settings
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, settings *model.Settings) error

	// Similarity suggestions draw on every name the database knows.
	GetKnownIngredientNames(ctx context.Context) ([]string, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations that talk to
// remote services.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
