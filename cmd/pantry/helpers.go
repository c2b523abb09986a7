package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/config"
	"github.com/kitchenwise/pantry/internal/model"
	"github.com/kitchenwise/pantry/internal/service"
	"github.com/kitchenwise/pantry/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveList finds the named list, or the current list when name is empty.
func resolveList(ctx context.Context, store service.Storage, name string) (*model.ShoppingList, error) {
	if name == "" {
		list, err := store.CurrentList(ctx)
		if errors.Is(err, common.ErrNoCurrentList) {
			return nil, common.NewUserError("no shopping list selected; create one with 'pantry lists create' or pick one with 'pantry lists use'", err)
		}
		return list, err
	}

	list, err := store.GetListByName(ctx, name)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("no shopping list named %q", name), err)
	}
	return list, err
}

// findRecipe looks a recipe up by name first, then by id.
func findRecipe(ctx context.Context, store service.Storage, nameOrID string) (*model.Recipe, error) {
	recipe, err := store.GetRecipeByName(ctx, nameOrID)
	if err == nil {
		return recipe, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	recipe, err = store.GetRecipe(ctx, nameOrID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("no recipe named %q", nameOrID), err)
	}
	return recipe, err
}

// parseIngredientSpec parses the "name,quantity,category" format used by
// --ingredient flags. Quantity and category are optional: "Tomato",
// "Tomato,3", and "Tomato,3,vegetable" are all valid.
func parseIngredientSpec(spec string) (model.Ingredient, error) {
	parts := strings.SplitN(spec, ",", 3)

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return model.Ingredient{}, fmt.Errorf("ingredient spec %q has no name", spec)
	}

	ing := model.Ingredient{Name: name, Category: model.CategoryOther}
	if len(parts) > 1 {
		ing.Quantity = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		ing.Category = model.ParseCategory(parts[2])
	}

	return ing, nil
}
