// Package storage provides the data persistence layer for the pantry application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kitchenwise/pantry/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidRecipe  = errors.New("invalid recipe")
	ErrInvalidItem    = errors.New("invalid shopping item")
	ErrInvalidRule    = errors.New("invalid merge rule")
	ErrInvalidEntry   = errors.New("invalid meal plan entry")
	ErrInvalidDateRng = errors.New("start date must be before end date")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecipe validates a recipe before persistence.
func validateRecipe(recipe *model.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe", ErrNilParameter)
	}
	if strings.TrimSpace(recipe.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecipe)
	}
	if strings.TrimSpace(recipe.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecipe)
	}
	for i, ing := range recipe.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: ingredient at index %d has no name", ErrInvalidRecipe, i)
		}
	}
	return nil
}

// validateItem validates a shopping item before persistence.
func validateItem(item *model.ShoppingItem) error {
	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidItem)
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidItem)
	}
	return nil
}

// validateRule validates a merge rule before persistence.
func validateRule(rule *model.IngredientMerge) error {
	if strings.TrimSpace(rule.CanonicalName) == "" {
		return fmt.Errorf("%w: missing canonical name", ErrInvalidRule)
	}
	lower := strings.ToLower(strings.TrimSpace(rule.CanonicalName))
	for _, src := range rule.SourceNames {
		if strings.ToLower(strings.TrimSpace(src)) == lower {
			return fmt.Errorf("%w: source %q duplicates the canonical name", ErrInvalidRule, src)
		}
	}
	return nil
}

// validateEntry validates a meal plan entry before persistence.
func validateEntry(entry *model.MealPlanEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if strings.TrimSpace(entry.RecipeID) == "" {
		return fmt.Errorf("%w: missing recipe id", ErrInvalidEntry)
	}
	if entry.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidEntry)
	}
	return nil
}
