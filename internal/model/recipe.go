// Package model defines the domain types shared across the application.
package model

import (
	"strings"
	"time"
)

// Ingredient is a single entry on a recipe's ingredient list.
// Quantity is free text ("500g", "2 cups", "a pinch") and may be empty.
type Ingredient struct {
	Name     string
	Quantity string
	Category Category
}

// Recipe is a stored recipe with its ingredient list.
type Recipe struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Name        string
	Description string
	Ingredients []Ingredient
	Tags        []string
	IsFavorite  bool
}

// normalizeLower is the shared name normalization: trim then lowercase.
// Two names that normalize equal are treated as the same ingredient.
func normalizeLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
