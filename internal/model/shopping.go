package model

import "time"

// ShoppingItem is one line on a shopping list. Items with the same
// normalized name are folded together during aggregation; FromRecipe
// records which sources contributed, comma-joined.
type ShoppingItem struct {
	ID           string
	Name         string
	Quantity     string
	Category     Category
	FromRecipe   string
	FromRecipeID string
	Checked      bool
}

// ShoppingList is a named collection of shopping items.
type ShoppingList struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	Name      string
	Items     []ShoppingItem
}

// Settings holds the gist sync configuration persisted alongside the data.
// The token never leaves the local database.
type Settings struct {
	LastSync  time.Time
	GistID    string
	GistToken string
}
