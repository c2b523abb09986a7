// Package export renders shopping lists as plain text for clipboard
// hand-off to reminders-style apps.
package export

import (
	"fmt"
	"strings"

	"github.com/kitchenwise/pantry/internal/model"
)

// ItemLine formats one shopping item: the name, the quantity in
// parentheses when present, and the contributing recipes after a dash.
// For example: 西红柿 (3个) -- 番茄炒蛋, 油焖鸡
func ItemLine(item model.ShoppingItem) string {
	text := item.Name
	if item.Quantity != "" {
		text = fmt.Sprintf("%s (%s)", item.Name, item.Quantity)
	}
	if item.FromRecipe != "" {
		text += " -- " + item.FromRecipe
	}
	return text
}

// GroupedText renders unchecked items grouped by category, one section per
// category in display order, blank line between sections.
func GroupedText(items []model.ShoppingItem) string {
	byCategory := make(map[model.Category][]model.ShoppingItem)
	for _, item := range items {
		if item.Checked {
			continue
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	var lines []string
	for _, cat := range model.Categories() {
		group := byCategory[cat]
		if len(group) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("--- %s %s ---", cat.Icon(), cat.Label()))
		for _, item := range group {
			lines = append(lines, ItemLine(item))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// FlatText renders unchecked items one per line with no category headers,
// the format reminders apps ingest as individual entries.
func FlatText(items []model.ShoppingItem) string {
	var lines []string
	for _, item := range items {
		if item.Checked {
			continue
		}
		lines = append(lines, ItemLine(item))
	}
	return strings.Join(lines, "\n")
}
