// Package grocer implements the ingredient aggregation engine: quantity
// arithmetic, name similarity scoring, canonical-name resolution, and the
// fold that turns recipe ingredients into a deduplicated shopping list.
// Every function here is a pure transform over its inputs.
package grocer

import (
	"regexp"
	"strconv"
	"strings"
)

// Quantity is a parsed "number then unit" amount, e.g. "500g" or "2 cups".
type Quantity struct {
	Unit  string
	Value float64
}

var quantityPattern = regexp.MustCompile(`^([\d.]+)\s*(.*)$`)

// ParseQuantity splits the leading numeric portion of a quantity string
// from its trailing unit. Strings with no leading number ("a pinch", "")
// are not parseable and are treated as opaque text by MergeQuantities.
func ParseQuantity(text string) (Quantity, bool) {
	match := quantityPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return Quantity{}, false
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		// Degenerate numeric portions like "." fail to parse.
		return Quantity{}, false
	}

	return Quantity{Value: value, Unit: strings.TrimSpace(match[2])}, true
}

// FormatQuantity renders a quantity back to text with no separator between
// value and unit: {500 g} becomes "500g".
func FormatQuantity(q Quantity) string {
	value := strconv.FormatFloat(q.Value, 'f', -1, 64)
	if q.Unit == "" {
		return value
	}
	return value + q.Unit
}

// MergeQuantities combines two quantity strings. When both parse and share
// an identical unit the values are summed; otherwise the originals are kept
// side by side, comma-joined. No unit conversion is attempted: "500g" and
// "1kg" do not merge.
func MergeQuantities(a, b string) string {
	qa, okA := ParseQuantity(a)
	qb, okB := ParseQuantity(b)

	if okA && okB && qa.Unit == qb.Unit {
		return FormatQuantity(Quantity{Value: qa.Value + qb.Value, Unit: qa.Unit})
	}

	return a + ", " + b
}
