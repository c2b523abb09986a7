package main

import (
	"testing"

	"github.com/kitchenwise/pantry/internal/model"
)

func TestParseIngredientSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    model.Ingredient
		wantErr bool
	}{
		{
			name: "name only",
			spec: "Tomato",
			want: model.Ingredient{Name: "Tomato", Category: model.CategoryOther},
		},
		{
			name: "name and quantity",
			spec: "Tomato,3个",
			want: model.Ingredient{Name: "Tomato", Quantity: "3个", Category: model.CategoryOther},
		},
		{
			name: "full spec",
			spec: "Tomato,3个,vegetable",
			want: model.Ingredient{Name: "Tomato", Quantity: "3个", Category: model.CategoryVegetable},
		},
		{
			name: "whitespace trimmed",
			spec: " Soy Sauce , 2 tbsp , condiment",
			want: model.Ingredient{Name: "Soy Sauce", Quantity: "2 tbsp", Category: model.CategoryCondiment},
		},
		{
			name: "unknown category falls back to other",
			spec: "Tofu,1 block,mystery",
			want: model.Ingredient{Name: "Tofu", Quantity: "1 block", Category: model.CategoryOther},
		},
		{
			name:    "empty name",
			spec:    ",3",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIngredientSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %+v", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseIngredientSpec(%q) failed: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("parseIngredientSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseDateRangeDefaults(t *testing.T) {
	start, end, err := parseDateRange("2026-03-02", "")
	if err != nil {
		t.Fatalf("parseDateRange failed: %v", err)
	}
	if got := end.Sub(start).Hours() / 24; got != 6 {
		t.Errorf("Default range spans %.0f days, want 6", got)
	}

	if _, _, err := parseDateRange("2026-03-02", "2026-03-01"); err == nil {
		t.Error("Expected error for inverted range")
	}

	if _, _, err := parseDateRange("notadate", ""); err == nil {
		t.Error("Expected error for malformed date")
	}
}
