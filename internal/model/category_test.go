package model

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{input: "meat", want: CategoryMeat},
		{input: "Vegetable", want: CategoryVegetable},
		{input: " FROZEN ", want: CategoryFrozen},
		{input: "unknown", want: CategoryOther},
		{input: "", want: CategoryOther},
	}

	for _, tt := range tests {
		if got := ParseCategory(tt.input); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategoriesCoverInfoTable(t *testing.T) {
	cats := Categories()
	if len(cats) != len(categoryInfos) {
		t.Fatalf("Categories() returned %d entries, info table has %d", len(cats), len(categoryInfos))
	}
	for _, c := range cats {
		if !c.IsValid() {
			t.Errorf("category %q not valid", c)
		}
		if c.Label() == "" || c.Icon() == "" {
			t.Errorf("category %q missing label or icon", c)
		}
	}
}
