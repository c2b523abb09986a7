package model

// Category identifies the shopping section an ingredient belongs to.
type Category string

// The closed set of ingredient categories. Unrecognized input maps to
// CategoryOther rather than failing.
const (
	CategoryMeat      Category = "meat"
	CategoryVegetable Category = "vegetable"
	CategorySeafood   Category = "seafood"
	CategoryCondiment Category = "condiment"
	CategoryGrain     Category = "grain"
	CategoryDairy     Category = "dairy"
	CategoryDrink     Category = "drink"
	CategoryFruit     Category = "fruit"
	CategoryFrozen    Category = "frozen"
	CategorySnack     Category = "snack"
	CategoryOther     Category = "other"
)

type categoryInfo struct {
	label string
	icon  string
}

var categoryOrder = []Category{
	CategoryMeat,
	CategoryVegetable,
	CategorySeafood,
	CategoryCondiment,
	CategoryGrain,
	CategoryDairy,
	CategoryDrink,
	CategoryFruit,
	CategoryFrozen,
	CategorySnack,
	CategoryOther,
}

var categoryInfos = map[Category]categoryInfo{
	CategoryMeat:      {label: "Meat", icon: "🥩"},
	CategoryVegetable: {label: "Vegetables", icon: "🥬"},
	CategorySeafood:   {label: "Seafood", icon: "🦐"},
	CategoryCondiment: {label: "Condiments", icon: "🧂"},
	CategoryGrain:     {label: "Grains", icon: "🍚"},
	CategoryDairy:     {label: "Dairy", icon: "🥛"},
	CategoryDrink:     {label: "Drinks", icon: "🥤"},
	CategoryFruit:     {label: "Fruit", icon: "🍎"},
	CategoryFrozen:    {label: "Frozen", icon: "🧊"},
	CategorySnack:     {label: "Snacks", icon: "🍿"},
	CategoryOther:     {label: "Other", icon: "📦"},
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory maps free-form input to a known category.
// Anything unrecognized becomes CategoryOther.
func ParseCategory(s string) Category {
	c := Category(normalizeLower(s))
	if _, ok := categoryInfos[c]; ok {
		return c
	}
	return CategoryOther
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoryInfos[c]
	return ok
}

// Label returns the human-readable name for the category.
func (c Category) Label() string {
	if info, ok := categoryInfos[c]; ok {
		return info.label
	}
	return categoryInfos[CategoryOther].label
}

// Icon returns the emoji used when rendering the category heading.
func (c Category) Icon() string {
	if info, ok := categoryInfos[c]; ok {
		return info.icon
	}
	return categoryInfos[CategoryOther].icon
}
