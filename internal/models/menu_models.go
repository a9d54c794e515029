package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is one line of a recipe: how much of an inventory item a single unit consumes.
type Ingredient struct {
	InventoryItemID string  `json:"inventory_item_id" binding:"required"`
	Quantity        float64 `json:"quantity" binding:"required"`
}

// MenuItem represents a sellable dish or drink.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	HasWings    bool            `json:"has_wings"`
	HasFries    bool            `json:"has_fries"`
	SubmenuKey  *string         `json:"submenu_key,omitempty"`
	MaxChoices  int             `json:"max_choices,omitempty"` // number of flavor slots, 0 when the item takes none
	ImageURL    *string         `json:"image_url,omitempty"`
	Recipe      []Ingredient    `json:"recipe,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Clone returns a deep copy so that callers never alias the stored recipe.
func (m MenuItem) Clone() MenuItem {
	out := m
	if m.SubmenuKey != nil {
		key := *m.SubmenuKey
		out.SubmenuKey = &key
	}
	if m.ImageURL != nil {
		url := *m.ImageURL
		out.ImageURL = &url
	}
	if m.Recipe != nil {
		out.Recipe = make([]Ingredient, len(m.Recipe))
		copy(out.Recipe, m.Recipe)
	}
	return out
}

// Sauce is a selectable sauce for wings or fries.
type Sauce struct {
	Key  string `json:"key" binding:"required"`
	Name string `json:"name"`
}

// CustomizationCatalog holds the fixed option sets order items are customized from.
type CustomizationCatalog struct {
	WingSauces     []Sauce             `json:"wing_sauces"`
	FrySauces      []Sauce             `json:"fry_sauces"`
	SubmenuChoices map[string][]string `json:"submenu_choices"`
	Flavors        []string            `json:"flavors"`
}

// Clone returns a deep copy of the catalog.
func (c CustomizationCatalog) Clone() CustomizationCatalog {
	out := CustomizationCatalog{
		WingSauces:     append([]Sauce(nil), c.WingSauces...),
		FrySauces:      append([]Sauce(nil), c.FrySauces...),
		Flavors:        append([]string(nil), c.Flavors...),
		SubmenuChoices: make(map[string][]string, len(c.SubmenuChoices)),
	}
	for k, v := range c.SubmenuChoices {
		out.SubmenuChoices[k] = append([]string(nil), v...)
	}
	return out
}

// DefaultCustomizationCatalog returns the option sets the restaurant starts with.
func DefaultCustomizationCatalog() CustomizationCatalog {
	return CustomizationCatalog{
		WingSauces: []Sauce{
			{Key: "bbq", Name: "BBQ"},
			{Key: "buffalo", Name: "Buffalo"},
			{Key: "honey-mustard", Name: "Honey Mustard"},
			{Key: "teriyaki", Name: "Teriyaki"},
			{Key: "mango-habanero", Name: "Mango Habanero"},
			{Key: "garlic-parmesan", Name: "Garlic Parmesan"},
		},
		FrySauces: []Sauce{
			{Key: "cheddar", Name: "Cheddar"},
			{Key: "ketchup", Name: "Ketchup"},
			{Key: "garlic", Name: "Garlic"},
			{Key: "pink", Name: "Pink Sauce"},
		},
		SubmenuChoices: map[string][]string{
			"soda":      {"Coca-Cola", "Coca-Cola Zero", "Sprite", "Quatro"},
			"lemonade":  {"Classic", "Cherry", "Coconut", "Mint"},
			"burger":    {"Beef", "Chicken", "Veggie"},
			"side-dish": {"Fries", "Onion Rings", "Salad"},
		},
		Flavors: []string{"Vanilla", "Chocolate", "Strawberry", "Pistachio", "Lemon", "Mango", "Arequipe"},
	}
}
