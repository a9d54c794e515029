package services

import (
	"fmt"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
	"github.com/shopspring/decimal"
)

type seedIngredient struct {
	name     string
	quantity float64
}

type seedMenuItem struct {
	name       string
	price      int64
	category   string
	hasWings   bool
	hasFries   bool
	submenu    string
	maxChoices int
	recipe     []seedIngredient
}

var demoInventory = []CreateInventoryItemRequest{
	{Name: "Alitas de pollo", Stock: 20, Unit: string(models.UnitKilogram), CostPerUnit: 18000, AlertThreshold: 5},
	{Name: "Papas", Stock: 15, Unit: string(models.UnitKilogram), CostPerUnit: 4000, AlertThreshold: 4},
	{Name: "Pan de hamburguesa", Stock: 40, Unit: string(models.UnitCount), CostPerUnit: 900, AlertThreshold: 10},
	{Name: "Carne de res", Stock: 8, Unit: string(models.UnitKilogram), CostPerUnit: 26000, AlertThreshold: 2},
	{Name: "Gaseosa", Stock: 48, Unit: string(models.UnitCount), CostPerUnit: 1800, AlertThreshold: 12},
	{Name: "Helado", Stock: 6, Unit: string(models.UnitLiter), CostPerUnit: 14000, AlertThreshold: 1.5},
}

var demoMenu = []seedMenuItem{
	{name: "Combo 6 Alitas", price: 22000, category: "Alitas", hasWings: true, hasFries: true,
		recipe: []seedIngredient{{"Alitas de pollo", 0.3}, {"Papas", 0.15}}},
	{name: "Combo 12 Alitas", price: 39000, category: "Alitas", hasWings: true, hasFries: true,
		recipe: []seedIngredient{{"Alitas de pollo", 0.6}, {"Papas", 0.25}}},
	{name: "Papas Locas", price: 12000, category: "Acompañamientos", hasFries: true,
		recipe: []seedIngredient{{"Papas", 0.3}}},
	{name: "Hamburguesa Loca", price: 24000, category: "Hamburguesas", hasFries: true, submenu: "burger",
		recipe: []seedIngredient{{"Pan de hamburguesa", 1}, {"Carne de res", 0.15}, {"Papas", 0.15}}},
	{name: "Gaseosa", price: 4000, category: "Bebidas", submenu: "soda",
		recipe: []seedIngredient{{"Gaseosa", 1}}},
	{name: "Limonada", price: 6000, category: "Bebidas", submenu: "lemonade"},
	{name: "Malteada", price: 11000, category: "Postres", maxChoices: 2,
		recipe: []seedIngredient{{"Helado", 0.25}}},
}

var demoTables = []CreateTableRequest{
	{Name: "Mesa 1", Capacity: 4, Position: &models.Position{X: 10, Y: 10}},
	{Name: "Mesa 2", Capacity: 4, Position: &models.Position{X: 40, Y: 10}},
	{Name: "Mesa 3", Capacity: 2, Position: &models.Position{X: 70, Y: 10}},
	{Name: "Barra", Capacity: 6, Position: &models.Position{X: 10, Y: 60}},
}

// SeedDemoData fills an empty restaurant with a small menu, its ingredients and a few tables.
// Nothing is written when inventory already holds items.
func SeedDemoData(inventory InventoryService, menu MenuService, tables TableService) error {
	existing, err := inventory.ListItems()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		utils.LogDebug("Skipping demo seed, inventory already populated")
		return nil
	}

	ids := make(map[string]string, len(demoInventory))
	for _, req := range demoInventory {
		item, err := inventory.AddItem(req)
		if err != nil {
			return fmt.Errorf("seed inventory '%s': %w", req.Name, err)
		}
		ids[item.Name] = item.ID
	}

	for _, m := range demoMenu {
		req := MenuItemRequest{
			Name:       m.name,
			Price:      decimal.NewFromInt(m.price),
			Category:   m.category,
			HasWings:   m.hasWings,
			HasFries:   m.hasFries,
			MaxChoices: m.maxChoices,
		}
		if m.submenu != "" {
			key := m.submenu
			req.SubmenuKey = &key
		}
		for _, ing := range m.recipe {
			req.Recipe = append(req.Recipe, models.Ingredient{InventoryItemID: ids[ing.name], Quantity: ing.quantity})
		}
		if _, err := menu.CreateMenuItem(req); err != nil {
			return fmt.Errorf("seed menu item '%s': %w", m.name, err)
		}
	}

	for _, t := range demoTables {
		if _, err := tables.AddTable(t); err != nil {
			return fmt.Errorf("seed table '%s': %w", t.Name, err)
		}
	}

	utils.LogInfo("Demo data seeded", map[string]interface{}{
		"inventory_items": len(demoInventory),
		"menu_items":      len(demoMenu),
		"tables":          len(demoTables),
	})
	return nil
}
