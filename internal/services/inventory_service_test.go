package services

import (
	"errors"
	"math"
	"testing"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/notifications"
)

func TestAdjustStock_Clamping(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		mode  string
		value float64
		want  float64
	}{
		{"set negative clamps to zero", 10, "set", -5, 0},
		{"set exact", 10, "set", 3.5, 3.5},
		{"add positive", 10, "add", 2.25, 12.25},
		{"add negative within stock", 10, "add", -4, 6},
		{"add negative beyond stock", 10, "add", -40, 0},
		{"set zero", 10, "set", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			item := env.addInventory(t, "Sauce", tt.start, models.UnitLiter, 1)

			got, err := env.inventory.AdjustStock(item.ID, AdjustStockRequest{Mode: tt.mode, Value: tt.value})
			if err != nil {
				t.Fatalf("AdjustStock() error = %v", err)
			}
			if got.Stock != tt.want {
				t.Errorf("stock = %v, want %v", got.Stock, tt.want)
			}
			if stored := env.stockOf(t, item.ID); stored != tt.want {
				t.Errorf("stored stock = %v, want %v", stored, tt.want)
			}
		})
	}
}

func TestAdjustStock_Rejects(t *testing.T) {
	env := newTestEnv(t)
	item := env.addInventory(t, "Sauce", 10, models.UnitLiter, 1)

	tests := []struct {
		name    string
		id      string
		req     AdjustStockRequest
		wantErr error
	}{
		{"unknown mode", item.ID, AdjustStockRequest{Mode: "multiply", Value: 2}, ErrValidation},
		{"not a number", item.ID, AdjustStockRequest{Mode: "add", Value: math.NaN()}, ErrValidation},
		{"unknown item", "missing", AdjustStockRequest{Mode: "add", Value: 1}, ErrInventoryItemNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.inventory.AdjustStock(tt.id, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("AdjustStock() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
	if got := env.stockOf(t, item.ID); got != 10 {
		t.Errorf("stock after rejected adjustments = %v, want 10", got)
	}
}

func TestAdjustStock_RecordsMovement(t *testing.T) {
	env := newTestEnv(t)
	item := env.addInventory(t, "Sauce", 10, models.UnitLiter, 5)

	reason := "spilled"
	if _, err := env.inventory.AdjustStock(item.ID, AdjustStockRequest{Mode: "add", Value: -7, Reason: &reason}); err != nil {
		t.Fatalf("AdjustStock() error = %v", err)
	}

	movements, err := env.inventory.GetMovements(models.MovementFilters{InventoryItemID: &item.ID})
	if err != nil {
		t.Fatalf("GetMovements() error = %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("movements = %d, want initial + adjustment", len(movements))
	}
	latest := movements[0]
	if latest.MovementType != models.MovementTypeAdjustment || latest.PreviousStock != 10 || latest.NewStock != 3 {
		t.Errorf("latest movement = %+v", latest)
	}
	if latest.Reason == nil || *latest.Reason != reason {
		t.Errorf("reason = %v, want %q", latest.Reason, reason)
	}
	if movements[1].MovementType != models.MovementTypeInitial {
		t.Errorf("oldest movement type = %s, want initial", movements[1].MovementType)
	}
	if env.publisher.count(notifications.KindLowStock) != 1 {
		t.Errorf("low_stock events = %d, want 1", env.publisher.count(notifications.KindLowStock))
	}
}

func TestAdjustStock_JournalFailure(t *testing.T) {
	env := newTestEnv(t)
	item := env.addInventory(t, "Sauce", 10, models.UnitLiter, 1)
	env.journal.fail = true

	if _, err := env.inventory.AdjustStock(item.ID, AdjustStockRequest{Mode: "set", Value: 2}); !errors.Is(err, errJournalDown) {
		t.Fatalf("AdjustStock() error = %v, want journal error", err)
	}
	if got := env.stockOf(t, item.ID); got != 10 {
		t.Errorf("stock = %v, want 10", got)
	}
}

func TestDeduct(t *testing.T) {
	env := newTestEnv(t)
	item := env.addInventory(t, "Chicken", 500, models.UnitGram, 0)

	got, err := env.inventory.Deduct(item.ID, 800, "manual")
	if err != nil {
		t.Fatalf("Deduct() error = %v", err)
	}
	if got.Stock != 0 {
		t.Errorf("stock = %v, want 0", got.Stock)
	}
	if env.publisher.count(notifications.KindStockShortfall) != 1 {
		t.Errorf("expected a stock_shortfall event")
	}
	if _, err := env.inventory.Deduct(item.ID, -1, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("negative Deduct() error = %v, want ErrValidation", err)
	}
}

func TestAddItem(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		req     CreateInventoryItemRequest
		wantErr error
	}{
		{"valid", CreateInventoryItemRequest{Name: "Chicken", Stock: 5, Unit: "kg", AlertThreshold: 1}, nil},
		{"duplicate name ignores case", CreateInventoryItemRequest{Name: "chicken", Unit: "kg"}, ErrNameConflict},
		{"missing name", CreateInventoryItemRequest{Name: "  ", Unit: "kg"}, ErrValidation},
		{"unknown unit", CreateInventoryItemRequest{Name: "Oil", Unit: "gallon"}, ErrValidation},
		{"negative threshold", CreateInventoryItemRequest{Name: "Oil", Unit: "L", AlertThreshold: -1}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.inventory.AddItem(tt.req)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("AddItem() unexpected error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("AddItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	items, _ := env.inventory.ListItems()
	if len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}
}

func TestAddItem_NegativeOpeningStockClamped(t *testing.T) {
	env := newTestEnv(t)
	item := env.addInventory(t, "Ice", -3, models.UnitCount, 0)
	if item.Stock != 0 {
		t.Errorf("stock = %v, want 0", item.Stock)
	}
}

func TestLowStock(t *testing.T) {
	env := newTestEnv(t)
	env.addInventory(t, "Buns", 5, models.UnitCount, 10)
	env.addInventory(t, "Cheese", 2, models.UnitKilogram, 2)
	env.addInventory(t, "Beef", 8, models.UnitKilogram, 2)

	low, err := env.inventory.LowStock()
	if err != nil {
		t.Fatalf("LowStock() error = %v", err)
	}
	if len(low) != 2 || low[0].Name != "Buns" || low[1].Name != "Cheese" {
		t.Errorf("low stock = %+v, want Buns and Cheese", low)
	}
}
