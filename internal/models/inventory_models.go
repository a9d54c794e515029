package models

import "time"

// InventoryUnit is the unit an ingredient's stock is counted in.
type InventoryUnit string

const (
	UnitKilogram   InventoryUnit = "kg"
	UnitGram       InventoryUnit = "g"
	UnitLiter      InventoryUnit = "L"
	UnitMilliliter InventoryUnit = "ml"
	UnitCount      InventoryUnit = "unit"
)

// IsValidInventoryUnit checks if the provided unit is one of the supported units.
func IsValidInventoryUnit(unit string) bool {
	switch InventoryUnit(unit) {
	case UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitCount:
		return true
	default:
		return false
	}
}

// InventoryItem represents an ingredient kept in stock.
type InventoryItem struct {
	ID             string        `json:"id"`
	Name           string        `json:"name" binding:"required"`
	Stock          float64       `json:"stock"`
	Unit           InventoryUnit `json:"unit" binding:"required"`
	CostPerUnit    float64       `json:"cost_per_unit"`
	AlertThreshold float64       `json:"alert_threshold"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// IsLowStock reports whether the stock is at or below the alert threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Stock <= i.AlertThreshold
}

// StockAdjustMode selects how AdjustStock interprets its value.
type StockAdjustMode string

const (
	AdjustModeAdd StockAdjustMode = "add"
	AdjustModeSet StockAdjustMode = "set"
)

// MovementType classifies an InventoryMovement.
type MovementType string

const (
	MovementTypeSale       MovementType = "sale"
	MovementTypeAdjustment MovementType = "adjustment"
	MovementTypeSet        MovementType = "set"
	MovementTypeInitial    MovementType = "initial"
)

// InventoryMovement represents a change in stock for an inventory item.
// Quantity is the change actually applied after clamping, Requested is what was asked for.
type InventoryMovement struct {
	ID              string       `json:"id"`
	InventoryItemID string       `json:"inventory_item_id"`
	MovementType    MovementType `json:"movement_type"`
	Requested       float64      `json:"requested"`
	Quantity        float64      `json:"quantity"`
	PreviousStock   float64      `json:"previous_stock"`
	NewStock        float64      `json:"new_stock"`
	Reference       *string      `json:"reference,omitempty"` // e.g. the sale id
	Reason          *string      `json:"reason,omitempty"`
	MovementDate    time.Time    `json:"movement_date"`
}

// MovementFilters narrows the movement listing.
type MovementFilters struct {
	InventoryItemID *string       `form:"inventory_item_id"`
	MovementType    *MovementType `form:"movement_type"`
	Reference       *string       `form:"reference"`
}
