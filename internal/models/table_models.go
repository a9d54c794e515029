package models

import "time"

// TableStatus defines the type for table statuses
type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
	TableStatusReserved  TableStatus = "reserved"
	TableStatusCleaning  TableStatus = "cleaning"
)

// IsValidTableStatus checks if the provided status string is a valid TableStatus.
func IsValidTableStatus(status string) bool {
	switch TableStatus(status) {
	case TableStatusAvailable,
		TableStatusOccupied,
		TableStatusReserved,
		TableStatusCleaning:
		return true
	default:
		return false
	}
}

// Position places a table on the floor map.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Table represents a physical table in the restaurant
type Table struct {
	ID        string      `json:"id"`
	Name      string      `json:"name" binding:"required"`
	Capacity  int         `json:"capacity"`
	Status    TableStatus `json:"status"`
	Position  *Position   `json:"position,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Clone returns a copy that does not share the position pointer.
func (t Table) Clone() Table {
	out := t
	if t.Position != nil {
		p := *t.Position
		out.Position = &p
	}
	return out
}
