// Package notifications delivers engine events to external sinks without
// blocking the code that raised them.
package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Severity mirrors the toast levels shown to staff.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Kind identifies what happened.
type Kind string

const (
	KindOrderCreated       Kind = "order_created"
	KindOrderReady         Kind = "order_ready"
	KindOrderCancelled     Kind = "order_cancelled"
	KindSaleCompleted      Kind = "sale_completed"
	KindLowStock           Kind = "low_stock"
	KindStockShortfall     Kind = "stock_shortfall"
	KindStockAdjusted      Kind = "stock_adjusted"
	KindInventoryItemAdded Kind = "inventory_item_added"
	KindMenuItemSaved      Kind = "menu_item_saved"
	KindMenuItemDeleted    Kind = "menu_item_deleted"
	KindTableSaved         Kind = "table_saved"
	KindTableDeleted       Kind = "table_deleted"
	KindTableStatusChanged Kind = "table_status_changed"
)

// Event is a single notification.
type Event struct {
	ID         string                 `json:"id"`
	Kind       Kind                   `json:"kind"`
	Severity   Severity               `json:"severity"`
	Message    string                 `json:"message"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// NewEvent builds an Event stamped with a fresh id and the current time.
func NewEvent(kind Kind, severity Severity, message string, payload map[string]interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		Severity:   severity,
		Message:    message,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}

// Publisher is what services depend on. Publish must not block.
type Publisher interface {
	Publish(event Event)
}

// Sink is a delivery target for events.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
