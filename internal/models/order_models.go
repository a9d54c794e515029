package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType determines which destination an order is bound to.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeToGo     OrderType = "to-go"
)

// IsValidOrderType checks if the provided string is a known OrderType.
func IsValidOrderType(orderType string) bool {
	switch OrderType(orderType) {
	case OrderTypeDineIn, OrderTypeDelivery, OrderTypeToGo:
		return true
	default:
		return false
	}
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether no transition may leave this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// IsValidOrderStatus checks if the provided string is a known OrderStatus.
func IsValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderStatusOpen, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// DeliveryInfo is the contact a delivery order is sent to.
type DeliveryInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ToGoInfo is the contact a to-go order is picked up by.
type ToGoInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Destination carries the fields an order type needs; exactly one part is set per order.
type Destination struct {
	TableID  *string       `json:"table_id,omitempty"`
	Delivery *DeliveryInfo `json:"delivery_info,omitempty"`
	ToGo     *ToGoInfo     `json:"to_go_info,omitempty"`
}

// Clone returns a copy that does not share pointers with d.
func (d Destination) Clone() Destination {
	var out Destination
	if d.TableID != nil {
		id := *d.TableID
		out.TableID = &id
	}
	if d.Delivery != nil {
		info := *d.Delivery
		out.Delivery = &info
	}
	if d.ToGo != nil {
		info := *d.ToGo
		out.ToGo = &info
	}
	return out
}

// Customization is the set of options chosen for one order line.
type Customization struct {
	WingSauces []Sauce  `json:"wing_sauces"`
	FrySauces  []Sauce  `json:"fry_sauces"`
	Choice     *string  `json:"choice"`
	Flavors    []string `json:"flavors"` // slot list, "" marks an empty slot
	Notes      string   `json:"notes,omitempty"`
}

// Clone returns a deep copy of the customization.
func (c Customization) Clone() Customization {
	out := Customization{
		WingSauces: append([]Sauce{}, c.WingSauces...),
		FrySauces:  append([]Sauce{}, c.FrySauces...),
		Flavors:    append([]string{}, c.Flavors...),
		Notes:      c.Notes,
	}
	if c.Choice != nil {
		choice := *c.Choice
		out.Choice = &choice
	}
	return out
}

// OrderItem is a snapshot of a MenuItem taken when it was added to an order.
type OrderItem struct {
	MenuItem
	InstanceID    string        `json:"instance_id"`
	Quantity      int           `json:"quantity"`
	Customization Customization `json:"customization"`
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone returns a deep copy of the line.
func (i OrderItem) Clone() OrderItem {
	out := i
	out.MenuItem = i.MenuItem.Clone()
	out.Customization = i.Customization.Clone()
	return out
}

// Order represents a customer order
type Order struct {
	ID          string      `json:"id"`
	OrderType   OrderType   `json:"order_type"`
	Destination Destination `json:"destination"`
	Items       []OrderItem `json:"items"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Total is the sum of price times quantity over all lines.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clone returns a deep copy of the order, items included.
func (o Order) Clone() Order {
	out := o
	out.Destination = o.Destination.Clone()
	out.Items = CloneOrderItems(o.Items)
	return out
}

// CustomerName returns the contact name for delivery and to-go orders.
func (o Order) CustomerName() string {
	switch {
	case o.Destination.Delivery != nil:
		return o.Destination.Delivery.Name
	case o.Destination.ToGo != nil:
		return o.Destination.ToGo.Name
	default:
		return ""
	}
}

// CustomerPhone returns the contact phone for delivery and to-go orders.
func (o Order) CustomerPhone() string {
	switch {
	case o.Destination.Delivery != nil:
		return o.Destination.Delivery.Phone
	case o.Destination.ToGo != nil:
		return o.Destination.ToGo.Phone
	default:
		return ""
	}
}

// CloneOrderItems deep copies a slice of order items.
func CloneOrderItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// Draft is an order still being composed at the register.
type Draft struct {
	ID        string      `json:"id"`
	OrderType OrderType   `json:"order_type"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Total is the running total shown while composing.
func (d Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := d
	out.Items = CloneOrderItems(d.Items)
	return out
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	OrderType *OrderType   `form:"order_type"`
	Status    *OrderStatus `form:"status"`
	TableID   *string      `form:"table_id"`
}
