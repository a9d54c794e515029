// Package advisor wraps the generative AI calls used for menu copy, upsell
// suggestions, report summaries and the staff chat assistant. Every call is
// advisory: callers go through Fallback, which never returns an error.
package advisor

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrDisabled is returned by Disabled for every call.
var ErrDisabled = errors.New("advisor is disabled")

// OrderLine is one line of the order an upsell is suggested for.
type OrderLine struct {
	Name     string
	Quantity int
}

// MenuEntry is a candidate item for upsell suggestions.
type MenuEntry struct {
	Name     string
	Category string
}

// TopSeller is an item name with the units sold.
type TopSeller struct {
	Name     string
	Quantity int
}

// SalesDigest is the aggregate data a report summary is written from.
type SalesDigest struct {
	TotalRevenue           decimal.Decimal
	TotalOrders            int
	TopSellingItems        []TopSeller
	RevenueByPaymentMethod map[string]decimal.Decimal
}

// AssistantContext is the restaurant state the chat assistant may answer from.
type AssistantContext struct {
	Menu         []string // "name (price) - category"
	Tables       []string // "name (capacity) status"
	Inventory    []string // "name: stock unit"
	RevenueToday decimal.Decimal
	OrdersToday  int
}

// Advisor is an external generative service.
type Advisor interface {
	GenerateDescription(ctx context.Context, dishName string) (string, error)
	// GenerateImage returns an image reference (URL or data URI).
	GenerateImage(ctx context.Context, dishName, description string) (string, error)
	SuggestUpsell(ctx context.Context, current []OrderLine, menu []MenuEntry) ([]string, error)
	SummarizeSales(ctx context.Context, digest SalesDigest) (string, error)
	AnswerQuery(ctx context.Context, question string, ac AssistantContext) (string, error)
}

// Disabled is used when no API key is configured.
type Disabled struct{}

func (Disabled) GenerateDescription(context.Context, string) (string, error) { return "", ErrDisabled }

func (Disabled) GenerateImage(context.Context, string, string) (string, error) { return "", ErrDisabled }

func (Disabled) SuggestUpsell(context.Context, []OrderLine, []MenuEntry) ([]string, error) {
	return nil, ErrDisabled
}

func (Disabled) SummarizeSales(context.Context, SalesDigest) (string, error) { return "", ErrDisabled }

func (Disabled) AnswerQuery(context.Context, string, AssistantContext) (string, error) {
	return "", ErrDisabled
}
