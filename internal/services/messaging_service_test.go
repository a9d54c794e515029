package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

func TestConversations(t *testing.T) {
	env := newTestEnv(t)
	wings := env.addMenuItem(t, MenuItemRequest{Name: "Alitas", Price: price("18500")})
	t1 := env.addTable(t, "T1")
	env.dineIn(t, t1.ID, wings.ID, 1)

	lines := []OrderLineRequest{{MenuItemID: wings.ID, Quantity: 2}}
	delivery, err := env.orders.CreateOrder(CreateOrderRequest{
		OrderType:   string(models.OrderTypeDelivery),
		Destination: models.Destination{Delivery: &models.DeliveryInfo{Name: "Luis", Phone: "300 123 4567", Address: "Calle 1"}},
		Items:       lines,
	})
	if err != nil {
		t.Fatalf("CreateOrder(delivery) error = %v", err)
	}
	toGo, err := env.orders.CreateOrder(CreateOrderRequest{
		OrderType:   string(models.OrderTypeToGo),
		Destination: models.Destination{ToGo: &models.ToGoInfo{Name: "Ana"}},
		Items:       lines,
	})
	if err != nil {
		t.Fatalf("CreateOrder(to-go) error = %v", err)
	}

	svc := NewMessagingService(env.orderRepo, "57")
	contacts, err := svc.Conversations()
	if err != nil {
		t.Fatalf("Conversations() error = %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("contacts = %d, want delivery and to-go only", len(contacts))
	}

	byOrder := map[string]CustomerContact{}
	for _, c := range contacts {
		byOrder[c.Order.ID] = c
	}

	d := byOrder[delivery.ID]
	if !d.HasPhone || len(d.Messages) != 2 || d.Messages[1].Template != TemplateOnWay {
		t.Fatalf("delivery contact = %+v", d)
	}
	if !strings.HasPrefix(d.Messages[0].Link, "https://wa.me/573001234567?text=") {
		t.Errorf("confirm link = %s", d.Messages[0].Link)
	}
	if strings.Contains(d.Messages[0].Link, "+") {
		t.Errorf("spaces should be encoded as %%20: %s", d.Messages[0].Link)
	}

	g := byOrder[toGo.ID]
	if g.HasPhone || len(g.Messages) != 2 || g.Messages[1].Template != TemplateReady {
		t.Fatalf("to-go contact = %+v", g)
	}
	for _, m := range g.Messages {
		if m.Link != "" {
			t.Errorf("message without phone has link %s", m.Link)
		}
	}
}

func TestOrderMessages(t *testing.T) {
	env := newTestEnv(t)
	wings := env.addMenuItem(t, MenuItemRequest{Name: "Alitas", Price: price("18500")})
	t1 := env.addTable(t, "T1")
	dine := env.dineIn(t, t1.ID, wings.ID, 1)
	svc := NewMessagingService(env.orderRepo, "57")

	if _, err := svc.OrderMessages(dine.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("dine-in OrderMessages() error = %v, want ErrValidation", err)
	}
	if _, err := svc.OrderMessages("missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("OrderMessages(missing) error = %v, want ErrOrderNotFound", err)
	}
}

func TestCustomerMessageText(t *testing.T) {
	order := models.Order{Items: []models.OrderItem{line("Alitas", "18500", 2), line("Soda", "4000", 1)}}

	confirm := CustomerMessageText(TemplateConfirm, "Luis", order)
	for _, want := range []string{"¡Hola Luis!", "- 2x Alitas\n", "- 1x Soda\n", "*Total: $41.000*"} {
		if !strings.Contains(confirm, want) {
			t.Errorf("confirm text missing %q:\n%s", want, confirm)
		}
	}
	if !strings.Contains(CustomerMessageText(TemplateReady, "Ana", order), "listo para que lo recojas") {
		t.Error("ready text does not mention pickup")
	}
	if !strings.Contains(CustomerMessageText(TemplateOnWay, "Ana", order), "en camino") {
		t.Error("on_way text does not mention delivery")
	}
}
