package services

import (
	"fmt"
	"strings"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
)

// Message template names.
const (
	TemplateConfirm = "confirm"
	TemplateReady   = "ready"
	TemplateOnWay   = "on_way"
)

// CustomerMessage is a prefilled message and the deep link that opens it.
type CustomerMessage struct {
	Template string `json:"template"`
	Text     string `json:"text"`
	Link     string `json:"link,omitempty"` // empty when the customer left no phone
}

// CustomerContact is an active delivery or to-go order with the messages staff can send.
type CustomerContact struct {
	Order        models.Order      `json:"order"`
	CustomerName string            `json:"customer_name"`
	Phone        string            `json:"phone"`
	HasPhone     bool              `json:"has_phone"`
	Messages     []CustomerMessage `json:"messages"`
}

// --- MessagingService Interface ---
type MessagingService interface {
	Conversations() ([]CustomerContact, error)
	OrderMessages(orderID string) (*CustomerContact, error)
}

type messagingService struct {
	orderRepo   repositories.OrderRepository
	countryCode string
}

// NewMessagingService creates a new instance of MessagingService.
func NewMessagingService(or repositories.OrderRepository, countryCode string) MessagingService {
	return &messagingService{orderRepo: or, countryCode: countryCode}
}

// Conversations lists active delivery and to-go orders, oldest first.
func (s *messagingService) Conversations() ([]CustomerContact, error) {
	orders, err := s.orderRepo.GetOrders(models.OrderFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	contacts := []CustomerContact{}
	for _, o := range orders {
		if o.Status.IsTerminal() || o.OrderType == models.OrderTypeDineIn {
			continue
		}
		contacts = append(contacts, s.contactFor(o))
	}
	return contacts, nil
}

func (s *messagingService) OrderMessages(orderID string) (*CustomerContact, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %s", ErrOrderNotFound, orderID)
	}
	if order.OrderType == models.OrderTypeDineIn {
		return nil, fmt.Errorf("%w: dine-in orders have no customer contact", ErrValidation)
	}
	contact := s.contactFor(*order)
	return &contact, nil
}

func (s *messagingService) contactFor(o models.Order) CustomerContact {
	name := o.CustomerName()
	if name == "" {
		name = "N/A"
	}
	phone := o.CustomerPhone()
	c := CustomerContact{
		Order:        o,
		CustomerName: name,
		Phone:        phone,
		HasPhone:     strings.TrimSpace(phone) != "",
	}

	templates := []string{TemplateConfirm}
	switch o.OrderType {
	case models.OrderTypeToGo:
		templates = append(templates, TemplateReady)
	case models.OrderTypeDelivery:
		templates = append(templates, TemplateOnWay)
	}
	for _, t := range templates {
		text := CustomerMessageText(t, name, o)
		msg := CustomerMessage{Template: t, Text: text}
		if c.HasPhone {
			msg.Link = utils.WhatsAppLink(phone, s.countryCode, text)
		}
		c.Messages = append(c.Messages, msg)
	}
	return c
}

// CustomerMessageText renders one of the customer message templates.
func CustomerMessageText(template, name string, o models.Order) string {
	switch template {
	case TemplateReady:
		return fmt.Sprintf("¡Buenas noticias, %s! Tu pedido de Loco Alitas está listo para que lo recojas. ¡Te esperamos! 🍗", name)
	case TemplateOnWay:
		return fmt.Sprintf("¡Hola %s! Tu pedido de Loco Alitas ya va en camino. 🛵 ¡Prepárate para disfrutar!", name)
	default:
		return fmt.Sprintf("¡Hola %s! 👋 Tu pedido en Loco Alitas ha sido confirmado. Estamos preparando todo para ti.\n\n%s",
			name, orderDetailsText(o))
	}
}

func orderDetailsText(o models.Order) string {
	var b strings.Builder
	b.WriteString("Detalles de tu pedido:\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %dx %s\n", item.Quantity, item.Name)
	}
	fmt.Fprintf(&b, "\n*Total: %s*", utils.FormatPrice(o.Total()))
	return b.String()
}
