package services

import (
	"fmt"
	"strings"
	"time"

	"newpack/internal/models"
	"newpack/pkg/format"

	"github.com/shopspring/decimal"
)

// EmailContact is the person the sales team should call back about the order.
type EmailContact struct {
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
}

// EmailAddress is the delivery address block of an order email.
type EmailAddress struct {
	CEP          string  `json:"cep"`
	Street       string  `json:"street"`
	Number       int     `json:"number"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Neighborhood *string `json:"neighborhood"`
	Complement   *string `json:"complement"`
	Freight      string  `json:"freight"`
}

// EmailProduct is one line of the product breakdown.
type EmailProduct struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Toughness    *string         `json:"toughness"`
	Dimension    *string         `json:"dimension"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	UnitQuantity *int            `json:"unit_quantity"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	FullPrice    string          `json:"full_price"`
}

// OrderEmail is the payload rendered into the order detail email and returned to the caller.
type OrderEmail struct {
	OrderID          string         `json:"id_pedido"`
	OrderNumber      int            `json:"numero_pedido"`
	OrderDate        string         `json:"data_pedido"`
	Status           string         `json:"status_pedido"`
	Description      *string        `json:"descricao_pedido"`
	Installments     int            `json:"parcelas_pedido"`
	InstallmentValue string         `json:"valor_parcelas_pedido"`
	Total            string         `json:"preco_total_pedido"`
	ClientID         string         `json:"id_cliente"`
	ClientName       string         `json:"apelido_cliente"`
	ClientFullName   string         `json:"nome_cliente"`
	Contact          EmailContact   `json:"infosClient"`
	Address          EmailAddress   `json:"infosAddress"`
	Products         []EmailProduct `json:"products"`
	HasNotification  bool           `json:"hasNotification"`
}

// ConfirmationEmail is sent to the client once the order is completed.
type ConfirmationEmail struct {
	OrderID     string `json:"order_id"`
	OrderNumber int    `json:"order_number"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}

var errNoActiveAddress = validationError("Address not found", "Client does not have an active address")

// NotificationComposer turns a loaded order into notification payloads.
// It performs no I/O.
type NotificationComposer struct {
	loc *time.Location
}

// NewNotificationComposer creates a composer that prints dates in loc.
func NewNotificationComposer(loc *time.Location) *NotificationComposer {
	if loc == nil {
		loc = time.UTC
	}
	return &NotificationComposer{loc: loc}
}

// OrderEmail needs the order with its client, the client's active address and
// every line item with its product.
func (c *NotificationComposer) OrderEmail(order *models.Order, contact EmailContact, hasNotification bool) (*OrderEmail, error) {
	if order.Client == nil {
		return nil, errNoActiveAddress
	}
	address, ok := activeAddress(order.Client.Addresses)
	if !ok {
		return nil, errNoActiveAddress
	}

	total := decimal.Zero
	products := make([]EmailProduct, 0, len(order.Details))
	for _, d := range order.Details {
		total = total.Add(d.FullPrice)
		if d.Product == nil {
			continue
		}
		products = append(products, EmailProduct{
			ID:           d.Product.ID,
			Name:         d.Product.Name,
			Toughness:    d.Product.Toughness,
			Dimension:    d.Product.Dimension,
			Description:  d.Product.Description,
			Type:         d.Product.Type,
			Category:     d.Product.Category,
			Quantity:     d.Quantity,
			UnitQuantity: d.Product.UnitQuantity,
			UnitValue:    d.Product.UnitValue,
			FullPrice:    format.Currency(d.FullPrice),
		})
	}

	installments := order.Installment
	installmentValue := total
	if installments > 0 {
		installmentValue = total.Div(decimal.NewFromInt(int64(installments)))
	}

	return &OrderEmail{
		OrderID:          order.ID,
		OrderNumber:      order.OrderNumber,
		OrderDate:        format.Date(order.OrderDate, c.loc),
		Status:           order.Status,
		Description:      order.Description,
		Installments:     installments,
		InstallmentValue: format.Currency(installmentValue),
		Total:            format.Currency(total),
		ClientID:         order.ClientID,
		ClientName:       order.Client.Name,
		ClientFullName:   order.Client.FullName,
		Contact:          contact,
		Address: EmailAddress{
			CEP:          format.CEP(address.CEP),
			Street:       address.Street,
			Number:       address.Number,
			City:         address.City,
			State:        address.State,
			Neighborhood: address.Neighborhood,
			Complement:   address.Complement,
			Freight:      address.Freight,
		},
		Products:        products,
		HasNotification: hasNotification,
	}, nil
}

// OrderMessage is the WhatsApp text announcing a new order to the sales group.
func (c *NotificationComposer) OrderMessage(order *models.Order) string {
	var b strings.Builder
	b.WriteString("🔔 *NOVO PEDIDO* 🔔\n\n")
	fmt.Fprintf(&b, "📦 *Pedido Nº:* %s\n", order.ID)
	if order.Client != nil {
		fmt.Fprintf(&b, "👥 *Cliente:* %s\n", order.Client.Name)
	}
	if order.Description != nil && *order.Description != "" {
		fmt.Fprintf(&b, "📝 *Descrição:* %s\n", *order.Description)
	}
	b.WriteString("\n*PRODUTOS:*\n")
	for _, d := range order.Details {
		if d.Product == nil {
			continue
		}
		fmt.Fprintf(&b, "➡️ ID: %d | %s | Dimensão: %s | ShoreA: %s | Qtd: %d\n",
			d.Product.ID, d.Product.Name, orNA(d.Product.Dimension), orNA(d.Product.Toughness), d.Quantity)
	}
	b.WriteString("\n💬 *Mais informações disponíveis no email*")
	return b.String()
}

// ConfirmationEmail needs the order with its client.
func (c *NotificationComposer) ConfirmationEmail(order *models.Order) (*ConfirmationEmail, error) {
	if order.Client == nil || order.Client.Email == nil || *order.Client.Email == "" {
		return nil, validationError("Client email not found", "Client does not have an email")
	}
	return &ConfirmationEmail{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		ClientName:  order.Client.Name,
		ClientEmail: *order.Client.Email,
	}, nil
}

func activeAddress(addresses []models.Address) (models.Address, bool) {
	for _, a := range addresses {
		if a.Active {
			return a, true
		}
	}
	return models.Address{}, false
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
