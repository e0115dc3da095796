package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
	"github.com/chocokroko/chocokroko-backend/pkg/enums"
)

// ItemDTO is a frozen order line.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SizeName    string          `json:"size_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderDTO is the API shape for a submitted order.
type OrderDTO struct {
	ID             uuid.UUID         `json:"id"`
	OrderNumber    string            `json:"order_number"`
	CustomerName   string            `json:"customer_name"`
	CustomerEmail  string            `json:"customer_email"`
	CustomerPhone  string            `json:"customer_phone"`
	AddressLine1   string            `json:"address_line_1"`
	AddressLine2   *string           `json:"address_line_2,omitempty"`
	City           string            `json:"city"`
	StateID        uuid.UUID         `json:"state_id"`
	StateName      string            `json:"state_name,omitempty"`
	Pincode        string            `json:"pincode"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	DeliveryCharge decimal.Decimal   `json:"delivery_charge"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	Status         enums.OrderStatus `json:"status"`
	ImageURL       *string           `json:"image_url,omitempty"`
	Items          []ItemDTO         `json:"items"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ListResult carries one page of orders plus the cursor for the next one.
type ListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

func toOrderDTO(m *models.Order) *OrderDTO {
	items := make([]ItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, ItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SizeName:    item.SizeName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		})
	}
	dto := &OrderDTO{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		CustomerName:   m.CustomerName,
		CustomerEmail:  m.CustomerEmail,
		CustomerPhone:  m.CustomerPhone,
		AddressLine1:   m.AddressLine1,
		AddressLine2:   m.AddressLine2,
		City:           m.City,
		StateID:        m.StateID,
		Pincode:        m.Pincode,
		Subtotal:       m.Subtotal,
		DeliveryCharge: m.DeliveryCharge,
		TotalAmount:    m.TotalAmount,
		Status:         m.Status,
		ImageURL:       m.ImageURL,
		Items:          items,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.State != nil {
		dto.StateName = m.State.Name
	}
	return dto
}

func toOrderDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toOrderDTO(&rows[i]))
	}
	return out
}
