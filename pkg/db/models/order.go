package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chocokroko/chocokroko-backend/pkg/enums"
)

// Order is a submitted purchase with its captured delivery address and
// price breakdown. Money columns are frozen at submission time.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber    string            `gorm:"column:order_number;type:text;not null;uniqueIndex:idx_orders_order_number"`
	CustomerName   string            `gorm:"column:customer_name;type:text;not null"`
	CustomerEmail  string            `gorm:"column:customer_email;type:text;not null"`
	CustomerPhone  string            `gorm:"column:customer_phone;type:text;not null"`
	AddressLine1   string            `gorm:"column:address_line_1;type:text;not null"`
	AddressLine2   *string           `gorm:"column:address_line_2;type:text"`
	City           string            `gorm:"column:city;type:text;not null"`
	StateID        uuid.UUID         `gorm:"column:state_id;type:uuid;not null"`
	Pincode        string            `gorm:"column:pincode;type:text;not null"`
	Subtotal       decimal.Decimal   `gorm:"column:subtotal;type:numeric(10,2);not null"`
	DeliveryCharge decimal.Decimal   `gorm:"column:delivery_charge;type:numeric(10,2);not null"`
	TotalAmount    decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:pending"`
	ImageURL       *string           `gorm:"column:image_url;type:text"`
	State          *State            `gorm:"foreignKey:StateID"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
