package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/chocokroko/chocokroko-backend/internal/cart"
)

// Quote is the price breakdown shown on review and frozen onto the order.
type Quote struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Total          decimal.Decimal `json:"total"`
}

// BuildQuote computes the order total: cart subtotal plus the flat
// delivery charge of the destination state. The charge does not scale
// with quantity or weight.
func BuildQuote(c *cart.Cart, deliveryCharge decimal.Decimal) Quote {
	subtotal := c.Subtotal()
	return Quote{
		Subtotal:       subtotal,
		DeliveryCharge: deliveryCharge,
		Total:          subtotal.Add(deliveryCharge),
	}
}
