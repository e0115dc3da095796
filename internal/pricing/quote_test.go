package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chocokroko/chocokroko-backend/internal/cart"
)

func TestBuildQuote(t *testing.T) {
	var c cart.Cart
	c.Add(cart.Line{
		ProductID: uuid.New(),
		SizeName:  "250g",
		UnitPrice: decimal.RequireFromString("15.00"),
		Quantity:  2,
	})
	c.Add(cart.Line{
		ProductID: uuid.New(),
		SizeName:  "500g",
		UnitPrice: decimal.RequireFromString("25.00"),
		Quantity:  1,
	})

	quote := BuildQuote(&c, decimal.RequireFromString("50.00"))

	if !quote.Subtotal.Equal(decimal.RequireFromString("55.00")) {
		t.Fatalf("expected subtotal 55.00, got %s", quote.Subtotal)
	}
	if !quote.DeliveryCharge.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected delivery charge 50.00, got %s", quote.DeliveryCharge)
	}
	if !quote.Total.Equal(decimal.RequireFromString("105.00")) {
		t.Fatalf("expected total 105.00, got %s", quote.Total)
	}
}

func TestBuildQuoteEmptyCart(t *testing.T) {
	var c cart.Cart
	quote := BuildQuote(&c, decimal.RequireFromString("30.00"))

	if !quote.Subtotal.Equal(decimal.Zero) {
		t.Fatalf("expected zero subtotal, got %s", quote.Subtotal)
	}
	if !quote.Total.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("expected total to equal delivery charge, got %s", quote.Total)
	}
}
