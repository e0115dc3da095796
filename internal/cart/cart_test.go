package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func line(productID uuid.UUID, size string, price string, qty int) Line {
	return Line{
		ProductID:   productID,
		ProductName: "Dark Truffle Box",
		SizeName:    size,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
	}
}

func TestAddMergesSameProductAndSize(t *testing.T) {
	productID := uuid.New()
	var c Cart

	c.Add(line(productID, "250g", "15.00", 1))
	c.Add(line(productID, "250g", "15.00", 2))

	if len(c.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", c.Lines[0].Quantity)
	}
}

func TestAddKeepsDistinctSizesSeparate(t *testing.T) {
	productID := uuid.New()
	var c Cart

	c.Add(line(productID, "250g", "15.00", 1))
	c.Add(line(productID, "500g", "25.00", 1))

	if len(c.Lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(c.Lines))
	}
}

func TestAddIgnoresQuantityBelowOne(t *testing.T) {
	var c Cart
	c.Add(line(uuid.New(), "250g", "15.00", 0))
	c.Add(line(uuid.New(), "250g", "15.00", -3))

	if !c.IsEmpty() {
		t.Fatal("expected cart to stay empty")
	}
}

func TestSubtotal(t *testing.T) {
	var c Cart
	c.Add(line(uuid.New(), "250g", "15.00", 2))
	c.Add(line(uuid.New(), "500g", "25.00", 1))

	want := decimal.RequireFromString("55.00")
	if !c.Subtotal().Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, c.Subtotal())
	}
}

func TestUpdateQuantity(t *testing.T) {
	productID := uuid.New()
	var c Cart
	c.Add(line(productID, "250g", "15.00", 2))

	if !c.UpdateQuantity(productID, "250g", 5) {
		t.Fatal("expected line to be found")
	}
	if c.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Lines[0].Quantity)
	}

	if c.UpdateQuantity(uuid.New(), "250g", 1) {
		t.Fatal("expected missing line to report false")
	}
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	productID := uuid.New()
	var c Cart
	c.Add(line(productID, "250g", "15.00", 2))

	if c.UpdateQuantity(productID, "250g", 0) {
		t.Fatal("expected quantity zero to be rejected")
	}
	if c.UpdateQuantity(productID, "250g", -2) {
		t.Fatal("expected negative quantity to be rejected")
	}
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 2 {
		t.Fatalf("expected cart unchanged (1 line, qty 2), got %+v", c.Lines)
	}
}

func TestRemove(t *testing.T) {
	productID := uuid.New()
	var c Cart
	c.Add(line(productID, "250g", "15.00", 1))

	if c.Remove(productID, "500g") {
		t.Fatal("expected size mismatch to report false")
	}
	if !c.Remove(productID, "250g") {
		t.Fatal("expected removal")
	}
	if !c.IsEmpty() {
		t.Fatal("expected empty cart")
	}
}

func TestItemCount(t *testing.T) {
	var c Cart
	c.Add(line(uuid.New(), "250g", "15.00", 2))
	c.Add(line(uuid.New(), "500g", "25.00", 3))

	if got := c.ItemCount(); got != 5 {
		t.Fatalf("expected item count 5, got %d", got)
	}
}
