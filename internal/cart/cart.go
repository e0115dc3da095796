package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is a product/size pairing with a quantity and its frozen unit price.
type Line struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SizeName    string          `json:"size_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// LineTotal returns unit price multiplied by quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the wizard's pending lines. Lines are keyed by product and
// size: adding an existing pairing merges quantities instead of appending.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges the line into the cart. Quantities below one leave the cart
// untouched.
func (c *Cart) Add(line Line) {
	if line.Quantity < 1 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID && c.Lines[i].SizeName == line.SizeName {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// UpdateQuantity replaces the quantity for the matching line. Quantities
// below one are rejected and leave the cart untouched; dropping a line
// is Remove's job.
func (c *Cart) UpdateQuantity(productID uuid.UUID, sizeName string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].SizeName == sizeName {
			c.Lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Remove drops the matching line and reports whether one was found.
func (c *Cart) Remove(productID uuid.UUID, sizeName string) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].SizeName == sizeName {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Subtotal sums every line total.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
