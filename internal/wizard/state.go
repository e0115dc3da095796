package wizard

import (
	"time"

	"github.com/google/uuid"

	"github.com/chocokroko/chocokroko-backend/internal/cart"
)

// Wizard steps, in order. A session starts on the customer step and
// finishes after submitting from the review step.
const (
	StepCustomer  = 1
	StepSelection = 2
	StepReview    = 3
)

// CustomerDetails is the step-one form.
type CustomerDetails struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line_1"`
	AddressLine2 *string   `json:"address_line_2,omitempty"`
	City         string    `json:"city"`
	StateID      uuid.UUID `json:"state_id"`
	Pincode      string    `json:"pincode"`
}

// Selection tracks the category/product/size drill-down on step two.
// Narrower choices are cleared whenever a broader one changes.
type Selection struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
	SizeName   string     `json:"size_name,omitempty"`
	Quantity   int        `json:"quantity"`
}

// State is the full serializable wizard session. Everything the flow
// needs between requests lives here so it can round-trip through Redis.
type State struct {
	SessionID string          `json:"session_id"`
	Step      int             `json:"step"`
	Customer  CustomerDetails `json:"customer"`
	Selection Selection       `json:"selection"`
	Cart      cart.Cart       `json:"cart"`
	ItemCount int             `json:"item_count"`
	ImageURL  *string         `json:"image_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewState starts a fresh session on the customer step.
func NewState(sessionID string, now time.Time) *State {
	return &State{
		SessionID: sessionID,
		Step:      StepCustomer,
		Selection: Selection{Quantity: 1},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetCustomer replaces the step-one details.
func (s *State) SetCustomer(c CustomerDetails) {
	s.Customer = c
}

// SetSelection applies the drill-down choices. Changing the category
// clears the product and size below it, and changing the product clears
// the size, so a stale narrower choice never survives a broader change.
func (s *State) SetSelection(next Selection) {
	if !uuidPtrEqual(s.Selection.CategoryID, next.CategoryID) {
		next.ProductID = nil
		next.SizeName = ""
	} else if !uuidPtrEqual(s.Selection.ProductID, next.ProductID) {
		next.SizeName = ""
	}
	if next.Quantity < 1 {
		next.Quantity = 1
	}
	s.Selection = next
}

// CustomerComplete reports whether every required step-one field is set.
func (s *State) CustomerComplete() bool {
	c := s.Customer
	return c.Name != "" && c.Email != "" && c.Phone != "" &&
		c.AddressLine1 != "" && c.City != "" && c.Pincode != "" &&
		c.StateID != uuid.Nil
}

// CanAdvance reports whether the current step's gate is satisfied.
func (s *State) CanAdvance() bool {
	switch s.Step {
	case StepCustomer:
		return s.CustomerComplete()
	case StepSelection:
		return !s.Cart.IsEmpty()
	default:
		return false
	}
}

// Advance moves to the next step when the gate allows it and reports
// whether the step changed. Calling it again on an unsatisfied gate is
// a no-op.
func (s *State) Advance() bool {
	if !s.CanAdvance() {
		return false
	}
	s.Step++
	return true
}

// Back moves to the previous step, keeping all entered data. Already at
// the first step it does nothing.
func (s *State) Back() bool {
	if s.Step <= StepCustomer {
		return false
	}
	s.Step--
	return true
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
