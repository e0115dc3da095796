package wizard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chocokroko/chocokroko-backend/internal/orders"
	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
)

type memoryStore struct {
	sessions    map[string]State
	printPasses map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions:    map[string]State{},
		printPasses: map[string]bool{},
	}
}

func (m *memoryStore) Save(_ context.Context, state *State) error {
	m.sessions[state.SessionID] = *state
	return nil
}

func (m *memoryStore) Load(_ context.Context, sessionID string) (*State, error) {
	state, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := state
	return &copied, nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

func (m *memoryStore) SavePrintPass(_ context.Context, orderID string) error {
	m.printPasses[orderID] = true
	return nil
}

func (m *memoryStore) HasPrintPass(_ context.Context, orderID string) (bool, error) {
	return m.printPasses[orderID], nil
}

type stubCatalog struct {
	product *models.Product
	size    *models.ProductSize
}

func (s *stubCatalog) FindProductByID(context.Context, uuid.UUID) (*models.Product, error) {
	return s.product, nil
}

func (s *stubCatalog) FindSize(context.Context, uuid.UUID, string) (*models.ProductSize, error) {
	return s.size, nil
}

type stubOrders struct {
	submitted *orders.SubmitInput
	result    *orders.OrderDTO
}

func (s *stubOrders) Submit(_ context.Context, input orders.SubmitInput) (*orders.OrderDTO, error) {
	s.submitted = &input
	return s.result, nil
}

func (s *stubOrders) Get(context.Context, uuid.UUID) (*orders.OrderDTO, error) {
	return s.result, nil
}

func newTestService(t *testing.T, store Store, orderSvc orderSubmitter) Service {
	t.Helper()
	productID := uuid.New()
	catalog := &stubCatalog{
		product: &models.Product{
			ID:       productID,
			Name:     "Dark Truffle Box",
			IsActive: true,
		},
		size: &models.ProductSize{
			ProductID: productID,
			SizeName:  "250g",
			Price:     decimal.RequireFromString("15.00"),
		},
	}
	svc, err := NewService(store, catalog, orderSvc, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestWizardWalkThrough(t *testing.T) {
	store := newMemoryStore()
	orderSvc := &stubOrders{result: &orders.OrderDTO{ID: uuid.New(), OrderNumber: "ORD-20240601-000001"}}
	svc := newTestService(t, store, orderSvc)
	ctx := context.Background()

	state, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	sid := state.SessionID

	if _, err := svc.Advance(ctx, sid); err == nil {
		t.Fatal("advance must fail before customer details")
	}

	state, err = svc.SetCustomer(ctx, sid, CustomerInput{
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		Phone:        "+2348012345678",
		AddressLine1: "12 Cocoa Street",
		City:         "Ikeja",
		StateID:      uuid.NewString(),
		Pincode:      "100001",
	})
	if err != nil {
		t.Fatalf("set customer: %v", err)
	}

	if state, err = svc.Advance(ctx, sid); err != nil || state.Step != StepSelection {
		t.Fatalf("advance to selection failed: %v (step %d)", err, state.Step)
	}

	if _, err := svc.Advance(ctx, sid); err == nil {
		t.Fatal("advance must fail with an empty cart")
	}

	add := AddItemInput{ProductID: uuid.NewString(), SizeName: "250g", Quantity: 2}
	if state, err = svc.AddItem(ctx, sid, add); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if state, err = svc.AddItem(ctx, sid, add); err != nil {
		t.Fatalf("add item again: %v", err)
	}
	if len(state.Cart.Lines) != 1 || state.Cart.Lines[0].Quantity != 4 {
		t.Fatalf("expected one merged line with quantity 4, got %+v", state.Cart.Lines)
	}
	if !state.Cart.Lines[0].UnitPrice.Equal(decimal.RequireFromString("15.00")) {
		t.Fatal("cart must carry the catalogue price")
	}
	if state.ItemCount != 4 {
		t.Fatalf("expected item count 4, got %d", state.ItemCount)
	}

	if state, err = svc.Advance(ctx, sid); err != nil || state.Step != StepReview {
		t.Fatalf("advance to review failed: %v", err)
	}

	order, err := svc.Submit(ctx, sid)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if orderSvc.submitted == nil || orderSvc.submitted.Cart.ItemCount() != 4 {
		t.Fatal("submit must pass the cart through")
	}
	if _, ok := store.sessions[sid]; ok {
		t.Fatal("session must be cleared after submit")
	}
	if !store.printPasses[orderSvc.result.ID.String()] {
		t.Fatal("print pass must be issued after submit")
	}

	if _, err := svc.PrintView(ctx, order.ID); err != nil {
		t.Fatalf("print view: %v", err)
	}
	if _, err := svc.PrintView(ctx, uuid.New()); err == nil {
		t.Fatal("print view without a pass must fail")
	}
}

func TestWizardBackKeepsData(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, store, &stubOrders{result: &orders.OrderDTO{ID: uuid.New()}})
	ctx := context.Background()

	state, _ := svc.Start(ctx)
	sid := state.SessionID

	if _, err := svc.SetCustomer(ctx, sid, CustomerInput{
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		Phone:        "+2348012345678",
		AddressLine1: "12 Cocoa Street",
		City:         "Ikeja",
		StateID:      uuid.NewString(),
		Pincode:      "100001",
	}); err != nil {
		t.Fatalf("set customer: %v", err)
	}
	if _, err := svc.Advance(ctx, sid); err != nil {
		t.Fatalf("advance: %v", err)
	}

	state, err := svc.Back(ctx, sid)
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if state.Step != StepCustomer || state.Customer.Name != "Ada Lovelace" {
		t.Fatal("back must keep the customer details")
	}

	// back on the first step stays put
	if state, err = svc.Back(ctx, sid); err != nil || state.Step != StepCustomer {
		t.Fatalf("back on first step: %v (step %d)", err, state.Step)
	}
}

func TestWizardSessionNotFound(t *testing.T) {
	svc := newTestService(t, newMemoryStore(), &stubOrders{})
	_, err := svc.Get(context.Background(), "missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWizardItemOperations(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, store, &stubOrders{})
	ctx := context.Background()

	state, _ := svc.Start(ctx)
	sid := state.SessionID

	if _, err := svc.AddItem(ctx, sid, AddItemInput{ProductID: uuid.NewString(), SizeName: "250g", Quantity: 0}); err == nil {
		t.Fatal("quantity below one must be rejected")
	}
	if _, err := svc.AddItem(ctx, sid, AddItemInput{ProductID: uuid.NewString(), SizeName: "250g", Quantity: 3}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	state, err := svc.UpdateItem(ctx, sid, 0, 5)
	if err != nil || state.Cart.Lines[0].Quantity != 5 {
		t.Fatalf("update item: %v", err)
	}
	if state.ItemCount != 5 {
		t.Fatalf("expected item count 5, got %d", state.ItemCount)
	}
	if _, err := svc.UpdateItem(ctx, sid, 0, 0); err == nil {
		t.Fatal("update to quantity below one must be rejected")
	}
	if state, err = svc.Get(ctx, sid); err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if len(state.Cart.Lines) != 1 || state.Cart.Lines[0].Quantity != 5 {
		t.Fatalf("expected cart unchanged after rejected update, got %+v", state.Cart.Lines)
	}
	if _, err := svc.UpdateItem(ctx, sid, 7, 2); err == nil {
		t.Fatal("out of range index must fail")
	}

	if state, err = svc.RemoveItem(ctx, sid, 0); err != nil || !state.Cart.IsEmpty() {
		t.Fatalf("remove item: %v", err)
	}
	if state.ItemCount != 0 {
		t.Fatalf("expected item count 0, got %d", state.ItemCount)
	}
	if _, err := svc.RemoveItem(ctx, sid, 0); err == nil {
		t.Fatal("removing from an empty cart must fail")
	}
}
