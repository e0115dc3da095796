package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chocokroko/chocokroko-backend/internal/cart"
	"github.com/chocokroko/chocokroko-backend/internal/orders"
	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
	"github.com/chocokroko/chocokroko-backend/pkg/logger"
)

// Service drives the multi-step order wizard. Every operation loads the
// session, applies one transition and writes the session back, so the
// flow survives page reloads on the client side.
type Service interface {
	Start(ctx context.Context) (*State, error)
	Get(ctx context.Context, sessionID string) (*State, error)
	SetCustomer(ctx context.Context, sessionID string, input CustomerInput) (*State, error)
	SetSelection(ctx context.Context, sessionID string, input SelectionInput) (*State, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*State, error)
	UpdateItem(ctx context.Context, sessionID string, index, quantity int) (*State, error)
	RemoveItem(ctx context.Context, sessionID string, index int) (*State, error)
	SetImage(ctx context.Context, sessionID string, imageURL *string) (*State, error)
	Advance(ctx context.Context, sessionID string) (*State, error)
	Back(ctx context.Context, sessionID string) (*State, error)
	Submit(ctx context.Context, sessionID string) (*orders.OrderDTO, error)
	PrintView(ctx context.Context, orderID uuid.UUID) (*orders.OrderDTO, error)
}

// CustomerInput is the step-one form payload.
type CustomerInput struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone" validate:"required"`
	AddressLine1 string  `json:"address_line_1" validate:"required"`
	AddressLine2 *string `json:"address_line_2"`
	City         string  `json:"city" validate:"required"`
	StateID      string  `json:"state_id" validate:"required,uuid"`
	Pincode      string  `json:"pincode" validate:"required"`
}

// SelectionInput is the step-two drill-down payload.
type SelectionInput struct {
	CategoryID *string `json:"category_id" validate:"omitempty,uuid"`
	ProductID  *string `json:"product_id" validate:"omitempty,uuid"`
	SizeName   string  `json:"size_name"`
	Quantity   int     `json:"quantity"`
}

// AddItemInput adds one product/size pairing to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	SizeName  string `json:"size_name" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type catalogReader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindSize(ctx context.Context, productID uuid.UUID, sizeName string) (*models.ProductSize, error)
}

type orderSubmitter interface {
	Submit(ctx context.Context, input orders.SubmitInput) (*orders.OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*orders.OrderDTO, error)
}

type service struct {
	store   Store
	catalog catalogReader
	orders  orderSubmitter
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs the wizard service.
func NewService(store Store, catalog catalogReader, orderSvc orderSubmitter, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("wizard store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	return &service{
		store:   store,
		catalog: catalog,
		orders:  orderSvc,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (s *service) Start(ctx context.Context) (*State, error) {
	state := NewState(uuid.NewString(), s.now())
	if err := s.store.Save(ctx, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start wizard session")
	}
	if s.logg != nil {
		s.logg.Info(ctx, "wizard session started")
	}
	return state, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*State, error) {
	return s.load(ctx, sessionID)
}

func (s *service) SetCustomer(ctx context.Context, sessionID string, input CustomerInput) (*State, error) {
	stateID, err := uuid.Parse(input.StateID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state_id must be a valid uuid")
	}
	return s.mutate(ctx, sessionID, func(state *State) error {
		state.SetCustomer(CustomerDetails{
			Name:         strings.TrimSpace(input.Name),
			Email:        strings.TrimSpace(input.Email),
			Phone:        strings.TrimSpace(input.Phone),
			AddressLine1: strings.TrimSpace(input.AddressLine1),
			AddressLine2: input.AddressLine2,
			City:         strings.TrimSpace(input.City),
			StateID:      stateID,
			Pincode:      strings.TrimSpace(input.Pincode),
		})
		return nil
	})
}

func (s *service) SetSelection(ctx context.Context, sessionID string, input SelectionInput) (*State, error) {
	next := Selection{SizeName: strings.TrimSpace(input.SizeName), Quantity: input.Quantity}
	if input.CategoryID != nil {
		id, err := uuid.Parse(*input.CategoryID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category_id must be a valid uuid")
		}
		next.CategoryID = &id
	}
	if input.ProductID != nil {
		id, err := uuid.Parse(*input.ProductID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id must be a valid uuid")
		}
		next.ProductID = &id
	}
	return s.mutate(ctx, sessionID, func(state *State) error {
		state.SetSelection(next)
		return nil
	})
}

// AddItem resolves the product and size against the catalogue so the
// cart only ever carries server-verified names and prices.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*State, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id must be a valid uuid")
	}

	product, err := s.catalog.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	size, err := s.catalog.FindSize(ctx, productID, strings.TrimSpace(input.SizeName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "size does not exist for this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product size")
	}

	return s.mutate(ctx, sessionID, func(state *State) error {
		state.Cart.Add(cart.Line{
			ProductID:   product.ID,
			ProductName: product.Name,
			SizeName:    size.SizeName,
			UnitPrice:   size.Price,
			Quantity:    input.Quantity,
		})
		return nil
	})
}

func (s *service) UpdateItem(ctx context.Context, sessionID string, index, quantity int) (*State, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	return s.mutate(ctx, sessionID, func(state *State) error {
		if index < 0 || index >= len(state.Cart.Lines) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		line := state.Cart.Lines[index]
		state.Cart.UpdateQuantity(line.ProductID, line.SizeName, quantity)
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, index int) (*State, error) {
	return s.mutate(ctx, sessionID, func(state *State) error {
		if index < 0 || index >= len(state.Cart.Lines) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		line := state.Cart.Lines[index]
		state.Cart.Remove(line.ProductID, line.SizeName)
		return nil
	})
}

func (s *service) SetImage(ctx context.Context, sessionID string, imageURL *string) (*State, error) {
	return s.mutate(ctx, sessionID, func(state *State) error {
		state.ImageURL = imageURL
		return nil
	})
}

func (s *service) Advance(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, func(state *State) error {
		if state.Step >= StepReview {
			return pkgerrors.New(pkgerrors.CodeValidation, "already on the final step")
		}
		if !state.Advance() {
			switch state.Step {
			case StepCustomer:
				return pkgerrors.New(pkgerrors.CodeValidation, "customer details are incomplete")
			default:
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
		}
		return nil
	})
}

func (s *service) Back(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, func(state *State) error {
		state.Back()
		return nil
	})
}

// Submit turns the finished session into an order, clears the session
// and issues a short-lived print pass for the confirmation view.
func (s *service) Submit(ctx context.Context, sessionID string) (*orders.OrderDTO, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step != StepReview {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wizard is not on the review step")
	}

	order, err := s.orders.Submit(ctx, orders.SubmitInput{
		Customer: orders.CustomerInput{
			Name:         state.Customer.Name,
			Email:        state.Customer.Email,
			Phone:        state.Customer.Phone,
			AddressLine1: state.Customer.AddressLine1,
			AddressLine2: state.Customer.AddressLine2,
			City:         state.Customer.City,
			StateID:      state.Customer.StateID,
			Pincode:      state.Customer.Pincode,
		},
		Cart:     state.Cart,
		ImageURL: state.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.SavePrintPass(ctx, order.ID.String()); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to issue print pass")
	}
	if err := s.store.Delete(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to clear wizard session")
	}
	return order, nil
}

// PrintView returns the order for the confirmation/print page, but only
// while the print pass issued at submission is still alive.
func (s *service) PrintView(ctx context.Context, orderID uuid.UUID) (*orders.OrderDTO, error) {
	ok, err := s.store.HasPrintPass(ctx, orderID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check print pass")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "print view expired")
	}
	return s.orders.Get(ctx, orderID)
}

func (s *service) load(ctx context.Context, sessionID string) (*State, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wizard session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wizard session")
	}
	return state, nil
}

func (s *service) mutate(ctx context.Context, sessionID string, fn func(*State) error) (*State, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}
	state.ItemCount = state.Cart.ItemCount()
	state.UpdatedAt = s.now()
	if err := s.store.Save(ctx, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wizard session")
	}
	return state, nil
}
