package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/chocokroko/chocokroko-backend/internal/cart"
	"github.com/chocokroko/chocokroko-backend/internal/pricing"
	"github.com/chocokroko/chocokroko-backend/pkg/db"
	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
	"github.com/chocokroko/chocokroko-backend/pkg/enums"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
	"github.com/chocokroko/chocokroko-backend/pkg/logger"
	"github.com/chocokroko/chocokroko-backend/pkg/pagination"
)

const (
	allocRetries  = 3
	allocBackoff  = 25 * time.Millisecond
	orderNumIndex = "idx_orders_order_number"
)

// Service exposes order submission and back-office order management.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	CountsByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
}

// CustomerInput captures the delivery contact details frozen onto the order.
type CustomerInput struct {
	Name         string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	StateID      uuid.UUID
	Pincode      string
}

// SubmitInput is everything needed to turn a finished wizard into an order.
type SubmitInput struct {
	Customer CustomerInput
	Cart     cart.Cart
	ImageURL *string
}

// ListInput holds filters for the back-office order list.
type ListInput struct {
	Status *enums.OrderStatus
	Limit  int
	Cursor string
}

type stateLoader interface {
	FindStateByID(ctx context.Context, id uuid.UUID) (*models.State, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	states   stateLoader
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs an order service instance.
func NewService(repo *Repository, dbClient *db.Client, states stateLoader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if states == nil {
		return nil, fmt.Errorf("state loader required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		states:   states,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Submit freezes the cart into an order. The order row and all of its
// items are written in one transaction so a failure never leaves a
// headless order behind. Order number collisions from concurrent
// submissions are retried with a fresh allocation.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*OrderDTO, error) {
	if err := validateCustomer(input.Customer); err != nil {
		return nil, err
	}
	if input.Cart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	state, err := s.states.FindStateByID(ctx, input.Customer.StateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery state does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load state")
	}

	quote := pricing.BuildQuote(&input.Cart, state.DeliveryCharge)

	var created *models.Order
	backoff := retry.WithMaxRetries(allocRetries, retry.NewConstant(allocBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		latest, err := s.repo.LatestOrderNumber(ctx)
		if err != nil {
			return err
		}
		order := buildOrder(input, quote, NextOrderNumber(latest, s.now()))

		txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
			_, err := s.repo.WithTx(tx).CreateOrder(ctx, order)
			return err
		})
		if txErr != nil {
			if db.IsUniqueViolation(txErr, orderNumIndex) {
				if s.logg != nil {
					s.logg.Warn(ctx, "order number collision, retrying allocation")
				}
				return retry.RetryableError(txErr)
			}
			return txErr
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submit order")
	}

	if s.logg != nil {
		logCtx := s.logg.WithOrderNumber(ctx, created.OrderNumber)
		s.logg.Info(logCtx, "order submitted")
	}

	full, err := s.repo.FindByID(ctx, created.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload order")
	}
	return toOrderDTO(full), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get order")
	}
	return toOrderDTO(order), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	rows, err := s.repo.List(ctx, input.Status, cursor, pagination.LimitWithBuffer(input.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	result := &ListResult{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &next
	}
	result.Orders = toOrderDTOs(rows)
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	return s.Get(ctx, id)
}

func (s *service) CountsByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count orders")
	}
	// every status is present in the response, even at zero
	for _, status := range enums.OrderStatuses() {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

func buildOrder(input SubmitInput, quote pricing.Quote, orderNumber string) *models.Order {
	items := make([]models.OrderItem, 0, len(input.Cart.Lines))
	for _, line := range input.Cart.Lines {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			SizeName:    line.SizeName,
			Price:       line.UnitPrice,
			Quantity:    line.Quantity,
			TotalPrice:  line.LineTotal(),
		})
	}
	return &models.Order{
		OrderNumber:    orderNumber,
		CustomerName:   strings.TrimSpace(input.Customer.Name),
		CustomerEmail:  strings.TrimSpace(input.Customer.Email),
		CustomerPhone:  strings.TrimSpace(input.Customer.Phone),
		AddressLine1:   strings.TrimSpace(input.Customer.AddressLine1),
		AddressLine2:   input.Customer.AddressLine2,
		City:           strings.TrimSpace(input.Customer.City),
		StateID:        input.Customer.StateID,
		Pincode:        strings.TrimSpace(input.Customer.Pincode),
		Subtotal:       quote.Subtotal,
		DeliveryCharge: quote.DeliveryCharge,
		TotalAmount:    quote.Total,
		Status:         enums.OrderStatusPending,
		ImageURL:       input.ImageURL,
		Items:          items,
	}
}

func validateCustomer(c CustomerInput) error {
	required := []struct {
		field string
		value string
	}{
		{"customer_name", c.Name},
		{"customer_email", c.Email},
		{"customer_phone", c.Phone},
		{"address_line_1", c.AddressLine1},
		{"city", c.City},
		{"pincode", c.Pincode},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, item.field+" is required").
				WithDetails(map[string]any{"field": item.field})
		}
	}
	if c.StateID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "state_id is required")
	}
	return nil
}
