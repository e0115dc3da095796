package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
	"github.com/chocokroko/chocokroko-backend/pkg/enums"
)

func mustCreateState(t *testing.T, tx *gorm.DB) *models.State {
	t.Helper()
	state := &models.State{
		Name:           fmt.Sprintf("Testland %s", uuid.NewString()),
		DeliveryCharge: decimal.RequireFromString("50.00"),
	}
	if err := tx.Create(state).Error; err != nil {
		t.Fatalf("create state: %v", err)
	}
	return state
}

func mustCreateCatalogProduct(t *testing.T, tx *gorm.DB) *models.Product {
	t.Helper()
	category := &models.Category{Name: fmt.Sprintf("Bars %s", uuid.NewString()), IsActive: true}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		Name:       "Dark Truffle Box",
		IsActive:   true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestRepositoryOrderFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	state := mustCreateState(t, tx)
	product := mustCreateCatalogProduct(t, tx)

	latest, err := repo.LatestOrderNumber(ctx)
	if err != nil {
		t.Fatalf("latest order number: %v", err)
	}

	order := &models.Order{
		OrderNumber:    NextOrderNumber(latest, time.Now()),
		CustomerName:   "Ada Lovelace",
		CustomerEmail:  "ada@example.com",
		CustomerPhone:  "+2348012345678",
		AddressLine1:   "12 Cocoa Street",
		City:           "Ikeja",
		StateID:        state.ID,
		Pincode:        "100001",
		Subtotal:       decimal.RequireFromString("30.00"),
		DeliveryCharge: state.DeliveryCharge,
		TotalAmount:    decimal.RequireFromString("80.00"),
		Status:         enums.OrderStatusPending,
		Items: []models.OrderItem{
			{
				ProductID:   product.ID,
				ProductName: product.Name,
				SizeName:    "250g",
				Price:       decimal.RequireFromString("15.00"),
				Quantity:    2,
				TotalPrice:  decimal.RequireFromString("30.00"),
			},
		},
	}

	created, err := repo.CreateOrder(ctx, order)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected order id to be generated")
	}

	fetched, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find order: %v", err)
	}
	if len(fetched.Items) != 1 {
		t.Fatalf("expected items preloaded, got %d", len(fetched.Items))
	}
	if fetched.State == nil || fetched.State.ID != state.ID {
		t.Fatal("expected state preloaded")
	}

	if err := repo.UpdateStatus(ctx, created.ID, enums.OrderStatusProcessing); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := repo.UpdateStatus(ctx, uuid.New(), enums.OrderStatusProcessing); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found for unknown order, got %v", err)
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	if counts[enums.OrderStatusProcessing] < 1 {
		t.Fatal("expected at least one processing order")
	}
}
