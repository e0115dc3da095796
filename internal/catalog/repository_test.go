package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/chocokroko/chocokroko-backend/pkg/db"
	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
)

func mustCreateTestCategory(t *testing.T, tx *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{
		Name:     fmt.Sprintf("%s %s", name, uuid.NewString()),
		IsActive: true,
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, categoryID uuid.UUID, name string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: categoryID,
		Name:       name,
		IsActive:   active,
		Sizes: []models.ProductSize{
			{SizeName: "500g", Price: decimal.RequireFromString("25.00")},
			{SizeName: "250g", Price: decimal.RequireFromString("15.00")},
		},
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestRepositoryProductFlow(t *testing.T) {
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

	category := mustCreateTestCategory(t, tx, "Truffles")
	mustCreateTestProduct(t, tx, category.ID, "Zebra Bark", true)
	mustCreateTestProduct(t, tx, category.ID, "Almond Cluster", true)
	mustCreateTestProduct(t, tx, category.ID, "Hidden Praline", false)

	list, err := repo.ListProducts(ctx, &category.ID, true)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 active products, got %d", len(list))
	}
	if list[0].Name != "Almond Cluster" || list[1].Name != "Zebra Bark" {
		t.Fatalf("expected name-ascending order, got %s then %s", list[0].Name, list[1].Name)
	}
	if len(list[0].Sizes) != 2 {
		t.Fatalf("expected sizes preloaded, got %d", len(list[0].Sizes))
	}
	if !list[0].Sizes[0].Price.LessThan(list[0].Sizes[1].Price) {
		t.Fatal("expected sizes ordered price-ascending")
	}

	all, err := repo.ListProducts(ctx, &category.ID, false)
	if err != nil {
		t.Fatalf("list all products: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products including inactive, got %d", len(all))
	}

	size, err := repo.FindSize(ctx, list[0].ID, "250g")
	if err != nil {
		t.Fatalf("find size: %v", err)
	}
	if !size.Price.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("unexpected size price %s", size.Price)
	}

	if err := repo.ReplaceSizes(ctx, list[0].ID, []models.ProductSize{
		{ProductID: list[0].ID, SizeName: "1kg", Price: decimal.RequireFromString("45.00")},
	}); err != nil {
		t.Fatalf("replace sizes: %v", err)
	}

	reloaded, err := repo.FindProductByID(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if len(reloaded.Sizes) != 1 || reloaded.Sizes[0].SizeName != "1kg" {
		t.Fatalf("expected replaced sizes, got %+v", reloaded.Sizes)
	}

	if err := repo.DeleteProduct(ctx, list[0].ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
}

func TestDuplicateSizeNameRejectedPerProduct(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	category := mustCreateTestCategory(t, tx, "Truffles")
	product := mustCreateTestProduct(t, tx, category.ID, "Zebra Bark", true)

	err := tx.Create(&models.ProductSize{
		ProductID: product.ID,
		SizeName:  "250g",
		Price:     decimal.RequireFromString("16.00"),
	}).Error
	if !db.IsUniqueViolation(err, "idx_product_sizes_product_size") {
		t.Fatalf("expected unique violation on duplicate size name, got %v", err)
	}
}

func TestRepositoryStateFlow(t *testing.T) {
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

	created, err := repo.CreateState(ctx, &models.State{
		Name:           fmt.Sprintf("Testland %s", uuid.NewString()),
		DeliveryCharge: decimal.RequireFromString("50.00"),
	})
	if err != nil {
		t.Fatalf("create state: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected state id to be generated")
	}

	created.DeliveryCharge = decimal.RequireFromString("60.00")
	if _, err := repo.UpdateState(ctx, created); err != nil {
		t.Fatalf("update state: %v", err)
	}

	fetched, err := repo.FindStateByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find state: %v", err)
	}
	if !fetched.DeliveryCharge.Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("expected updated charge, got %s", fetched.DeliveryCharge)
	}

	if err := repo.DeleteState(ctx, created.ID); err != nil {
		t.Fatalf("delete state: %v", err)
	}
}
