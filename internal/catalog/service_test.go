package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
)

func validInput() ProductInput {
	return ProductInput{
		CategoryID: uuid.New(),
		Name:       "Dark Truffle Box",
		IsActive:   true,
		Sizes: []SizeInput{
			{SizeName: "250g", Price: decimal.RequireFromString("15.00")},
			{SizeName: "500g", Price: decimal.RequireFromString("25.00")},
		},
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error code, got %v", err)
	}
}

func TestValidateProductInput(t *testing.T) {
	if err := validateProductInput(validInput()); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	t.Run("missingName", func(t *testing.T) {
		input := validInput()
		input.Name = "  "
		assertValidationError(t, validateProductInput(input))
	})

	t.Run("missingCategory", func(t *testing.T) {
		input := validInput()
		input.CategoryID = uuid.Nil
		assertValidationError(t, validateProductInput(input))
	})

	t.Run("noSizes", func(t *testing.T) {
		input := validInput()
		input.Sizes = nil
		assertValidationError(t, validateProductInput(input))
	})

	t.Run("duplicateSizeName", func(t *testing.T) {
		input := validInput()
		input.Sizes = []SizeInput{
			{SizeName: "250g", Price: decimal.RequireFromString("15.00")},
			{SizeName: "250g", Price: decimal.RequireFromString("18.00")},
		}
		assertValidationError(t, validateProductInput(input))
	})

	t.Run("nonPositivePrice", func(t *testing.T) {
		input := validInput()
		input.Sizes = []SizeInput{{SizeName: "250g", Price: decimal.Zero}}
		assertValidationError(t, validateProductInput(input))
	})
}

func TestValidateStateInput(t *testing.T) {
	if err := validateStateInput(StateInput{Name: "Lagos", DeliveryCharge: decimal.RequireFromString("50.00")}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	assertValidationError(t, validateStateInput(StateInput{Name: "", DeliveryCharge: decimal.Zero}))
	assertValidationError(t, validateStateInput(StateInput{Name: "Lagos", DeliveryCharge: decimal.RequireFromString("-1.00")}))
}

func TestSizesForProduct(t *testing.T) {
	productID := uuid.New()
	sizes := sizesForProduct(productID, []SizeInput{
		{SizeName: " 250g ", Price: decimal.RequireFromString("15.00")},
	})
	if len(sizes) != 1 {
		t.Fatalf("expected one size, got %d", len(sizes))
	}
	if sizes[0].ProductID != productID {
		t.Fatal("expected product id to be assigned")
	}
	if sizes[0].SizeName != "250g" {
		t.Fatalf("expected trimmed size name, got %q", sizes[0].SizeName)
	}
}
