package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/chocokroko/chocokroko-backend/pkg/db"
	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
)

// Service exposes storefront catalogue reads and back-office CRUD.
type Service interface {
	ListCategories(ctx context.Context, includeInactive bool) ([]CategoryDTO, error)
	ListProducts(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProductSizes(ctx context.Context, productID uuid.UUID) ([]SizeDTO, error)
	ListStates(ctx context.Context) ([]StateDTO, error)

	CreateCategory(ctx context.Context, input CategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error)
	ReplaceProductSizes(ctx context.Context, id uuid.UUID, sizes []SizeInput) ([]SizeDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateState(ctx context.Context, input StateInput) (*StateDTO, error)
	UpdateState(ctx context.Context, id uuid.UUID, input StateInput) (*StateDTO, error)
	DeleteState(ctx context.Context, id uuid.UUID) error
}

// CategoryInput holds the validated payload for category writes.
type CategoryInput struct {
	Name        string
	Description *string
	ImageURL    *string
	IsActive    bool
}

// SizeInput defines one purchasable variant on a product write.
type SizeInput struct {
	SizeName string
	Price    decimal.Decimal
}

// ProductInput holds the validated payload for product writes. Sizes
// replace the existing set wholesale.
type ProductInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description *string
	ImageURL    *string
	IsActive    bool
	Sizes       []SizeInput
}

// StateInput holds the validated payload for state writes.
type StateInput struct {
	Name           string
	DeliveryCharge decimal.Decimal
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalogue service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListCategories(ctx context.Context, includeInactive bool) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx, !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return toCategoryDTOs(rows), nil
}

func (s *service) ListProducts(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx, categoryID, !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return toProductDTOs(rows), nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get product")
	}
	return toProductDTO(product), nil
}

func (s *service) ListProductSizes(ctx context.Context, productID uuid.UUID) ([]SizeDTO, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return product.Sizes, nil
}

func (s *service) ListStates(ctx context.Context) ([]StateDTO, error) {
	rows, err := s.repo.ListStates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list states")
	}
	return toStateDTOs(rows), nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*CategoryDTO, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	row, err := s.repo.CreateCategory(ctx, &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_categories_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return toCategoryDTO(row), nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.IsActive = input.IsActive

	row, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_categories_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}
	return toCategoryDTO(row), nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
		Sizes:       sizesFromInput(input.Sizes),
	}

	row, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return toProductDTO(row), nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if input.CategoryID != product.CategoryID {
		if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
		}
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.ImageURL = input.ImageURL
	product.IsActive = input.IsActive
	product.Sizes = nil

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.UpdateProduct(ctx, product); err != nil {
			return err
		}
		return repo.ReplaceSizes(ctx, product.ID, sizesForProduct(product.ID, input.Sizes))
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}

	updated, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	return toProductDTO(updated), nil
}

// ReplaceProductSizes swaps the full size set on a product. Partial
// edits are not supported, the caller always sends the complete list.
func (s *service) ReplaceProductSizes(ctx context.Context, id uuid.UUID, sizes []SizeInput) ([]SizeDTO, error) {
	if err := validateSizes(sizes); err != nil {
		return nil, err
	}
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceSizes(ctx, product.ID, sizesForProduct(product.ID, sizes))
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace product sizes")
	}

	updated, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	return toProductDTO(updated).Sizes, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) CreateState(ctx context.Context, input StateInput) (*StateDTO, error) {
	if err := validateStateInput(input); err != nil {
		return nil, err
	}
	row, err := s.repo.CreateState(ctx, &models.State{
		Name:           strings.TrimSpace(input.Name),
		DeliveryCharge: input.DeliveryCharge,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_states_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "state name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create state")
	}
	return toStateDTO(row), nil
}

func (s *service) UpdateState(ctx context.Context, id uuid.UUID, input StateInput) (*StateDTO, error) {
	if err := validateStateInput(input); err != nil {
		return nil, err
	}
	state, err := s.repo.FindStateByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "state not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load state")
	}

	state.Name = strings.TrimSpace(input.Name)
	state.DeliveryCharge = input.DeliveryCharge

	row, err := s.repo.UpdateState(ctx, state)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_states_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "state name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update state")
	}
	return toStateDTO(row), nil
}

func (s *service) DeleteState(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindStateByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "state not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load state")
	}
	if err := s.repo.DeleteState(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete state")
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return nil
}

func validateProductInput(input ProductInput) error {
	if err := validateName(input.Name); err != nil {
		return err
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category_id is required")
	}
	return validateSizes(input.Sizes)
}

func validateSizes(sizes []SizeInput) error {
	if len(sizes) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one size is required")
	}
	seen := map[string]struct{}{}
	for _, size := range sizes {
		name := strings.TrimSpace(size.SizeName)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "size_name is required")
		}
		if _, dup := seen[name]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate size_name "+name)
		}
		seen[name] = struct{}{}
		if size.Price.IsNegative() || size.Price.IsZero() {
			return pkgerrors.New(pkgerrors.CodeValidation, "size price must be positive")
		}
	}
	return nil
}

func validateStateInput(input StateInput) error {
	if err := validateName(input.Name); err != nil {
		return err
	}
	if input.DeliveryCharge.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery_charge cannot be negative")
	}
	return nil
}

func sizesFromInput(inputs []SizeInput) []models.ProductSize {
	sizes := make([]models.ProductSize, 0, len(inputs))
	for _, in := range inputs {
		sizes = append(sizes, models.ProductSize{
			SizeName: strings.TrimSpace(in.SizeName),
			Price:    in.Price,
		})
	}
	return sizes
}

func sizesForProduct(productID uuid.UUID, inputs []SizeInput) []models.ProductSize {
	sizes := sizesFromInput(inputs)
	for i := range sizes {
		sizes[i].ProductID = productID
	}
	return sizes
}
