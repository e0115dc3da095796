package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
)

// Repository wires together catalogue persistence for categories,
// products, sizes, and delivery states.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListCategories returns categories ordered by name. When activeOnly is
// set, inactive categories are hidden.
func (r *Repository) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := r.db.WithContext(ctx).Order("name asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategoryByID loads a single category.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory saves the category row.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category by ID. Products cascade.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// ListProducts returns products ordered by name with their sizes
// preloaded price-ascending. An optional category filter narrows the set.
func (r *Repository) ListProducts(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("price asc")
		}).
		Order("name asc")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindProductByID loads a product with its sizes ordered price-ascending.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("price asc")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a product with its sizes in one association write.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct saves the product row without touching sizes.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Sizes").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// ReplaceSizes swaps out every size row for the product.
func (r *Repository) ReplaceSizes(ctx context.Context, productID uuid.UUID, sizes []models.ProductSize) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductSize{}).Error; err != nil {
		return err
	}
	if len(sizes) == 0 {
		return nil
	}
	return tx.Create(&sizes).Error
}

// DeleteProduct removes a product by ID. Sizes cascade.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// FindSize loads a single size row for the given product.
func (r *Repository) FindSize(ctx context.Context, productID uuid.UUID, sizeName string) (*models.ProductSize, error) {
	var size models.ProductSize
	err := r.db.WithContext(ctx).
		First(&size, "product_id = ? AND size_name = ?", productID, sizeName).Error
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// ListStates returns delivery states ordered by name.
func (r *Repository) ListStates(ctx context.Context) ([]models.State, error) {
	var states []models.State
	if err := r.db.WithContext(ctx).Order("name asc").Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// FindStateByID loads a single state.
func (r *Repository) FindStateByID(ctx context.Context, id uuid.UUID) (*models.State, error) {
	var state models.State
	if err := r.db.WithContext(ctx).First(&state, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// CreateState inserts a new state row.
func (r *Repository) CreateState(ctx context.Context, state *models.State) (*models.State, error) {
	if err := r.db.WithContext(ctx).Create(state).Error; err != nil {
		return nil, err
	}
	return state, nil
}

// UpdateState saves the state row.
func (r *Repository) UpdateState(ctx context.Context, state *models.State) (*models.State, error) {
	if err := r.db.WithContext(ctx).Save(state).Error; err != nil {
		return nil, err
	}
	return state, nil
}

// DeleteState removes a state by ID.
func (r *Repository) DeleteState(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.State{}).Error
}
