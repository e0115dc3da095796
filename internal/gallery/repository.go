package gallery

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
)

// Repository persists showcase gallery items.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns gallery items newest first. When activeOnly is set,
// hidden items are excluded.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.GalleryItem, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var items []models.GalleryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) Create(ctx context.Context, item *models.GalleryItem) (*models.GalleryItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) Update(ctx context.Context, item *models.GalleryItem) (*models.GalleryItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GalleryItem{}).Error
}
