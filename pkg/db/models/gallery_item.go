package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryItem is a showcase image managed from the back office.
type GalleryItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;type:text;not null"`
	Description *string   `gorm:"column:description;type:text"`
	ImageURL    string    `gorm:"column:image_url;type:text;not null"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}
