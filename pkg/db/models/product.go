package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable catalogue item. Pricing lives on the
// per-size rows, never on the product itself.
type Product struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID     `gorm:"column:category_id;type:uuid;not null;index"`
	Name        string        `gorm:"column:name;type:text;not null"`
	Description *string       `gorm:"column:description;type:text"`
	ImageURL    *string       `gorm:"column:image_url;type:text"`
	IsActive    bool          `gorm:"column:is_active;not null;default:true"`
	Category    *Category     `gorm:"foreignKey:CategoryID"`
	Sizes       []ProductSize `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
