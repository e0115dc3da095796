package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is customer feedback. Only approved rows are shown publicly.
type Review struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string    `gorm:"column:customer_name;type:text;not null"`
	CustomerEmail string    `gorm:"column:customer_email;type:text;not null"`
	Rating        int       `gorm:"column:rating;not null"`
	ReviewText    string    `gorm:"column:review_text;type:text;not null"`
	IsApproved    bool      `gorm:"column:is_approved;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
