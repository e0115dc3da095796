package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
)

// CategoryDTO is the API shape for a catalogue category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SizeDTO is a purchasable variant with its price.
type SizeDTO struct {
	ID       uuid.UUID       `json:"id"`
	SizeName string          `json:"size_name"`
	Price    decimal.Decimal `json:"price"`
}

// ProductDTO is the API shape for a product with its sizes.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	Sizes       []SizeDTO `json:"sizes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StateDTO is a delivery destination with its flat charge.
type StateDTO struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toCategoryDTO(m *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toCategoryDTOs(rows []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toCategoryDTO(&rows[i]))
	}
	return out
}

func toProductDTO(m *models.Product) *ProductDTO {
	sizes := make([]SizeDTO, 0, len(m.Sizes))
	for _, size := range m.Sizes {
		sizes = append(sizes, SizeDTO{
			ID:       size.ID,
			SizeName: size.SizeName,
			Price:    size.Price,
		})
	}
	return &ProductDTO{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		IsActive:    m.IsActive,
		Sizes:       sizes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toProductDTO(&rows[i]))
	}
	return out
}

func toStateDTO(m *models.State) *StateDTO {
	return &StateDTO{
		ID:             m.ID,
		Name:           m.Name,
		DeliveryCharge: m.DeliveryCharge,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toStateDTOs(rows []models.State) []StateDTO {
	out := make([]StateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toStateDTO(&rows[i]))
	}
	return out
}
