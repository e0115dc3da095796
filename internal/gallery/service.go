package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chocokroko/chocokroko-backend/pkg/db/models"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
)

// Service exposes gallery reads for the storefront and CRUD for the back office.
type Service interface {
	List(ctx context.Context, includeInactive bool) ([]ItemDTO, error)
	Create(ctx context.Context, input ItemInput) (*ItemDTO, error)
	Update(ctx context.Context, id uuid.UUID, input ItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemDTO is the API shape for a gallery entry.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemInput holds the validated payload for gallery writes.
type ItemInput struct {
	Title       string
	Description *string
	ImageURL    string
	IsActive    bool
}

type service struct {
	repo *Repository
}

// NewService constructs a gallery service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("gallery repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx, !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list gallery")
	}
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toItemDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input ItemInput) (*ItemDTO, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}
	row, err := s.repo.Create(ctx, &models.GalleryItem{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		IsActive:    input.IsActive,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create gallery item")
	}
	return toItemDTO(row), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ItemInput) (*ItemDTO, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "gallery item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load gallery item")
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Description = input.Description
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.IsActive = input.IsActive

	row, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update gallery item")
	}
	return toItemDTO(row), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "gallery item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load gallery item")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete gallery item")
	}
	return nil
}

func validateItemInput(input ItemInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "image_url is required")
	}
	return nil
}

func toItemDTO(m *models.GalleryItem) *ItemDTO {
	return &ItemDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
