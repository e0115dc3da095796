package reviews

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

// Service exposes public review submission and back-office moderation.
// New reviews always start unapproved and only approved ones are shown
// on the storefront.
type Service interface {
	ListApproved(ctx context.Context) ([]ReviewDTO, error)
	Submit(ctx context.Context, input SubmitInput) (*ReviewDTO, error)

	ListAll(ctx context.Context) ([]ReviewDTO, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*ReviewDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountPending(ctx context.Context) (int64, error)
}

// ReviewDTO is the API shape for a review.
type ReviewDTO struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Rating        int       `json:"rating"`
	ReviewText    string    `json:"review_text"`
	IsApproved    bool      `json:"is_approved"`
	CreatedAt     time.Time `json:"created_at"`
}

// SubmitInput holds the validated payload for a new review.
type SubmitInput struct {
	CustomerName  string
	CustomerEmail string
	Rating        int
	ReviewText    string
}

type service struct {
	repo *Repository
}

// NewService constructs a review service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListApproved(ctx context.Context) ([]ReviewDTO, error) {
	rows, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	return toReviewDTOs(rows), nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*ReviewDTO, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}
	row, err := s.repo.Create(ctx, &models.Review{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		Rating:        input.Rating,
		ReviewText:    strings.TrimSpace(input.ReviewText),
		IsApproved:    false,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submit review")
	}
	return toReviewDTO(row), nil
}

func (s *service) ListAll(ctx context.Context) ([]ReviewDTO, error) {
	rows, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	return toReviewDTOs(rows), nil
}

func (s *service) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*ReviewDTO, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}

	review.IsApproved = approved
	row, err := s.repo.Update(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update review")
	}
	return toReviewDTO(row), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete review")
	}
	return nil
}

func (s *service) CountPending(ctx context.Context) (int64, error) {
	count, err := s.repo.CountPending(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pending reviews")
	}
	return count, nil
}

func validateSubmitInput(input SubmitInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer_name is required")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer_email is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.ReviewText) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "review_text is required")
	}
	return nil
}

func toReviewDTO(m *models.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:            m.ID,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		Rating:        m.Rating,
		ReviewText:    m.ReviewText,
		IsApproved:    m.IsApproved,
		CreatedAt:     m.CreatedAt,
	}
}

func toReviewDTOs(rows []models.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toReviewDTO(&rows[i]))
	}
	return out
}
