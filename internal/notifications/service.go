package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
)

// Service exposes announcement management. Listing is public; mutations are
// admin-only at the routing layer.
type Service interface {
	ListActive(ctx context.Context) ([]DTO, error)
	ListAll(ctx context.Context) ([]DTO, error)
	Create(ctx context.Context, input CreateInput) (*DTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*DTO, error)
	Delete(ctx context.Context, id int64) error
}

// DTO is the notification payload returned to clients.
type DTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput is the validated create payload.
type CreateInput struct {
	Title    string
	Content  string
	IsActive *bool
}

// UpdateInput holds optional mutation values.
type UpdateInput struct {
	Title    *string
	Content  *string
	IsActive *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a notifications service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository is required")
	}
	return &service{repo: repo}, nil
}

func newDTO(n *models.Notification) *DTO {
	return &DTO{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		IsActive:  n.IsActive,
		CreatedAt: n.CreatedAt,
	}
}

func newDTOs(list []models.Notification) []DTO {
	out := make([]DTO, 0, len(list))
	for i := range list {
		out = append(out, *newDTO(&list[i]))
	}
	return out
}

func (s *service) ListActive(ctx context.Context) ([]DTO, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list active notifications")
	}
	return newDTOs(list), nil
}

func (s *service) ListAll(ctx context.Context) ([]DTO, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}
	return newDTOs(list), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*DTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	n, err := s.repo.Create(ctx, &models.Notification{
		Title:    title,
		Content:  input.Content,
		IsActive: active,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create notification")
	}
	return newDTO(n), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*DTO, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load notification")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be blank")
		}
		n.Title = title
	}
	if input.Content != nil {
		n.Content = *input.Content
	}
	if input.IsActive != nil {
		n.IsActive = *input.IsActive
	}

	saved, err := s.repo.Save(ctx, n)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update notification")
	}
	return newDTO(saved), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete notification")
	}
	return nil
}
