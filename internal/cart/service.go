package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
)

// Service exposes cart operations for approved partners.
type Service interface {
	AddLine(ctx context.Context, userID int64, input AddLineInput) (*LineDTO, error)
	ListLines(ctx context.Context, userID int64) ([]LineDTO, error)
}

// AddLineInput is the validated add-to-cart payload.
type AddLineInput struct {
	ProductID   int64
	Quantity    int
	OptionLabel string
}

// LineDTO is a cart line joined with display fields from the product.
type LineDTO struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	OptionLabel string    `json:"option_label,omitempty"`
	Brand       string    `json:"brand"`
	ModelName   string    `json:"model_name"`
	ImageURL    string    `json:"image_url"`
	B2BPrice    int64     `json:"b2b_price"`
	CreatedAt   time.Time `json:"created_at"`
}

type productFinder interface {
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
}

type service struct {
	repo     *Repository
	products productFinder
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, products productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder is required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) AddLine(ctx context.Context, userID int64, input AddLineInput) (*LineDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindProductByID(ctx, input.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	line, err := s.repo.AddLine(ctx, &models.Cart{
		UserID:      userID,
		ProductID:   product.ID,
		Quantity:    input.Quantity,
		OptionLabel: input.OptionLabel,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart line")
	}

	return &LineDTO{
		ID:          line.ID,
		ProductID:   product.ID,
		Quantity:    line.Quantity,
		OptionLabel: line.OptionLabel,
		Brand:       product.Brand,
		ModelName:   product.ModelName,
		ImageURL:    product.ImageURL,
		B2BPrice:    product.B2BPrice,
		CreatedAt:   line.CreatedAt,
	}, nil
}

func (s *service) ListLines(ctx context.Context, userID int64) ([]LineDTO, error) {
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	out := make([]LineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, LineDTO{
			ID:          line.ID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			OptionLabel: line.OptionLabel,
			Brand:       line.Brand,
			ModelName:   line.ModelName,
			ImageURL:    line.ImageURL,
			B2BPrice:    line.B2BPrice,
			CreatedAt:   line.CreatedAt,
		})
	}
	return out, nil
}
