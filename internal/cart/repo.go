package cart

import (
	"context"

	"github.com/arontec/scm-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists cart lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// AddLine inserts a cart line. Duplicate product lines are intentional; each
// add is an independent insert.
func (r *Repository) AddLine(ctx context.Context, line *models.Cart) (*models.Cart, error) {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// Line joins a cart row with its product for display.
type Line struct {
	models.Cart
	Brand     string
	ModelName string
	ImageURL  string
	B2BPrice  int64
}

// ListByUser returns the user's cart lines joined to product data, oldest
// first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Line, error) {
	var lines []Line
	err := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Select("carts.*, products.brand, products.model_name, products.image_url, products.b2b_price").
		Joins("JOIN products ON products.id = carts.product_id").
		Where("carts.user_id = ?", userID).
		Order("carts.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ClearByUser removes every cart line belonging to the user.
func (r *Repository) ClearByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Cart{}).Error
}
