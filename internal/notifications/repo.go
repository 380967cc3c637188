package notifications

import (
	"context"

	"github.com/arontec/scm-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists storefront notifications.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a notifications repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a notification.
func (r *Repository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// FindByID loads a notification.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListActive returns active public announcements, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND user_id IS NULL", true).
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll returns every announcement for the admin screen, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Notification, error) {
	var list []models.Notification
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Save persists every column of an existing notification.
func (r *Repository) Save(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes a notification.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
