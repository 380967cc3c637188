package quotes

import (
	"context"

	"github.com/arontec/scm-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists quotes and their line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quotes repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the quote together with its items.
func (r *Repository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// FindByID loads a quote with its items.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// ListByUser returns the user's quotes, newest first, with items.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

// AdminRow joins a quote with the requesting member's profile.
type AdminRow struct {
	models.Quote
	CompanyName   string
	ContactPerson string
	Email         string
}

// ListAll returns every quote joined to the requester profile, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]AdminRow, error) {
	var rows []AdminRow
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("quotes.*, users.company_name, users.contact_person, users.email").
		Joins("JOIN users ON users.id = quotes.user_id").
		Order("quotes.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus stores the status transition and optional admin notes.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string, adminNotes *string) error {
	updates := map[string]any{"status": status}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}
	return r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// QuoteNumberExists reports whether the generated number is taken.
func (r *Repository) QuoteNumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("quote_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
