package quotes

import (
	"time"

	"github.com/arontec/scm-backend/pkg/db/models"
)

// ItemInput is one requested line in a quote submission.
type ItemInput struct {
	ProductID int64
	Quantity  int
}

// SubmitInput is the validated quote submission payload. When Items is empty
// the caller's cart is snapshotted instead.
type SubmitInput struct {
	Items        []ItemInput
	DeliveryDate *time.Time
	Notes        string
}

// StatusInput is the admin transition payload.
type StatusInput struct {
	Status     string
	AdminNotes *string
}

// ItemDTO is a quote line as returned to clients.
type ItemDTO struct {
	ID        int64  `json:"id"`
	ProductID *int64 `json:"product_id,omitempty"`
	Brand     string `json:"brand"`
	ModelName string `json:"model_name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// QuoteDTO is the quote payload returned to clients.
type QuoteDTO struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	QuoteNumber  string     `json:"quote_number"`
	TotalAmount  int64      `json:"total_amount"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	Status       string     `json:"status"`
	AdminNotes   string     `json:"admin_notes,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Items        []ItemDTO  `json:"items,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AdminQuoteDTO augments a quote with the requester's profile for admin lists.
type AdminQuoteDTO struct {
	QuoteDTO
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
}

// NewQuoteDTO builds a DTO from the persisted model.
func NewQuoteDTO(q *models.Quote) *QuoteDTO {
	if q == nil {
		return nil
	}
	items := make([]ItemDTO, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, ItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Brand:     item.Brand,
			ModelName: item.ModelName,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		})
	}
	return &QuoteDTO{
		ID:           q.ID,
		UserID:       q.UserID,
		QuoteNumber:  q.QuoteNumber,
		TotalAmount:  q.TotalAmount,
		DeliveryDate: q.DeliveryDate,
		Status:       q.Status,
		AdminNotes:   q.AdminNotes,
		Notes:        q.Notes,
		Items:        items,
		CreatedAt:    q.CreatedAt,
	}
}
