package models

import "time"

// Quote statuses. Pending is the only initial state; approved and rejected
// are terminal.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusApproved = "approved"
	QuoteStatusRejected = "rejected"
)

// Quote is an immutable snapshot of requested line items. Only status and
// admin notes change after creation.
type Quote struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID       int64      `gorm:"column:user_id;not null;index"`
	QuoteNumber  string     `gorm:"column:quote_number;type:text;not null;uniqueIndex"`
	TotalAmount  int64      `gorm:"column:total_amount;not null;default:0"`
	DeliveryDate *time.Time `gorm:"column:delivery_date"`
	Status       string     `gorm:"column:status;type:text;not null;default:'pending'"`
	AdminNotes   string     `gorm:"column:admin_notes;type:text;not null;default:''"`
	Notes        string     `gorm:"column:notes;type:text;not null;default:''"`
	Items        []QuoteItem `gorm:"foreignKey:QuoteID"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
