package models

import "time"

// Cart is a single cart line for a partner user. Lines are independent
// inserts; duplicates are allowed and resolved at quote time.
type Cart struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	ProductID   int64     `gorm:"column:product_id;not null;index"`
	Quantity    int       `gorm:"column:quantity;not null;default:1"`
	OptionLabel string    `gorm:"column:option_label;type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
