package models

import "time"

// Notification is a storefront announcement. UserID is null for public
// announcements and set for member-directed notices, which are removed by the
// member cascade delete.
type Notification struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    *int64    `gorm:"column:user_id;index"`
	Title     string    `gorm:"column:title;type:text;not null"`
	Content   string    `gorm:"column:content;type:text;not null;default:''"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
