package models

import "time"

// Category is a catalog grouping. Slug is derived from the name and unique.
type Category struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;type:text;not null"`
	Slug         string    `gorm:"column:slug;type:text;not null;uniqueIndex"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
