package models

import "time"

// User represents a partner or admin account. Partner accounts stay locked
// behind IsApproved until an admin flips it.
type User struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Email          string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash   string     `gorm:"column:password_hash;type:text;not null"`
	CompanyName    string     `gorm:"column:company_name;type:text;not null"`
	ContactPerson  string     `gorm:"column:contact_person;type:text;not null"`
	Phone          string     `gorm:"column:phone;type:text;not null"`
	BusinessRegNo  *string    `gorm:"column:business_reg_no;type:text"`
	IsAdmin        bool       `gorm:"column:is_admin;not null;default:false"`
	IsApproved     bool       `gorm:"column:is_approved;not null;default:false"`
	LastLoginAt    *time.Time `gorm:"column:last_login_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
