package users

import (
	"time"

	"github.com/arontec/scm-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	CompanyName   string     `json:"company_name"`
	ContactPerson string     `json:"contact_person"`
	Phone         string     `json:"phone"`
	BusinessRegNo *string    `json:"business_reg_no,omitempty"`
	IsAdmin       bool       `json:"is_admin"`
	IsApproved    bool       `json:"is_approved"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email         string
	PasswordHash  string
	CompanyName   string
	ContactPerson string
	Phone         string
	BusinessRegNo *string
	IsAdmin       bool
	IsApproved    bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		CompanyName:   u.CompanyName,
		ContactPerson: u.ContactPerson,
		Phone:         u.Phone,
		BusinessRegNo: u.BusinessRegNo,
		IsAdmin:       u.IsAdmin,
		IsApproved:    u.IsApproved,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func FromModels(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:         c.Email,
		PasswordHash:  c.PasswordHash,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		BusinessRegNo: c.BusinessRegNo,
		IsAdmin:       c.IsAdmin,
		IsApproved:    c.IsApproved,
	}
}
