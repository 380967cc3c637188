package auth

import "github.com/arontec/scm-backend/internal/users"

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Email         string
	Password      string
	CompanyName   string
	ContactPerson string
	Phone         string
	BusinessRegNo *string
}

// LoginInput carries the credential pair.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult bundles the new session id with the account payload.
type LoginResult struct {
	SessionID string
	User      *users.UserDTO
}

// UpdateProfileInput holds optional profile mutations. Password, when set,
// rotates the stored hash.
type UpdateProfileInput struct {
	CompanyName   *string
	ContactPerson *string
	Phone         *string
	BusinessRegNo *string
	Password      *string
}

// ResetCheckInput is the identity triple verified before a reset token is
// issued.
type ResetCheckInput struct {
	Email         string
	ContactPerson string
	Phone         string
}

// ResetPasswordInput carries the signed token back with the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}
