package controllers

import (
	"net/http"

	"github.com/arontec/scm-backend/api/middleware"
	"github.com/arontec/scm-backend/api/responses"
	"github.com/arontec/scm-backend/api/validators"
	authsvc "github.com/arontec/scm-backend/internal/auth"
	"github.com/arontec/scm-backend/pkg/config"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"github.com/arontec/scm-backend/pkg/logger"
)

type registerRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	CompanyName   string  `json:"company_name" validate:"required"`
	ContactPerson string  `json:"contact_person" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	BusinessRegNo *string `json:"business_reg_no,omitempty"`
}

// Register creates a partner account. New accounts stay unapproved until an
// admin signs off.
func Register(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), authsvc.RegisterInput{
			Email:         payload.Email,
			Password:      payload.Password,
			CompanyName:   validators.SanitizeString(payload.CompanyName, 0),
			ContactPerson: validators.SanitizeString(payload.ContactPerson, 0),
			Phone:         validators.SanitizeString(payload.Phone, 0),
			BusinessRegNo: payload.BusinessRegNo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and binds a session cookie.
func Login(svc authsvc.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), authsvc.LoginInput{
			Email:    payload.Email,
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(cfg, result.SessionID, int(cfg.TTL.Seconds())))
		responses.WriteSuccess(w, result.User)
	}
}

// Logout destroys the server-side session and expires the cookie.
func Logout(svc authsvc.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
			if err := svc.Logout(r.Context(), cookie.Value); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		http.SetCookie(w, sessionCookie(cfg, "", -1))
		responses.WriteSuccess(w, map[string]any{"logged_out": true})
	}
}

// Me returns the authenticated account.
func Me(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

type updateProfileRequest struct {
	CompanyName   *string `json:"company_name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	BusinessRegNo *string `json:"business_reg_no,omitempty"`
	Password      *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// UpdateProfile applies partial profile changes for the caller.
func UpdateProfile(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, authsvc.UpdateProfileInput{
			CompanyName:   payload.CompanyName,
			ContactPerson: payload.ContactPerson,
			Phone:         payload.Phone,
			BusinessRegNo: payload.BusinessRegNo,
			Password:      payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

type resetCheckRequest struct {
	Email         string `json:"email" validate:"required,email"`
	ContactPerson string `json:"contact_person" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
}

// ResetPasswordCheck verifies the caller's identity triple and issues a
// short-lived reset token.
func ResetPasswordCheck(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload resetCheckRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.ResetCheck(r.Context(), authsvc.ResetCheckInput{
			Email:         payload.Email,
			ContactPerson: validators.SanitizeString(payload.ContactPerson, 0),
			Phone:         validators.SanitizeString(payload.Phone, 0),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"reset_token": token})
	}
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ResetPassword redeems a reset token and rotates the password.
func ResetPassword(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload resetPasswordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResetPassword(r.Context(), authsvc.ResetPasswordInput{
			Token:       payload.Token,
			NewPassword: payload.NewPassword,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"reset": true})
	}
}

func sessionCookie(cfg config.SessionConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
