package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arontec/scm-backend/internal/users"
	"github.com/arontec/scm-backend/pkg/config"
	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"github.com/arontec/scm-backend/pkg/security"
	"github.com/arontec/scm-backend/pkg/session"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*users.UserDTO, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID int64) (*users.UserDTO, error)
	UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*users.UserDTO, error)
	ResetCheck(ctx context.Context, input ResetCheckInput) (string, error)
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIdentity(ctx context.Context, email, contactPerson, phone string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateProfile(ctx context.Context, id int64, updates map[string]any) error
}

type sessionManager interface {
	Create(ctx context.Context, identity session.Identity) (string, error)
	Destroy(ctx context.Context, sessionID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	PasswordConfig config.PasswordConfig
	ResetConfig    config.ResetTokenConfig
	Now            func() time.Time
}

type service struct {
	users       userRepository
	sessions    sessionManager
	passwordCfg config.PasswordConfig
	resetCfg    config.ResetTokenConfig
	now         func() time.Time
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:       params.UserRepo,
		sessions:    params.SessionManager,
		passwordCfg: params.PasswordConfig,
		resetCfg:    params.ResetConfig,
		now:         now,
	}, nil
}

// Register creates a pending account awaiting admin approval.
func (s *service) Register(ctx context.Context, input RegisterInput) (*users.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing email")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:         email,
		PasswordHash:  hash,
		CompanyName:   strings.TrimSpace(input.CompanyName),
		ContactPerson: strings.TrimSpace(input.ContactPerson),
		Phone:         strings.TrimSpace(input.Phone),
		BusinessRegNo: input.BusinessRegNo,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return users.FromModel(user), nil
}

// Login authenticates the account and opens a session. Unapproved partners are
// rejected with Forbidden; admins bypass the approval gate.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}

	if !security.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if !user.IsAdmin && !user.IsApproved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account pending approval")
	}

	sessionID, err := s.sessions.Create(ctx, session.Identity{
		UserID:     user.ID,
		IsAdmin:    user.IsAdmin,
		IsApproved: user.IsApproved,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login")
	}

	return &LoginResult{SessionID: sessionID, User: users.FromModel(user)}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "destroy session")
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID int64) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	return users.FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*users.UserDTO, error) {
	updates := map[string]any{}
	if input.CompanyName != nil {
		updates["company_name"] = strings.TrimSpace(*input.CompanyName)
	}
	if input.ContactPerson != nil {
		updates["contact_person"] = strings.TrimSpace(*input.ContactPerson)
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.BusinessRegNo != nil {
		updates["business_reg_no"] = *input.BusinessRegNo
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		updates["password_hash"] = hash
	}

	if err := s.users.UpdateProfile(ctx, userID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return s.Me(ctx, userID)
}

// ResetCheck verifies the identity triple and hands back a short-lived signed
// token instead of a bare account identifier.
func (s *service) ResetCheck(ctx context.Context, input ResetCheckInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByIdentity(ctx, email, strings.TrimSpace(input.ContactPerson), strings.TrimSpace(input.Phone))
	if err != nil {
		if db.IsNotFound(err) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "no matching account")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "match identity")
	}

	token, err := MintResetToken(s.resetCfg, s.now(), user.ID, user.Email)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint reset token")
	}
	return token, nil
}

func (s *service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	userID, err := ParseResetToken(s.resetCfg, input.Token)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
	}

	hash, err := security.HashPassword(input.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store new password")
	}
	return nil
}
