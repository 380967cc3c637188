package users

import (
	"context"
	"fmt"

	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes admin member management operations.
type Service interface {
	ListMembers(ctx context.Context) ([]UserDTO, error)
	SetApproval(ctx context.Context, memberID int64, approved bool) (*UserDTO, error)
	DeleteMember(ctx context.Context, memberID int64) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs the member management service.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListMembers(ctx context.Context) ([]UserDTO, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list members")
	}
	return FromModels(members), nil
}

func (s *service) SetApproval(ctx context.Context, memberID int64, approved bool) (*UserDTO, error) {
	if err := s.repo.SetApproval(ctx, memberID, approved); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set member approval")
	}
	member, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload member")
	}
	return FromModel(member), nil
}

// DeleteMember removes the account and every row hanging off it. Quote items
// go first so no foreign key is left dangling mid-transaction.
func (s *service) DeleteMember(ctx context.Context, memberID int64) error {
	member, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load member")
	}
	if member.IsAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin accounts cannot be deleted")
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where(
			"quote_id IN (?)",
			tx.Model(&models.Quote{}).Select("id").Where("user_id = ?", memberID),
		).Delete(&models.QuoteItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", memberID).Delete(&models.Quote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", memberID).Delete(&models.Cart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", memberID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", memberID).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete member cascade")
	}
	return nil
}
