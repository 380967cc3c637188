package quotes

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/arontec/scm-backend/internal/cart"
	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes quote submission, reads, and the admin approval workflow.
type Service interface {
	Submit(ctx context.Context, userID int64, input SubmitInput) (*QuoteDTO, error)
	ListForUser(ctx context.Context, userID int64) ([]QuoteDTO, error)
	Get(ctx context.Context, id, requesterID int64, isAdmin bool) (*QuoteDTO, error)
	AdminList(ctx context.Context) ([]AdminQuoteDTO, error)
	SetStatus(ctx context.Context, id int64, input StatusInput) (*QuoteDTO, error)
}

const quoteNumberAttempts = 5

type service struct {
	repo     *Repository
	cartRepo *cart.Repository
	dbClient *db.Client
	now      func() time.Time
}

// NewService constructs a quotes service instance.
func NewService(repo *Repository, cartRepo *cart.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes repository is required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{
		repo:     repo,
		cartRepo: cartRepo,
		dbClient: dbClient,
		now:      time.Now,
	}, nil
}

// Submit snapshots the requested items (or the caller's cart) into an
// immutable quote inside one transaction. The cart is cleared only when the
// quote was built from it.
func (s *service) Submit(ctx context.Context, userID int64, input SubmitInput) (*QuoteDTO, error) {
	fromCart := len(input.Items) == 0

	var created *models.Quote
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		items, err := s.resolveItems(ctx, tx, userID, input.Items)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quote requires at least one item")
		}

		var total int64
		for _, item := range items {
			total += item.Subtotal
		}

		number, err := s.generateQuoteNumber(ctx, tx)
		if err != nil {
			return err
		}

		quote := &models.Quote{
			UserID:       userID,
			QuoteNumber:  number,
			TotalAmount:  total,
			DeliveryDate: input.DeliveryDate,
			Status:       models.QuoteStatusPending,
			Notes:        input.Notes,
			Items:        items,
		}
		if _, err := s.repo.WithTx(tx).Create(ctx, quote); err != nil {
			return err
		}

		if fromCart {
			if err := s.cartRepo.WithTx(tx).ClearByUser(ctx, userID); err != nil {
				return err
			}
		}

		created = quote
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submit quote")
	}
	return NewQuoteDTO(created), nil
}

// resolveItems builds the denormalized line snapshot, either from the
// client-supplied list or from the caller's cart.
func (s *service) resolveItems(ctx context.Context, tx *gorm.DB, userID int64, inputs []ItemInput) ([]models.QuoteItem, error) {
	if len(inputs) == 0 {
		lines, err := s.cartRepo.WithTx(tx).ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		inputs = make([]ItemInput, 0, len(lines))
		for _, line := range lines {
			inputs = append(inputs, ItemInput{ProductID: line.ProductID, Quantity: line.Quantity})
		}
	}

	items := make([]models.QuoteItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		var product models.Product
		if err := tx.WithContext(ctx).First(&product, "id = ?", in.ProductID).Error; err != nil {
			if db.IsNotFound(err) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", in.ProductID))
			}
			return nil, err
		}
		productID := product.ID
		unitPrice := product.B2BPrice
		items = append(items, models.QuoteItem{
			ProductID: &productID,
			Brand:     product.Brand,
			ModelName: product.ModelName,
			UnitPrice: unitPrice,
			Quantity:  in.Quantity,
			Subtotal:  unitPrice * int64(in.Quantity),
		})
	}
	return items, nil
}

func (s *service) generateQuoteNumber(ctx context.Context, tx *gorm.DB) (string, error) {
	day := s.now().UTC().Format("20060102")
	for attempt := 0; attempt < quoteNumberAttempts; attempt++ {
		number := fmt.Sprintf("Q-%s-%04d", day, rand.Intn(10000))
		taken, err := s.repo.WithTx(tx).QuoteNumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique quote number")
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]QuoteDTO, error) {
	quotes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list quotes")
	}
	out := make([]QuoteDTO, 0, len(quotes))
	for i := range quotes {
		out = append(out, *NewQuoteDTO(&quotes[i]))
	}
	return out, nil
}

// Get returns the quote. Partners may only read their own quotes; admins read
// across users.
func (s *service) Get(ctx context.Context, id, requesterID int64, isAdmin bool) (*QuoteDTO, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load quote")
	}
	if !isAdmin && quote.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "quote belongs to another account")
	}
	return NewQuoteDTO(quote), nil
}

func (s *service) AdminList(ctx context.Context) ([]AdminQuoteDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list all quotes")
	}
	out := make([]AdminQuoteDTO, 0, len(rows))
	for i := range rows {
		out = append(out, AdminQuoteDTO{
			QuoteDTO:      *NewQuoteDTO(&rows[i].Quote),
			CompanyName:   rows[i].CompanyName,
			ContactPerson: rows[i].ContactPerson,
			Email:         rows[i].Email,
		})
	}
	return out, nil
}

// SetStatus applies the admin transition. Only pending quotes move; approved
// and rejected are terminal.
func (s *service) SetStatus(ctx context.Context, id int64, input StatusInput) (*QuoteDTO, error) {
	if input.Status != models.QuoteStatusApproved && input.Status != models.QuoteStatusRejected {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be approved or rejected")
	}

	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load quote")
	}
	if quote.Status != models.QuoteStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("quote is already %s", quote.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, input.Status, input.AdminNotes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update quote status")
	}
	return s.Get(ctx, id, 0, true)
}
