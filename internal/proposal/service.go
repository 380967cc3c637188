package proposal

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"github.com/arontec/scm-backend/pkg/imageproxy"
)

// Service builds downloadable sales proposal workbooks. The client owns the
// item selection; the server only ever sees the ordered product id list.
type Service interface {
	Generate(ctx context.Context, userID int64, input GenerateInput) (*Document, error)
}

// GenerateInput is the validated generation payload. Product order is
// preserved in the document.
type GenerateInput struct {
	ProductIDs []int64
}

// Document is a rendered proposal ready to stream as an attachment.
type Document struct {
	Filename string
	File     *excelize.File
}

type imageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*imageproxy.Result, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type service struct {
	db      *db.Client
	users   userFinder
	fetcher imageFetcher
	now     func() time.Time
}

// ServiceParams bundles proposal service dependencies.
type ServiceParams struct {
	DB      *db.Client
	Users   userFinder
	Fetcher imageFetcher
	Now     func() time.Time
}

// NewService constructs a proposal service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user finder is required")
	}
	if params.Fetcher == nil {
		return nil, fmt.Errorf("image fetcher is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{db: params.DB, users: params.Users, fetcher: params.Fetcher, now: params.Now}, nil
}

func (s *service) Generate(ctx context.Context, userID int64, input GenerateInput) (*Document, error) {
	if len(input.ProductIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proposal needs at least one product")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load requesting user")
	}
	companyName := user.CompanyName
	if companyName == "" {
		companyName = "Client"
	}

	products, err := s.loadOrdered(ctx, input.ProductIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	file, err := s.render(ctx, companyName, now, products)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_제안_%s_%s.xlsx", companyName, now.Format("20060102"), now.Format("1504"))
	return &Document{Filename: filename, File: file}, nil
}

// loadOrdered resolves ids to products, preserving the caller's ordering.
func (s *service) loadOrdered(ctx context.Context, ids []int64) ([]models.Product, error) {
	var rows []models.Product
	err := s.db.DB().WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load proposal products")
	}

	byID := make(map[int64]*models.Product, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
		}
		out = append(out, *p)
	}
	return out, nil
}
