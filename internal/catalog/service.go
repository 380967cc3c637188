package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/db/models"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes catalog operations. Reads are public; every mutation sits
// behind the admin gate at the routing layer.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
	DeleteRecentProducts(ctx context.Context, hours int) (int64, error)
	DeleteProductRange(ctx context.Context, fromID, toID int64) (int64, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error)
	ListCategories(ctx context.Context) (*CategoryListDTO, error)
	CreateCategory(ctx context.Context, name string, displayOrder int) (*CategoryDTO, error)
	ListDistinct(ctx context.Context, field string) ([]string, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
	SetNew(ctx context.Context, id int64, isNew bool) error
	SetDisplayOrder(ctx context.Context, id int64, order int) error
	AdminStats(ctx context.Context) (*AdminStatsDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CategoryID            *int64
	Brand                 string
	ModelName             string
	ModelNo               string
	Description           string
	ProductSpec           string
	ProductOptions        string
	ImageURL              string
	DetailURL             string
	ConsumerPrice         int64
	SupplyPrice           int64
	B2BPrice              int64
	Price                 int64
	StockQuantity         int
	QuantityPerCarton     int
	ShippingFee           int64
	ShippingFeeIndividual *int64
	ShippingFeeCarton     int64
	Manufacturer          string
	Origin                string
	IsTaxFree             bool
	IsAvailable           *bool
	IsNew                 bool
	DisplayOrder          int
	Remarks               string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	CategoryID            *int64
	Brand                 *string
	ModelName             *string
	ModelNo               *string
	Description           *string
	ProductSpec           *string
	ProductOptions        *string
	ImageURL              *string
	DetailURL             *string
	ConsumerPrice         *int64
	SupplyPrice           *int64
	B2BPrice              *int64
	Price                 *int64
	StockQuantity         *int
	QuantityPerCarton     *int
	ShippingFee           *int64
	ShippingFeeIndividual *int64
	ShippingFeeCarton     *int64
	Manufacturer          *string
	Origin                *string
	IsTaxFree             *bool
	IsAvailable           *bool
	IsNew                 *bool
	DisplayOrder          *int
	Remarks               *string
}

const lowStockThreshold = 10

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	modelName := strings.TrimSpace(input.ModelName)
	if modelName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "model_name is required")
	}

	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	product := &models.Product{
		CategoryID:            input.CategoryID,
		Brand:                 strings.TrimSpace(input.Brand),
		ModelName:             modelName,
		ModelNo:               strings.TrimSpace(input.ModelNo),
		Description:           input.Description,
		ProductSpec:           input.ProductSpec,
		ProductOptions:        input.ProductOptions,
		ImageURL:              strings.TrimSpace(input.ImageURL),
		DetailURL:             input.DetailURL,
		ConsumerPrice:         input.ConsumerPrice,
		SupplyPrice:           input.SupplyPrice,
		B2BPrice:              input.B2BPrice,
		Price:                 input.Price,
		StockQuantity:         input.StockQuantity,
		QuantityPerCarton:     input.QuantityPerCarton,
		ShippingFee:           input.ShippingFee,
		ShippingFeeIndividual: input.ShippingFeeIndividual,
		ShippingFeeCarton:     input.ShippingFeeCarton,
		Manufacturer:          strings.TrimSpace(input.Manufacturer),
		Origin:                strings.TrimSpace(input.Origin),
		IsTaxFree:             input.IsTaxFree,
		IsAvailable:           isAvailable,
		IsNew:                 input.IsNew,
		DisplayOrder:          input.DisplayOrder,
		Remarks:               input.Remarks,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return NewProductDTO(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	applyProductUpdates(product, input)
	if strings.TrimSpace(product.ModelName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "model_name cannot be blank")
	}

	saved, err := s.repo.SaveProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return NewProductDTO(saved), nil
}

func applyProductUpdates(p *models.Product, in UpdateProductInput) {
	if in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}
	if in.Brand != nil {
		p.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.ModelName != nil {
		p.ModelName = strings.TrimSpace(*in.ModelName)
	}
	if in.ModelNo != nil {
		p.ModelNo = strings.TrimSpace(*in.ModelNo)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ProductSpec != nil {
		p.ProductSpec = *in.ProductSpec
	}
	if in.ProductOptions != nil {
		p.ProductOptions = *in.ProductOptions
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.DetailURL != nil {
		p.DetailURL = *in.DetailURL
	}
	if in.ConsumerPrice != nil {
		p.ConsumerPrice = *in.ConsumerPrice
	}
	if in.SupplyPrice != nil {
		p.SupplyPrice = *in.SupplyPrice
	}
	if in.B2BPrice != nil {
		p.B2BPrice = *in.B2BPrice
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.QuantityPerCarton != nil {
		p.QuantityPerCarton = *in.QuantityPerCarton
	}
	if in.ShippingFee != nil {
		p.ShippingFee = *in.ShippingFee
	}
	if in.ShippingFeeIndividual != nil {
		p.ShippingFeeIndividual = in.ShippingFeeIndividual
	}
	if in.ShippingFeeCarton != nil {
		p.ShippingFeeCarton = *in.ShippingFeeCarton
	}
	if in.Manufacturer != nil {
		p.Manufacturer = strings.TrimSpace(*in.Manufacturer)
	}
	if in.Origin != nil {
		p.Origin = strings.TrimSpace(*in.Origin)
	}
	if in.IsTaxFree != nil {
		p.IsTaxFree = *in.IsTaxFree
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if in.IsNew != nil {
		p.IsNew = *in.IsNew
	}
	if in.DisplayOrder != nil {
		p.DisplayOrder = *in.DisplayOrder
	}
	if in.Remarks != nil {
		p.Remarks = *in.Remarks
	}
}

// DeleteProduct removes the product together with its dependent quote items
// and cart lines in one transaction, so no foreign key is orphaned.
func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return deleteProductsCascade(tx, []int64{id})
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func deleteProductsCascade(tx *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&models.QuoteItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&models.Cart{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Product{}).Error
}

func (s *service) DeleteRecentProducts(ctx context.Context, hours int) (int64, error) {
	if hours <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "hours must be positive")
	}
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	ids, err := s.repo.ListProductIDsCreatedSince(ctx, since)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent products")
	}
	if err := s.deleteCascadeTx(ctx, ids); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (s *service) DeleteProductRange(ctx context.Context, fromID, toID int64) (int64, error) {
	if fromID <= 0 || toID < fromID {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid id range")
	}
	ids, err := s.repo.ListProductIDsInRange(ctx, fromID, toID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list id range")
	}
	if err := s.deleteCascadeTx(ctx, ids); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (s *service) deleteCascadeTx(ctx context.Context, ids []int64) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return deleteProductsCascade(tx, ids)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bulk delete products")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return NewProductDTOs(products), nil
}

func (s *service) ListCategories(ctx context.Context) (*CategoryListDTO, error) {
	counts, err := s.repo.ListCategoriesWithCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	total, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}

	out := &CategoryListDTO{
		Categories:    make([]CategoryDTO, 0, len(counts)),
		TotalProducts: total,
	}
	for _, c := range counts {
		out.Categories = append(out.Categories, CategoryDTO{
			ID:           c.ID,
			Name:         c.Name,
			Slug:         c.Slug,
			DisplayOrder: c.DisplayOrder,
			ProductCount: c.ProductCount,
			CreatedAt:    c.CreatedAt,
		})
	}
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, name string, displayOrder int) (*CategoryDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name yields an empty slug")
	}

	category, err := s.repo.CreateCategory(ctx, &models.Category{
		Name:         name,
		Slug:         slug,
		DisplayOrder: displayOrder,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return &CategoryDTO{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		DisplayOrder: category.DisplayOrder,
		CreatedAt:    category.CreatedAt,
	}, nil
}

func (s *service) ListDistinct(ctx context.Context, field string) ([]string, error) {
	values, err := s.repo.DistinctNonEmpty(ctx, field)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list distinct "+field)
	}
	return values, nil
}

func (s *service) SetAvailability(ctx context.Context, id int64, available bool) error {
	return s.wrapToggle(s.repo.SetAvailability(ctx, id, available), "set availability")
}

func (s *service) SetNew(ctx context.Context, id int64, isNew bool) error {
	return s.wrapToggle(s.repo.SetNew(ctx, id, isNew), "set new flag")
}

func (s *service) SetDisplayOrder(ctx context.Context, id int64, order int) error {
	return s.wrapToggle(s.repo.SetDisplayOrder(ctx, id, order), "set display order")
}

func (s *service) wrapToggle(err error, action string) error {
	if err == nil {
		return nil
	}
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func (s *service) AdminStats(ctx context.Context) (*AdminStatsDTO, error) {
	conn := s.dbClient.DB().WithContext(ctx)
	var stats AdminStatsDTO

	err := conn.Model(&models.User{}).
		Where("is_admin = ? AND is_approved = ?", false, false).
		Count(&stats.PendingMembers).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pending members")
	}

	err = conn.Model(&models.Quote{}).
		Where("status = ?", models.QuoteStatusPending).
		Count(&stats.PendingQuotes).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pending quotes")
	}

	err = conn.Model(&models.Product{}).
		Where("stock_quantity < ?", lowStockThreshold).
		Count(&stats.LowStockProducts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count low stock products")
	}

	return &stats, nil
}
