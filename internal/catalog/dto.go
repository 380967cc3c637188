package catalog

import (
	"time"

	"github.com/arontec/scm-backend/pkg/db/models"
)

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID                    int64     `json:"id"`
	CategoryID            *int64    `json:"category_id,omitempty"`
	Brand                 string    `json:"brand"`
	ModelName             string    `json:"model_name"`
	ModelNo               string    `json:"model_no"`
	Description           string    `json:"description"`
	ProductSpec           string    `json:"product_spec"`
	ProductOptions        string    `json:"product_options"`
	ImageURL              string    `json:"image_url"`
	DetailURL             string    `json:"detail_url"`
	ConsumerPrice         int64     `json:"consumer_price"`
	SupplyPrice           int64     `json:"supply_price"`
	B2BPrice              int64     `json:"b2b_price"`
	Price                 int64     `json:"price"`
	StockQuantity         int       `json:"stock_quantity"`
	QuantityPerCarton     int       `json:"quantity_per_carton"`
	ShippingFee           int64     `json:"shipping_fee"`
	ShippingFeeIndividual *int64    `json:"shipping_fee_individual"`
	ShippingFeeCarton     int64     `json:"shipping_fee_carton"`
	Manufacturer          string    `json:"manufacturer"`
	Origin                string    `json:"origin"`
	IsTaxFree             bool      `json:"is_tax_free"`
	IsAvailable           bool      `json:"is_available"`
	IsNew                 bool      `json:"is_new"`
	DisplayOrder          int       `json:"display_order"`
	Remarks               string    `json:"remarks"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CategoryDTO carries a category plus its product count.
type CategoryDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	DisplayOrder int       `json:"display_order"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategoryListDTO is the categories endpoint payload.
type CategoryListDTO struct {
	Categories    []CategoryDTO `json:"categories"`
	TotalProducts int64         `json:"total_products"`
}

// AdminStatsDTO backs the admin dashboard.
type AdminStatsDTO struct {
	PendingMembers   int64 `json:"pending_members"`
	PendingQuotes    int64 `json:"pending_quotes"`
	LowStockProducts int64 `json:"low_stock_products"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:                    p.ID,
		CategoryID:            p.CategoryID,
		Brand:                 p.Brand,
		ModelName:             p.ModelName,
		ModelNo:               p.ModelNo,
		Description:           p.Description,
		ProductSpec:           p.ProductSpec,
		ProductOptions:        p.ProductOptions,
		ImageURL:              p.ImageURL,
		DetailURL:             p.DetailURL,
		ConsumerPrice:         p.ConsumerPrice,
		SupplyPrice:           p.SupplyPrice,
		B2BPrice:              p.B2BPrice,
		Price:                 p.Price,
		StockQuantity:         p.StockQuantity,
		QuantityPerCarton:     p.QuantityPerCarton,
		ShippingFee:           p.ShippingFee,
		ShippingFeeIndividual: p.ShippingFeeIndividual,
		ShippingFeeCarton:     p.ShippingFeeCarton,
		Manufacturer:          p.Manufacturer,
		Origin:                p.Origin,
		IsTaxFree:             p.IsTaxFree,
		IsAvailable:           p.IsAvailable,
		IsNew:                 p.IsNew,
		DisplayOrder:          p.DisplayOrder,
		Remarks:               p.Remarks,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// NewProductDTOs maps a slice of models.
func NewProductDTOs(list []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(list))
	for i := range list {
		out = append(out, *NewProductDTO(&list[i]))
	}
	return out
}
