package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arontec/scm-backend/api/responses"
	"github.com/arontec/scm-backend/api/validators"
	"github.com/arontec/scm-backend/internal/catalog"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"github.com/arontec/scm-backend/pkg/logger"
)

// ListProducts serves the public catalog listing with optional filters.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		isNew, err := validators.ParseQueryBool(r, "is_new")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{
			CategorySlug: strings.TrimSpace(r.URL.Query().Get("category")),
			Search:       strings.TrimSpace(r.URL.Query().Get("search")),
			IsNew:        isNew,
			Sort:         strings.TrimSpace(r.URL.Query().Get("sort")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// GetProduct serves a single product by id.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type productRequest struct {
	CategoryID            *int64  `json:"category_id,omitempty"`
	Brand                 string  `json:"brand"`
	ModelName             string  `json:"model_name" validate:"required"`
	ModelNo               string  `json:"model_no"`
	Description           string  `json:"description"`
	ProductSpec           string  `json:"product_spec"`
	ProductOptions        string  `json:"product_options"`
	ImageURL              string  `json:"image_url"`
	DetailURL             string  `json:"detail_url"`
	ConsumerPrice         int64   `json:"consumer_price" validate:"gte=0"`
	SupplyPrice           int64   `json:"supply_price" validate:"gte=0"`
	B2BPrice              int64   `json:"b2b_price" validate:"gte=0"`
	Price                 int64   `json:"price" validate:"gte=0"`
	StockQuantity         int     `json:"stock_quantity" validate:"gte=0"`
	QuantityPerCarton     int     `json:"quantity_per_carton" validate:"gte=0"`
	ShippingFee           int64   `json:"shipping_fee" validate:"gte=0"`
	ShippingFeeIndividual *int64  `json:"shipping_fee_individual,omitempty"`
	ShippingFeeCarton     int64   `json:"shipping_fee_carton" validate:"gte=0"`
	Manufacturer          string  `json:"manufacturer"`
	Origin                string  `json:"origin"`
	IsTaxFree             bool    `json:"is_tax_free"`
	IsAvailable           *bool   `json:"is_available,omitempty"`
	IsNew                 bool    `json:"is_new"`
	DisplayOrder          int     `json:"display_order"`
	Remarks               string  `json:"remarks"`
}

// CreateProduct registers a new product (admin only).
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			CategoryID:            payload.CategoryID,
			Brand:                 payload.Brand,
			ModelName:             payload.ModelName,
			ModelNo:               payload.ModelNo,
			Description:           payload.Description,
			ProductSpec:           payload.ProductSpec,
			ProductOptions:        payload.ProductOptions,
			ImageURL:              payload.ImageURL,
			DetailURL:             payload.DetailURL,
			ConsumerPrice:         payload.ConsumerPrice,
			SupplyPrice:           payload.SupplyPrice,
			B2BPrice:              payload.B2BPrice,
			Price:                 payload.Price,
			StockQuantity:         payload.StockQuantity,
			QuantityPerCarton:     payload.QuantityPerCarton,
			ShippingFee:           payload.ShippingFee,
			ShippingFeeIndividual: payload.ShippingFeeIndividual,
			ShippingFeeCarton:     payload.ShippingFeeCarton,
			Manufacturer:          payload.Manufacturer,
			Origin:                payload.Origin,
			IsTaxFree:             payload.IsTaxFree,
			IsAvailable:           payload.IsAvailable,
			IsNew:                 payload.IsNew,
			DisplayOrder:          payload.DisplayOrder,
			Remarks:               payload.Remarks,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	CategoryID            *int64  `json:"category_id,omitempty"`
	Brand                 *string `json:"brand,omitempty"`
	ModelName             *string `json:"model_name,omitempty"`
	ModelNo               *string `json:"model_no,omitempty"`
	Description           *string `json:"description,omitempty"`
	ProductSpec           *string `json:"product_spec,omitempty"`
	ProductOptions        *string `json:"product_options,omitempty"`
	ImageURL              *string `json:"image_url,omitempty"`
	DetailURL             *string `json:"detail_url,omitempty"`
	ConsumerPrice         *int64  `json:"consumer_price,omitempty" validate:"omitempty,gte=0"`
	SupplyPrice           *int64  `json:"supply_price,omitempty" validate:"omitempty,gte=0"`
	B2BPrice              *int64  `json:"b2b_price,omitempty" validate:"omitempty,gte=0"`
	Price                 *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	StockQuantity         *int    `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	QuantityPerCarton     *int    `json:"quantity_per_carton,omitempty" validate:"omitempty,gte=0"`
	ShippingFee           *int64  `json:"shipping_fee,omitempty" validate:"omitempty,gte=0"`
	ShippingFeeIndividual *int64  `json:"shipping_fee_individual,omitempty"`
	ShippingFeeCarton     *int64  `json:"shipping_fee_carton,omitempty" validate:"omitempty,gte=0"`
	Manufacturer          *string `json:"manufacturer,omitempty"`
	Origin                *string `json:"origin,omitempty"`
	IsTaxFree             *bool   `json:"is_tax_free,omitempty"`
	IsAvailable           *bool   `json:"is_available,omitempty"`
	IsNew                 *bool   `json:"is_new,omitempty"`
	DisplayOrder          *int    `json:"display_order,omitempty"`
	Remarks               *string `json:"remarks,omitempty"`
}

// UpdateProduct applies partial changes to a product (admin only).
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, catalog.UpdateProductInput{
			CategoryID:            payload.CategoryID,
			Brand:                 payload.Brand,
			ModelName:             payload.ModelName,
			ModelNo:               payload.ModelNo,
			Description:           payload.Description,
			ProductSpec:           payload.ProductSpec,
			ProductOptions:        payload.ProductOptions,
			ImageURL:              payload.ImageURL,
			DetailURL:             payload.DetailURL,
			ConsumerPrice:         payload.ConsumerPrice,
			SupplyPrice:           payload.SupplyPrice,
			B2BPrice:              payload.B2BPrice,
			Price:                 payload.Price,
			StockQuantity:         payload.StockQuantity,
			QuantityPerCarton:     payload.QuantityPerCarton,
			ShippingFee:           payload.ShippingFee,
			ShippingFeeIndividual: payload.ShippingFeeIndividual,
			ShippingFeeCarton:     payload.ShippingFeeCarton,
			Manufacturer:          payload.Manufacturer,
			Origin:                payload.Origin,
			IsTaxFree:             payload.IsTaxFree,
			IsAvailable:           payload.IsAvailable,
			IsNew:                 payload.IsNew,
			DisplayOrder:          payload.DisplayOrder,
			Remarks:               payload.Remarks,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct removes a product and its dependent rows (admin only).
func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}

// DeleteRecentProducts removes products created within the trailing window
// (admin only). The window defaults to 24 hours.
func DeleteRecentProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		hours, err := validators.ParseQueryInt(r, "hours", 24, 1, 24*365)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.DeleteRecentProducts(r.Context(), hours)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": deleted})
	}
}

type deleteRangeRequest struct {
	FromID int64 `json:"from_id" validate:"required,gt=0"`
	ToID   int64 `json:"to_id" validate:"required,gt=0"`
}

// DeleteProductRange removes every product whose id falls inside the given
// inclusive range (admin only).
func DeleteProductRange(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload deleteRangeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.DeleteProductRange(r.Context(), payload.FromID, payload.ToID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": deleted})
	}
}

// ListCategories serves categories with their product counts.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

type createCategoryRequest struct {
	Name         string `json:"name" validate:"required"`
	DisplayOrder int    `json:"display_order"`
}

// CreateCategory registers a new category (admin only).
func CreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), payload.Name, payload.DisplayOrder)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// ListDistinctField serves distinct non-empty values for a catalog column.
// Used for the brand, manufacturer, and origin filter dropdowns.
func ListDistinctField(svc catalog.Service, field string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		values, err := svc.ListDistinct(r.Context(), field)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, values)
	}
}

type availabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// SetProductAvailability toggles a product's purchasable flag (admin only).
func SetProductAvailability(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload availabilityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetAvailability(r.Context(), id, payload.IsAvailable); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"is_available": payload.IsAvailable})
	}
}

type newStatusRequest struct {
	IsNew bool `json:"is_new"`
}

// SetProductNewStatus toggles a product's new-arrival badge (admin only).
func SetProductNewStatus(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload newStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetNew(r.Context(), id, payload.IsNew); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"is_new": payload.IsNew})
	}
}

type displayOrderRequest struct {
	DisplayOrder int `json:"display_order"`
}

// SetProductDisplayOrder overrides a product's listing position (admin only).
func SetProductDisplayOrder(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload displayOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetDisplayOrder(r.Context(), id, payload.DisplayOrder); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"display_order": payload.DisplayOrder})
	}
}
