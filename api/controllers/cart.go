package controllers

import (
	"net/http"

	"github.com/arontec/scm-backend/api/middleware"
	"github.com/arontec/scm-backend/api/responses"
	"github.com/arontec/scm-backend/api/validators"
	cartsvc "github.com/arontec/scm-backend/internal/cart"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"github.com/arontec/scm-backend/pkg/logger"
)

type addCartLineRequest struct {
	ProductID   int64  `json:"product_id" validate:"required,gt=0"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	OptionLabel string `json:"option_label"`
}

// AddCartLine appends a product to the caller's cart.
func AddCartLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload addCartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, err := svc.AddLine(r.Context(), userID, cartsvc.AddLineInput{
			ProductID:   payload.ProductID,
			Quantity:    payload.Quantity,
			OptionLabel: validators.SanitizeString(payload.OptionLabel, 0),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, line)
	}
}

// ListCartLines serves the caller's cart joined with product display fields.
func ListCartLines(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		lines, err := svc.ListLines(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lines)
	}
}
