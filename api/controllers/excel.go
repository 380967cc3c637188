package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arontec/scm-backend/api/responses"
	excelsvc "github.com/arontec/scm-backend/internal/excel"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"github.com/arontec/scm-backend/pkg/logger"
)

const maxImportBytes = 32 << 20

// ImportProducts ingests a product workbook (admin only). The upload is a
// multipart form with the workbook under the "file" field.
func ImportProducts(svc excelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "excel service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file field is required"))
			return
		}
		defer file.Close()

		result, err := svc.Import(r.Context(), file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SwapPrices repairs rows whose consumer and B2B prices were transposed
// during import (admin only).
func SwapPrices(svc excelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return repairHandler(svc, logg, func(ctx context.Context) (int64, error) {
		return svc.SwapPrices(ctx)
	})
}

// SyncSupplyPrices backfills supply prices from the B2B price (admin only).
func SyncSupplyPrices(svc excelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return repairHandler(svc, logg, func(ctx context.Context) (int64, error) {
		return svc.SyncSupplyPrices(ctx)
	})
}

// SyncShippingFees copies the general shipping fee into empty individual
// fees (admin only).
func SyncShippingFees(svc excelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return repairHandler(svc, logg, func(ctx context.Context) (int64, error) {
		return svc.SyncShippingFees(ctx)
	})
}

func repairHandler(svc excelsvc.Service, logg *logger.Logger, fn func(ctx context.Context) (int64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "excel service unavailable"))
			return
		}

		affected, err := fn(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"affected": affected})
	}
}

// FixData runs every pricing and shipping repair rule in one pass
// (admin only).
func FixData(svc excelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "excel service unavailable"))
			return
		}

		result, err := svc.FixAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ExportProducts streams the full catalog as a marketplace upload workbook
// (admin only).
func ExportProducts(svc excelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "excel service unavailable"))
			return
		}

		workbook, err := svc.Export(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102_150405"))
		streamWorkbook(r.Context(), logg, w, workbook, filename)
	}
}

// streamWorkbook writes an xlsx attachment. Failures after the header is
// sent can only be logged.
func streamWorkbook(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, workbook *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	if err := workbook.Write(w); err != nil && logg != nil {
		logg.Error(ctx, "workbook.stream.failed", err)
	}
}
