package controllers

import (
	"net/http"

	"github.com/arontec/scm-backend/api/responses"
	mediasvc "github.com/arontec/scm-backend/internal/media"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"github.com/arontec/scm-backend/pkg/logger"
)

const maxUploadMemory = 16 << 20

// UploadImage stores a product image under an opaque name and returns its
// public URL (admin only). The upload is a multipart form with the image
// under the "image" field.
func UploadImage(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "image field is required"))
			return
		}
		defer file.Close()

		stored, err := svc.SaveImage(r.Context(), mediasvc.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, stored)
	}
}
