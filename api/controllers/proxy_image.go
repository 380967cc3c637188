package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/arontec/scm-backend/api/responses"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
	"github.com/arontec/scm-backend/pkg/imageproxy"
	"github.com/arontec/scm-backend/pkg/logger"
)

type proxyFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*imageproxy.Result, error)
}

// ProxyImage streams a remote image through the server so the storefront can
// render vendor-hosted assets without mixed-content or CORS failures.
func ProxyImage(fetcher proxyFetcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fetcher == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "image proxy unavailable"))
			return
		}

		target := strings.TrimSpace(r.URL.Query().Get("url"))
		if target == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "url query parameter is required"))
			return
		}
		parsed, err := url.Parse(target)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "url must be absolute http or https"))
			return
		}

		result, err := fetcher.Fetch(r.Context(), target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch remote image"))
			return
		}

		contentType := result.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(result.Body)
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Body)
	}
}
