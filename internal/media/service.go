package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arontec/scm-backend/pkg/config"
	pkgerrors "github.com/arontec/scm-backend/pkg/errors"
)

// Service stores uploaded product images on local disk. Files are served back
// under the configured public path; only the resulting URL ever reaches the
// catalog.
type Service interface {
	SaveImage(ctx context.Context, upload Upload) (*StoredFile, error)
}

// Upload is one incoming multipart file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// StoredFile points at the persisted image.
type StoredFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
}

type service struct {
	cfg config.UploadsConfig
}

// NewService constructs a media service and ensures the upload dir exists.
func NewService(cfg config.UploadsConfig) (Service, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("uploads dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &service{cfg: cfg}, nil
}

func (s *service) SaveImage(_ context.Context, upload Upload) (*StoredFile, error) {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only image uploads are accepted")
	}
	if upload.Size <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaded file is empty")
	}
	if s.cfg.MaxSizeByte > 0 && upload.Size > s.cfg.MaxSizeByte {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("uploaded file exceeds %d bytes", s.cfg.MaxSizeByte))
	}

	// Stored names are opaque; the original name survives only in the
	// response so nothing the client sent touches the filesystem path.
	name := uuid.NewString() + strings.ToLower(filepath.Ext(upload.Filename))
	target := filepath.Join(s.cfg.Dir, name)

	out, err := os.Create(target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create upload file")
	}
	defer out.Close()

	limit := upload.Size
	if s.cfg.MaxSizeByte > 0 {
		limit = s.cfg.MaxSizeByte
	}
	written, err := io.Copy(out, io.LimitReader(upload.Body, limit+1))
	if err != nil {
		os.Remove(target)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write upload file")
	}
	if s.cfg.MaxSizeByte > 0 && written > s.cfg.MaxSizeByte {
		os.Remove(target)
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("uploaded file exceeds %d bytes", s.cfg.MaxSizeByte))
	}

	return &StoredFile{
		URL:          path.Join(s.cfg.PublicPath, name),
		Filename:     name,
		OriginalName: upload.Filename,
	}, nil
}
