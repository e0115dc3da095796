package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/chocokroko/chocokroko-backend/pkg/config"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
	"github.com/chocokroko/chocokroko-backend/pkg/logger"
)

// Upload kinds group objects under a stable storage prefix.
const (
	KindProduct = "products"
	KindGallery = "gallery"
	KindOrder   = "orders"
)

var extensionsByContentType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// UploadInput describes one incoming image.
type UploadInput struct {
	Kind        string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is the stored object plus its public URL.
type UploadResult struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}

// Service validates and stores uploaded images.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}

type uploader interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)
}

type service struct {
	storage uploader
	cfg     config.MediaConfig
	logg    *logger.Logger
}

// NewService constructs the media service.
func NewService(storage uploader, cfg config.MediaConfig, logg *logger.Logger) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage client required")
	}
	return &service{storage: storage, cfg: cfg, logg: logg}, nil
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	kind := strings.TrimSpace(input.Kind)
	switch kind {
	case KindProduct, KindGallery, KindOrder:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown upload kind").
			WithDetails(map[string]any{"kind": input.Kind})
	}

	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	ext, ok := extensionsByContentType[contentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type").
			WithDetails(map[string]any{"content_type": input.ContentType})
	}

	if input.Size <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if max := s.cfg.MaxUploadBytes(); max > 0 && input.Size > max {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the upload size limit").
			WithDetails(map[string]any{"max_bytes": max})
	}

	objectName := path.Join("media", kind, uuid.NewString()+"."+ext)
	url, err := s.storage.Upload(ctx, objectName, contentType, input.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload image")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "image uploaded")
	}
	return &UploadResult{ObjectName: objectName, URL: url}, nil
}
