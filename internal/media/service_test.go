package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/chocokroko/chocokroko-backend/pkg/config"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
)

type stubUploader struct {
	objectName  string
	contentType string
	err         error
}

func (s *stubUploader) Upload(_ context.Context, objectName, contentType string, _ io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.objectName = objectName
	s.contentType = contentType
	return "https://storage.googleapis.com/bucket/" + objectName, nil
}

func TestUploadStoresImage(t *testing.T) {
	storage := &stubUploader{}
	svc, err := NewService(storage, config.MediaConfig{MaxUploadMB: 1}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Upload(context.Background(), UploadInput{
		Kind:        KindProduct,
		FileName:    "truffle.png",
		ContentType: "image/png",
		Size:        1024,
		Body:        strings.NewReader("fake image bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(result.ObjectName, "media/products/") || !strings.HasSuffix(result.ObjectName, ".png") {
		t.Fatalf("unexpected object name %s", result.ObjectName)
	}
	if storage.contentType != "image/png" {
		t.Fatalf("unexpected content type %s", storage.contentType)
	}
	if result.URL == "" {
		t.Fatal("expected a public url")
	}
}

func TestUploadValidation(t *testing.T) {
	svc, err := NewService(&stubUploader{}, config.MediaConfig{MaxUploadMB: 1}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	cases := []struct {
		name  string
		input UploadInput
	}{
		{"unknownKind", UploadInput{Kind: "videos", ContentType: "image/png", Size: 10}},
		{"unsupportedType", UploadInput{Kind: KindGallery, ContentType: "image/gif", Size: 10}},
		{"emptyFile", UploadInput{Kind: KindGallery, ContentType: "image/png", Size: 0}},
		{"tooLarge", UploadInput{Kind: KindGallery, ContentType: "image/png", Size: 2 << 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.Body = strings.NewReader("x")
			_, err := svc.Upload(ctx, tc.input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
