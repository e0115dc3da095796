package gallery

import (
	"testing"

	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
)

func TestValidateItemInput(t *testing.T) {
	valid := ItemInput{
		Title:    "Wedding Hampers",
		ImageURL: "https://storage.googleapis.com/bucket/gallery/hampers.jpg",
		IsActive: true,
	}
	if err := validateItemInput(valid); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	cases := []struct {
		name  string
		input ItemInput
	}{
		{"missingTitle", ItemInput{ImageURL: "https://example.com/a.jpg"}},
		{"missingImageURL", ItemInput{Title: "Hampers"}},
		{"blankTitle", ItemInput{Title: "   ", ImageURL: "https://example.com/a.jpg"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateItemInput(tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error code, got %v", err)
			}
		})
	}
}
