package reviews

import (
	"testing"

	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
)

func TestValidateSubmitInput(t *testing.T) {
	valid := SubmitInput{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Rating:        5,
		ReviewText:    "The pralines were excellent.",
	}
	if err := validateSubmitInput(valid); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	cases := []struct {
		name  string
		mutFn func(*SubmitInput)
	}{
		{"missingName", func(in *SubmitInput) { in.CustomerName = " " }},
		{"missingEmail", func(in *SubmitInput) { in.CustomerEmail = "" }},
		{"ratingTooLow", func(in *SubmitInput) { in.Rating = 0 }},
		{"ratingTooHigh", func(in *SubmitInput) { in.Rating = 6 }},
		{"missingText", func(in *SubmitInput) { in.ReviewText = "  " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutFn(&input)
			err := validateSubmitInput(input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error code, got %v", err)
			}
		})
	}
}
