package validate

import (
	"testing"

	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Day   string `json:"day" validate:"required,datetime=2006-01-02"`
	Note  string `json:"-" validate:"max=3"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(&sample{Email: "nope", Day: "10/01/2023", Note: "long"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details type %T", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email detail %q", details["email"])
	}
	if details["day"] != "must match layout 2006-01-02" {
		t.Fatalf("unexpected day detail %q", details["day"])
	}
	if details["Note"] != "must be at most 3" {
		t.Fatalf("unexpected note detail %q", details["Note"])
	}
}

func TestStructPasses(t *testing.T) {
	if err := Struct(&sample{Email: "a@b.co", Day: "2024-02-29"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
