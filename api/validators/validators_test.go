package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/google/uuid"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co","password":"x","extra":1}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"","password":""}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details := typed.Details().(map[string]string)
	if details["email"] != "is required" || details["password"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest("GET", "/?open_now=true&bad=maybe", nil)
	if v, err := ParseQueryBool(req, "open_now", false); err != nil || !v {
		t.Fatalf("expected true, got %v %v", v, err)
	}
	if v, err := ParseQueryBool(req, "missing", true); err != nil || !v {
		t.Fatalf("expected default, got %v %v", v, err)
	}
	if _, err := ParseQueryBool(req, "bad", false); err == nil {
		t.Fatal("expected error for invalid bool")
	}
}

func TestParseSessionID(t *testing.T) {
	id := uuid.New()
	got, err := ParseSessionID("  " + id.String() + " ")
	if err != nil || got != id {
		t.Fatalf("expected %s, got %s (%v)", id, got, err)
	}
	for _, raw := range []string{"", "abc", uuid.Nil.String()} {
		if _, err := ParseSessionID(raw); err != ErrInvalidSessionID {
			t.Fatalf("expected ErrInvalidSessionID for %q, got %v", raw, err)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"  Grocery  ", 3, "Gro"},
		{"Beauty   &\tSalon", 0, "Beauty & Salon"},
		{"Café Rio", 4, "Café"},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in, tc.max); got != tc.want {
			t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
