package env

import "testing"

func TestGetFallback(t *testing.T) {
	t.Setenv("YAHIPE_TEST_VALUE", "")
	if got := Get("YAHIPE_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("YAHIPE_TEST_VALUE", " console ")
	if got := Get("YAHIPE_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("YAHIPE_TEST_FLAG", "true")
	if !Bool("YAHIPE_TEST_FLAG", false) {
		t.Fatal("expected true")
	}
	t.Setenv("YAHIPE_TEST_FLAG", "nope")
	if Bool("YAHIPE_TEST_FLAG", false) {
		t.Fatal("malformed value should fall back")
	}
}
