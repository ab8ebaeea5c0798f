package enums

import "testing"

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole(" Shopkeeper ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != UserRoleShopkeeper {
		t.Fatalf("expected shopkeeper got %s", role)
	}
	if _, err := ParseUserRole("admin"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if UserRole("admin").IsValid() {
		t.Fatal("admin should not be valid")
	}
}
