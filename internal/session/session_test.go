package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/angelmondragon/yahipe-backend/internal/booking"
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/pkg/enums"
	"github.com/google/uuid"
)

func shopkeeper() catalog.User {
	return catalog.User{ID: "user-2", Role: enums.UserRoleShopkeeper, ShopID: "shop-1"}
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry()
	shop := catalog.Shop{ID: "shop-1", IsOpen: true}
	s := reg.Create(shopkeeper(), &shop)

	got, ok := reg.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("expected session to be registered")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", reg.Len())
	}

	if !reg.Delete(s.ID) {
		t.Fatal("expected delete to report existing session")
	}
	if _, ok := reg.Get(s.ID); ok {
		t.Fatal("session should be gone after delete")
	}
	if _, ok := s.User(); ok {
		t.Fatal("deleted session must be cleared")
	}
	if reg.Delete(uuid.New()) {
		t.Fatal("unknown session delete should report false")
	}
}

func TestSessionWorkspaceIsPrivate(t *testing.T) {
	reg := NewRegistry()
	seedShop := catalog.Shop{ID: "shop-1", IsOpen: true, Services: []catalog.Service{{ID: "a"}}}
	a := reg.Create(shopkeeper(), &seedShop)
	b := reg.Create(shopkeeper(), &seedShop)

	if _, err := a.UpdateShop(func(s catalog.Shop) (catalog.Shop, error) {
		return s.ToggleOpen(), nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	aShop, _ := a.Shop()
	bShop, _ := b.Shop()
	if aShop.IsOpen || !bShop.IsOpen || !seedShop.IsOpen {
		t.Fatalf("toggle leaked: a=%v b=%v seed=%v", aShop.IsOpen, bShop.IsOpen, seedShop.IsOpen)
	}

	aShop.Services[0].ID = "mutated"
	again, _ := a.Shop()
	if again.Services[0].ID != "a" {
		t.Fatal("returned shop must be a copy")
	}
}

func TestUpdateShopKeepsStateOnError(t *testing.T) {
	s := NewRegistry().Create(shopkeeper(), &catalog.Shop{ID: "shop-1", IsOpen: true})
	boom := errors.New("boom")
	_, err := s.UpdateShop(func(sh catalog.Shop) (catalog.Shop, error) {
		return sh.ToggleOpen(), boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	shop, _ := s.Shop()
	if !shop.IsOpen {
		t.Fatal("failed update must not change the workspace")
	}
}

func TestSessionWithoutShop(t *testing.T) {
	s := NewRegistry().Create(catalog.User{ID: "user-1", Role: enums.UserRoleConsumer}, nil)
	if _, err := s.Shop(); !errors.Is(err, ErrNoShop) {
		t.Fatalf("expected ErrNoShop, got %v", err)
	}
	if _, err := s.UpdateShop(func(sh catalog.Shop) (catalog.Shop, error) { return sh, nil }); !errors.Is(err, ErrNoShop) {
		t.Fatalf("expected ErrNoShop, got %v", err)
	}
}

func TestAppointmentsConcurrentAppend(t *testing.T) {
	s := NewRegistry().Create(catalog.User{ID: "user-1", Role: enums.UserRoleConsumer}, nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddAppointment(booking.Appointment{ID: uuid.New()})
		}()
	}
	wg.Wait()
	if got := len(s.Appointments()); got != 20 {
		t.Fatalf("expected 20 appointments, got %d", got)
	}
}
