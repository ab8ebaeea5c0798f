package session

import (
	"errors"
	"sync"
	"time"

	"github.com/angelmondragon/yahipe-backend/internal/booking"
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/google/uuid"
)

// ErrNoShop is returned by shop accessors when the session has no workspace.
var ErrNoShop = errors.New("session has no shop workspace")

// Session is the per-login context: the signed-in user, the shopkeeper's
// private copy of their shop, and the consumer's captured appointments.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu           sync.Mutex
	user         *catalog.User
	shop         *catalog.Shop
	appointments []booking.Appointment
}

func newSession(id uuid.UUID, user catalog.User, shop *catalog.Shop, now time.Time) *Session {
	s := &Session{ID: id, CreatedAt: now, user: &user}
	if shop != nil {
		workspace := shop.Clone()
		s.shop = &workspace
	}
	return s
}

// User returns the signed-in user; ok is false once the session is cleared.
func (s *Session) User() (catalog.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return catalog.User{}, false
	}
	return *s.user, true
}

// Shop returns a copy of the session's shop workspace.
func (s *Session) Shop() (catalog.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shop == nil {
		return catalog.Shop{}, ErrNoShop
	}
	return s.shop.Clone(), nil
}

// UpdateShop replaces the workspace with the result of fn while holding the
// session lock. The workspace is left untouched when fn fails.
func (s *Session) UpdateShop(fn func(catalog.Shop) (catalog.Shop, error)) (catalog.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shop == nil {
		return catalog.Shop{}, ErrNoShop
	}
	next, err := fn(s.shop.Clone())
	if err != nil {
		return catalog.Shop{}, err
	}
	stored := next.Clone()
	s.shop = &stored
	return next, nil
}

// AddAppointment appends to the session's appointment list.
func (s *Session) AddAppointment(appt booking.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = append(s.appointments, appt)
}

// Appointments returns the captured appointments in booking order.
func (s *Session) Appointments() []booking.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]booking.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// Clear drops every piece of session state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.shop = nil
	s.appointments = nil
}
