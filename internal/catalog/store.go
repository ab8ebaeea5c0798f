package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/yahipe-backend/pkg/enums"
)

// ErrShopNotFound is returned when a shopkeeper has no managed shop.
var ErrShopNotFound = errors.New("shop not found")

// Store is the immutable seeded catalog. Every accessor returns deep copies,
// so callers may mutate what they receive without affecting other readers.
type Store struct {
	users     []User
	shops     []Shop
	byEmail   map[string]int
	byUserID  map[string]int
	byShopID  map[string]int
	byOwnerID map[string]int
}

// NewStore indexes a validated seed.
func NewStore(seed *Seed) (*Store, error) {
	if err := Validate(seed); err != nil {
		return nil, err
	}
	s := &Store{
		users:     make([]User, len(seed.Users)),
		shops:     make([]Shop, len(seed.Shops)),
		byEmail:   make(map[string]int, len(seed.Users)),
		byUserID:  make(map[string]int, len(seed.Users)),
		byShopID:  make(map[string]int, len(seed.Shops)),
		byOwnerID: make(map[string]int, len(seed.Shops)),
	}
	copy(s.users, seed.Users)
	for i, u := range s.users {
		s.byEmail[normalizeEmail(u.Email)] = i
		s.byUserID[u.ID] = i
	}
	for i, shop := range seed.Shops {
		s.shops[i] = shop.Clone()
		s.byShopID[shop.ID] = i
		if shop.OwnerID != "" {
			if _, exists := s.byOwnerID[shop.OwnerID]; !exists {
				s.byOwnerID[shop.OwnerID] = i
			}
		}
	}
	return s, nil
}

// Open loads the seed at path (embedded when empty) and indexes it.
func Open(path string) (*Store, error) {
	seed, err := LoadSeed(path)
	if err != nil {
		return nil, err
	}
	return NewStore(seed)
}

// Users returns all seeded accounts in seed order.
func (s *Store) Users() []User {
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// UserByEmail matches case-insensitively after trimming.
func (s *Store) UserByEmail(email string) (User, bool) {
	i, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return User{}, false
	}
	return s.users[i], true
}

func (s *Store) UserByID(id string) (User, bool) {
	i, ok := s.byUserID[id]
	if !ok {
		return User{}, false
	}
	return s.users[i], true
}

// Shops returns deep copies of every shop in seed order.
func (s *Store) Shops() []Shop {
	out := make([]Shop, len(s.shops))
	for i, shop := range s.shops {
		out[i] = shop.Clone()
	}
	return out
}

func (s *Store) Shop(id string) (Shop, bool) {
	i, ok := s.byShopID[id]
	if !ok {
		return Shop{}, false
	}
	return s.shops[i].Clone(), true
}

// ShopForOwner resolves the shop a shopkeeper manages. The user's ShopID wins
// over the shop's OwnerID back-reference when both are present.
func (s *Store) ShopForOwner(user User) (Shop, error) {
	if user.Role != enums.UserRoleShopkeeper {
		return Shop{}, fmt.Errorf("user %q is not a shopkeeper", user.ID)
	}
	if id := strings.TrimSpace(user.ShopID); id != "" {
		if shop, ok := s.Shop(id); ok {
			return shop, nil
		}
	}
	if i, ok := s.byOwnerID[user.ID]; ok {
		return s.shops[i].Clone(), nil
	}
	return Shop{}, fmt.Errorf("no shop found for owner %q: %w", user.ID, ErrShopNotFound)
}
