package catalog

import (
	"github.com/angelmondragon/yahipe-backend/pkg/enums"
	"github.com/angelmondragon/yahipe-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// DefaultServiceType is shown for services that carry no category tag.
const DefaultServiceType = "General"

// User is a seeded account. Password is the plaintext seed credential and never serialized.
type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Password string         `json:"-"`
	Name     string         `json:"name"`
	Role     enums.UserRole `json:"role"`
	ShopID   string         `json:"shop_id,omitempty"`
}

// Shop is a local business with its offering and sales history.
type Shop struct {
	ID       string         `json:"id"`
	OwnerID  string         `json:"owner_id"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Address  string         `json:"address"`
	Location types.GeoPoint `json:"location"`
	IsOpen   bool           `json:"is_open"`
	Services []Service      `json:"services"`
	Staff    []Staff        `json:"staff"`
	Sales    []Sale         `json:"sales"`
}

// Service is a priced offering.
type Service struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Type       string          `json:"type,omitempty"`
	DemoPhotos []string        `json:"demo_photos,omitempty"`
}

// DisplayType returns the category badge, falling back to DefaultServiceType.
func (s Service) DisplayType() string {
	if s.Type == "" {
		return DefaultServiceType
	}
	return s.Type
}

type Staff struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Shift      string   `json:"shift"`
	Photo      string   `json:"photo,omitempty"`
	DemoPhotos []string `json:"demo_photos,omitempty"`
}

// Sale is one historical service transaction.
type Sale struct {
	Date      Date            `json:"date"`
	ServiceID string          `json:"service_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// FindService resolves a service by id within the shop.
func (s Shop) FindService(id string) (Service, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return Service{}, false
}

// FindStaff resolves a staff member by id within the shop.
func (s Shop) FindStaff(id string) (Staff, bool) {
	for _, st := range s.Staff {
		if st.ID == id {
			return st, true
		}
	}
	return Staff{}, false
}
