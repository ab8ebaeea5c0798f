package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/angelmondragon/yahipe-backend/pkg/enums"
	"github.com/angelmondragon/yahipe-backend/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the read-only snapshot handed to the Store at startup.
type Seed struct {
	Users []User
	Shops []Shop
}

type seedDocument struct {
	Users []seedUser `yaml:"users"`
	Shops []seedShop `yaml:"shops"`
}

type seedUser struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	ShopID   string `yaml:"shop_id"`
}

type seedShop struct {
	ID       string         `yaml:"id"`
	OwnerID  string         `yaml:"owner_id"`
	Name     string         `yaml:"name"`
	Category string         `yaml:"category"`
	Address  string         `yaml:"address"`
	Location types.GeoPoint `yaml:"location"`
	IsOpen   bool           `yaml:"is_open"`
	Services []seedService  `yaml:"services"`
	Staff    []seedStaff    `yaml:"staff"`
	Sales    []seedSale     `yaml:"sales"`
}

type seedService struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Price      float64  `yaml:"price"`
	Type       string   `yaml:"type"`
	DemoPhotos []string `yaml:"demo_photos"`
}

type seedStaff struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Shift      string   `yaml:"shift"`
	Photo      string   `yaml:"photo"`
	DemoPhotos []string `yaml:"demo_photos"`
}

type seedSale struct {
	Date      string  `yaml:"date"`
	ServiceID string  `yaml:"service_id"`
	Amount    float64 `yaml:"amount"`
}

// DefaultSeed parses the catalog compiled into the binary.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(bytes.NewReader(defaultSeed))
}

// LoadSeed reads the catalog at path, or the embedded catalog when path is empty.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes and validates a YAML catalog.
func ParseSeed(r io.Reader) (*Seed, error) {
	var doc seedDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	var errs error
	seed := &Seed{
		Users: make([]User, 0, len(doc.Users)),
		Shops: make([]Shop, 0, len(doc.Shops)),
	}
	for _, u := range doc.Users {
		role, err := enums.ParseUserRole(u.Role)
		if err != nil {
			// Kept raw so Validate reports it alongside every other violation.
			role = enums.UserRole(u.Role)
		}
		seed.Users = append(seed.Users, User{
			ID:       u.ID,
			Email:    u.Email,
			Password: u.Password,
			Name:     u.Name,
			Role:     role,
			ShopID:   u.ShopID,
		})
	}
	for i, s := range doc.Shops {
		shop, err := s.toShop()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d]: %w", i, err))
			continue
		}
		seed.Shops = append(seed.Shops, shop)
	}
	if errs = multierr.Append(errs, Validate(seed)); errs != nil {
		return nil, errs
	}
	return seed, nil
}

func (s seedShop) toShop() (Shop, error) {
	shop := Shop{
		ID:       s.ID,
		OwnerID:  s.OwnerID,
		Name:     s.Name,
		Category: s.Category,
		Address:  s.Address,
		Location: s.Location,
		IsOpen:   s.IsOpen,
		Services: make([]Service, 0, len(s.Services)),
		Staff:    make([]Staff, 0, len(s.Staff)),
		Sales:    make([]Sale, 0, len(s.Sales)),
	}
	for _, svc := range s.Services {
		shop.Services = append(shop.Services, Service{
			ID:         svc.ID,
			Name:       svc.Name,
			Price:      decimal.NewFromFloat(svc.Price),
			Type:       svc.Type,
			DemoPhotos: svc.DemoPhotos,
		})
	}
	for _, st := range s.Staff {
		shop.Staff = append(shop.Staff, Staff(st))
	}
	var errs error
	for j, sale := range s.Sales {
		date, err := ParseDate(sale.Date)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sales[%d]: %w", j, err))
			continue
		}
		shop.Sales = append(shop.Sales, Sale{
			Date:      date,
			ServiceID: sale.ServiceID,
			Amount:    decimal.NewFromFloat(sale.Amount),
		})
	}
	return shop, errs
}
