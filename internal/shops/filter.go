package shops

import (
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/pkg/types"
)

// AllCategories disables the category predicate.
const AllCategories = "All"

// Criteria holds the consumer's browse filters.
type Criteria struct {
	Category string
	OpenNow  bool
}

// Normalize treats an empty category as AllCategories.
func (c Criteria) Normalize() Criteria {
	if c.Category == "" {
		c.Category = AllCategories
	}
	return c
}

// Matches applies both predicates to a single shop.
func (c Criteria) Matches(shop catalog.Shop) bool {
	c = c.Normalize()
	if c.Category != AllCategories && shop.Category != c.Category {
		return false
	}
	if c.OpenNow && !shop.IsOpen {
		return false
	}
	return true
}

// Filter returns the shops matching criteria in their original order.
// The input slice is never modified.
func Filter(list []catalog.Shop, criteria Criteria) []catalog.Shop {
	out := make([]catalog.Shop, 0, len(list))
	for _, shop := range list {
		if criteria.Matches(shop) {
			out = append(out, shop)
		}
	}
	return out
}

// Categories returns AllCategories followed by each distinct category in first-seen order.
func Categories(list []catalog.Shop) []string {
	out := []string{AllCategories}
	seen := map[string]struct{}{}
	for _, shop := range list {
		if _, ok := seen[shop.Category]; ok {
			continue
		}
		seen[shop.Category] = struct{}{}
		out = append(out, shop.Category)
	}
	return out
}

// Marker is what the map collaborator pins.
type Marker struct {
	ShopID   string         `json:"shop_id"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Location types.GeoPoint `json:"location"`
	IsOpen   bool           `json:"is_open"`
}

// Row is one entry in the list view.
type Row struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Address    string         `json:"address"`
	Location   types.GeoPoint `json:"location"`
	IsOpen     bool           `json:"is_open"`
	StaffCount int            `json:"staff_count"`
}

func Markers(list []catalog.Shop) []Marker {
	out := make([]Marker, 0, len(list))
	for _, shop := range list {
		out = append(out, Marker{
			ShopID:   shop.ID,
			Name:     shop.Name,
			Category: shop.Category,
			Location: shop.Location,
			IsOpen:   shop.IsOpen,
		})
	}
	return out
}

func Rows(list []catalog.Shop) []Row {
	out := make([]Row, 0, len(list))
	for _, shop := range list {
		out = append(out, Row{
			ID:         shop.ID,
			Name:       shop.Name,
			Category:   shop.Category,
			Address:    shop.Address,
			Location:   shop.Location,
			IsOpen:     shop.IsOpen,
			StaffCount: len(shop.Staff),
		})
	}
	return out
}
