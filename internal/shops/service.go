package shops

import (
	"context"
	"fmt"

	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
)

// Service exposes the consumer browse views over the catalog.
type Service interface {
	Browse(ctx context.Context, criteria Criteria) (*BrowseResult, error)
	Detail(ctx context.Context, shopID string) (*catalog.Shop, error)
}

type catalogReader interface {
	Shops() []catalog.Shop
	Shop(id string) (catalog.Shop, bool)
}

// BrowseResult backs both the map and list views from the same filtered list.
type BrowseResult struct {
	Categories []string `json:"categories"`
	Criteria   Criteria `json:"-"`
	Shops      []Row    `json:"shops"`
	Markers    []Marker `json:"markers"`
}

type service struct {
	catalog catalogReader
}

// NewService builds the browse service.
func NewService(reader catalogReader) (Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("catalog reader is required")
	}
	return &service{catalog: reader}, nil
}

func (s *service) Browse(ctx context.Context, criteria Criteria) (*BrowseResult, error) {
	all := s.catalog.Shops()
	criteria = criteria.Normalize()
	filtered := Filter(all, criteria)
	return &BrowseResult{
		Categories: Categories(all),
		Criteria:   criteria,
		Shops:      Rows(filtered),
		Markers:    Markers(filtered),
	}, nil
}

func (s *service) Detail(ctx context.Context, shopID string) (*catalog.Shop, error) {
	shop, ok := s.catalog.Shop(shopID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	return &shop, nil
}
