package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/yahipe-backend/internal/analytics"
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/internal/insights"
	"github.com/angelmondragon/yahipe-backend/internal/session"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
	"github.com/angelmondragon/yahipe-backend/pkg/metrics"
	"github.com/angelmondragon/yahipe-backend/pkg/validate"
	"github.com/google/uuid"
)

const shopMissingMessage = "shop not found for shopkeeper"

// Workspace is the shopkeeper's private shop copy.
type Workspace interface {
	Shop() (catalog.Shop, error)
	UpdateShop(fn func(catalog.Shop) (catalog.Shop, error)) (catalog.Shop, error)
}

// Service implements the shopkeeper dashboard operations.
type Service interface {
	Shop(ctx context.Context, ws Workspace) (*catalog.Shop, error)
	ToggleOpen(ctx context.Context, ws Workspace) (*catalog.Shop, error)
	AddService(ctx context.Context, ws Workspace, input AddServiceInput) (*catalog.Service, error)
	RemoveService(ctx context.Context, ws Workspace, serviceID string) error
	AddStaff(ctx context.Context, ws Workspace, input AddStaffInput) (*catalog.Staff, error)
	RemoveStaff(ctx context.Context, ws Workspace, staffID string) error
	Analytics(ctx context.Context, ws Workspace) (*AnalyticsResponse, error)
	Insights(ctx context.Context, ws Workspace) (*InsightsResponse, error)
	InsightsStatus(ctx context.Context, ws Workspace) (*InsightsStatus, error)
}

type insightsGenerator interface {
	Generate(ctx context.Context, shop catalog.Shop) insights.Result
	InFlight(shop catalog.Shop) bool
}

// ServiceParams bundles the dashboard dependencies.
type ServiceParams struct {
	Analytics analytics.Service
	Insights  insightsGenerator
	Metrics   *metrics.Marketplace
	Logger    *logger.Logger
}

type service struct {
	analytics analytics.Service
	insights  insightsGenerator
	metrics   *metrics.Marketplace
	logg      *logger.Logger
	newID     func() string
}

// NewService builds the dashboard service.
func NewService(params ServiceParams) (Service, error) {
	if params.Analytics == nil {
		return nil, fmt.Errorf("analytics service is required")
	}
	if params.Insights == nil {
		return nil, fmt.Errorf("insights service is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		analytics: params.Analytics,
		insights:  params.Insights,
		metrics:   params.Metrics,
		logg:      logg,
		newID:     uuid.NewString,
	}, nil
}

func (s *service) Shop(ctx context.Context, ws Workspace) (*catalog.Shop, error) {
	shop, err := currentShop(ws)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (s *service) ToggleOpen(ctx context.Context, ws Workspace) (*catalog.Shop, error) {
	shop, err := s.mutate(ctx, ws, "toggle_open", func(shop catalog.Shop) (catalog.Shop, error) {
		return shop.ToggleOpen(), nil
	})
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithFields(s.logg.WithShopID(ctx, shop.ID), map[string]any{"is_open": shop.IsOpen})
	s.logg.Info(ctx, "dashboard.shop.toggled")
	return &shop, nil
}

func (s *service) AddService(ctx context.Context, ws Workspace, input AddServiceInput) (*catalog.Service, error) {
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "must be non-negative"})
	}
	svc := catalog.Service{
		ID:         s.newID(),
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price,
		Type:       strings.TrimSpace(input.Type),
		DemoPhotos: input.DemoPhotos,
	}
	if _, err := s.mutate(ctx, ws, "add_service", func(shop catalog.Shop) (catalog.Shop, error) {
		return shop.WithService(svc), nil
	}); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *service) RemoveService(ctx context.Context, ws Workspace, serviceID string) error {
	_, err := s.mutate(ctx, ws, "remove_service", func(shop catalog.Shop) (catalog.Shop, error) {
		next, ok := shop.WithoutService(serviceID)
		if !ok {
			return shop, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return next, nil
	})
	return err
}

func (s *service) AddStaff(ctx context.Context, ws Workspace, input AddStaffInput) (*catalog.Staff, error) {
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}
	member := catalog.Staff{
		ID:         s.newID(),
		Name:       strings.TrimSpace(input.Name),
		Shift:      strings.TrimSpace(input.Shift),
		Photo:      input.Photo,
		DemoPhotos: input.DemoPhotos,
	}
	if _, err := s.mutate(ctx, ws, "add_staff", func(shop catalog.Shop) (catalog.Shop, error) {
		return shop.WithStaff(member), nil
	}); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *service) RemoveStaff(ctx context.Context, ws Workspace, staffID string) error {
	_, err := s.mutate(ctx, ws, "remove_staff", func(shop catalog.Shop) (catalog.Shop, error) {
		next, ok := shop.WithoutStaff(staffID)
		if !ok {
			return shop, pkgerrors.New(pkgerrors.CodeNotFound, "staff member not found")
		}
		return next, nil
	})
	return err
}

func (s *service) Analytics(ctx context.Context, ws Workspace) (*AnalyticsResponse, error) {
	shop, err := currentShop(ws)
	if err != nil {
		return nil, err
	}
	return fromReport(s.analytics.Report(ctx, shop)), nil
}

func (s *service) Insights(ctx context.Context, ws Workspace) (*InsightsResponse, error) {
	shop, err := currentShop(ws)
	if err != nil {
		return nil, err
	}
	res := s.insights.Generate(s.logg.WithShopID(ctx, shop.ID), shop)
	return &InsightsResponse{Insights: res.Display(), Fallback: res.Fallback()}, nil
}

func (s *service) InsightsStatus(ctx context.Context, ws Workspace) (*InsightsStatus, error) {
	shop, err := currentShop(ws)
	if err != nil {
		return nil, err
	}
	return &InsightsStatus{Loading: s.insights.InFlight(shop)}, nil
}

func (s *service) mutate(ctx context.Context, ws Workspace, op string, fn func(catalog.Shop) (catalog.Shop, error)) (catalog.Shop, error) {
	if ws == nil {
		return catalog.Shop{}, pkgerrors.New(pkgerrors.CodeNotFound, shopMissingMessage)
	}
	shop, err := ws.UpdateShop(fn)
	if err != nil {
		return catalog.Shop{}, mapWorkspaceError(err)
	}
	s.metrics.IncShopMutation(op)
	return shop, nil
}

func currentShop(ws Workspace) (catalog.Shop, error) {
	if ws == nil {
		return catalog.Shop{}, pkgerrors.New(pkgerrors.CodeNotFound, shopMissingMessage)
	}
	shop, err := ws.Shop()
	if err != nil {
		return catalog.Shop{}, mapWorkspaceError(err)
	}
	return shop, nil
}

func mapWorkspaceError(err error) error {
	if errors.Is(err, session.ErrNoShop) {
		return pkgerrors.New(pkgerrors.CodeNotFound, shopMissingMessage)
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update shop")
}
