// Package app assembles the marketplace services from configuration. Both the
// HTTP server and the CLI build on it.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/yahipe-backend/internal/analytics"
	"github.com/angelmondragon/yahipe-backend/internal/auth"
	"github.com/angelmondragon/yahipe-backend/internal/booking"
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/internal/dashboard"
	"github.com/angelmondragon/yahipe-backend/internal/insights"
	"github.com/angelmondragon/yahipe-backend/internal/session"
	"github.com/angelmondragon/yahipe-backend/internal/shops"
	"github.com/angelmondragon/yahipe-backend/pkg/config"
	"github.com/angelmondragon/yahipe-backend/pkg/genai"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
	"github.com/angelmondragon/yahipe-backend/pkg/metrics"
	"github.com/angelmondragon/yahipe-backend/pkg/redis"
)

// App holds every wired service.
type App struct {
	Catalog   *catalog.Store
	Sessions  *session.Registry
	Registry  *prometheus.Registry
	Metrics   *metrics.Marketplace
	Redis     *redis.Client
	Auth      auth.Service
	Shops     shops.Service
	Capturer  *booking.Capturer
	Analytics analytics.Service
	Insights  *insights.Service
	Dashboard dashboard.Service
}

// New wires the services. Redis and Gemini are optional: without them the
// login limiter is off and insights always return the fallback text.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	store, err := catalog.Open(cfg.Seed.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMarketplace(reg)

	a := &App{
		Catalog:  store,
		Sessions: session.NewRegistry(),
		Registry: reg,
		Metrics:  m,
		Capturer: booking.NewCapturer(),
	}

	if cfg.Redis.Enabled() {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		a.Redis = client
	} else {
		logg.Warn(ctx, "redis not configured, login rate limiting disabled")
	}

	a.Auth, err = auth.NewService(auth.ServiceParams{
		Directory: store,
		Sessions:  a.Sessions,
		Password:  cfg.Password,
		Metrics:   m,
		Logger:    logg,
	})
	if err != nil {
		return nil, a.closeWith(fmt.Errorf("create auth service: %w", err))
	}

	a.Shops, err = shops.NewService(store)
	if err != nil {
		return nil, a.closeWith(fmt.Errorf("create shops service: %w", err))
	}

	opts := analytics.Options{}
	if t, ok := cfg.Analytics.FixedToday(); ok {
		fixed := catalog.DateOf(t)
		opts.FixedToday = &fixed
		logg.Info(logg.WithField(ctx, "today", fixed.String()), "analytics using fixed date")
	}
	a.Analytics = analytics.NewService(opts)

	var generator insights.Generator
	if cfg.Gemini.APIKey != "" {
		client, err := genai.NewClient(ctx, cfg.Gemini.APIKey, genai.WithModel(cfg.Gemini.Model))
		if err != nil {
			return nil, a.closeWith(fmt.Errorf("create gemini client: %w", err))
		}
		generator = client
	} else {
		logg.Warn(ctx, "gemini api key not configured, insights will use the fallback message")
	}
	a.Insights = insights.NewService(generator, m, logg)

	a.Dashboard, err = dashboard.NewService(dashboard.ServiceParams{
		Analytics: a.Analytics,
		Insights:  a.Insights,
		Metrics:   m,
		Logger:    logg,
	})
	if err != nil {
		return nil, a.closeWith(fmt.Errorf("create dashboard service: %w", err))
	}
	return a, nil
}

// Close releases external connections.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.Redis.Close()
}

func (a *App) closeWith(err error) error {
	return multierr.Append(err, a.Close())
}
