package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/yahipe-backend/api/controllers"
	"github.com/angelmondragon/yahipe-backend/api/middleware"
	"github.com/angelmondragon/yahipe-backend/internal/auth"
	"github.com/angelmondragon/yahipe-backend/internal/booking"
	"github.com/angelmondragon/yahipe-backend/internal/dashboard"
	"github.com/angelmondragon/yahipe-backend/internal/session"
	"github.com/angelmondragon/yahipe-backend/internal/shops"
	"github.com/angelmondragon/yahipe-backend/pkg/config"
	"github.com/angelmondragon/yahipe-backend/pkg/enums"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
	"github.com/angelmondragon/yahipe-backend/pkg/metrics"
	"github.com/angelmondragon/yahipe-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	sessions *session.Registry,
	authService auth.Service,
	shopsService shops.Service,
	capturer *booking.Capturer,
	dashboardService dashboard.Service,
	marketplaceMetrics *metrics.Marketplace,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	pingers := map[string]controllers.Pinger{}
	var counters middleware.CounterStore
	if redisClient != nil {
		pingers["redis"] = redisClient
		counters = redisClient
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	loginLimit := middleware.NewLoginRateLimit(cfg.AuthRateLimit)
	requireSession := middleware.Session(sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimit.Middleware(counters, logg)).Post("/login", controllers.AuthLogin(authService, logg))
			r.With(requireSession).Post("/logout", controllers.AuthLogout(authService, logg))
			r.With(requireSession).Get("/me", controllers.AuthMe(logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Use(middleware.RequireRole(enums.UserRoleConsumer, logg))
			r.Get("/shops", controllers.ShopList(shopsService, logg))
			r.Get("/shops/{shopId}", controllers.ShopDetail(shopsService, logg))
			r.Post("/shops/{shopId}/appointments", controllers.BookAppointment(shopsService, capturer, marketplaceMetrics, logg))
			r.Get("/appointments", controllers.ListAppointments(logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(requireSession)
			r.Use(middleware.RequireRole(enums.UserRoleShopkeeper, logg))
			r.Get("/shop", controllers.DashboardShop(dashboardService, logg))
			r.Post("/shop/toggle", controllers.DashboardToggleOpen(dashboardService, logg))
			r.Post("/services", controllers.DashboardAddService(dashboardService, logg))
			r.Delete("/services/{serviceId}", controllers.DashboardRemoveService(dashboardService, logg))
			r.Post("/staff", controllers.DashboardAddStaff(dashboardService, logg))
			r.Delete("/staff/{staffId}", controllers.DashboardRemoveStaff(dashboardService, logg))
			r.Get("/analytics", controllers.DashboardAnalytics(dashboardService, logg))
			r.Post("/insights", controllers.DashboardInsights(dashboardService, logg))
			r.Get("/insights/status", controllers.DashboardInsightsStatus(dashboardService, logg))
		})
	})

	return r
}
