package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/yahipe-backend/api/middleware"
	"github.com/angelmondragon/yahipe-backend/internal/analytics"
	"github.com/angelmondragon/yahipe-backend/internal/auth"
	"github.com/angelmondragon/yahipe-backend/internal/booking"
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/internal/dashboard"
	"github.com/angelmondragon/yahipe-backend/internal/insights"
	"github.com/angelmondragon/yahipe-backend/internal/session"
	"github.com/angelmondragon/yahipe-backend/internal/shops"
	"github.com/angelmondragon/yahipe-backend/pkg/config"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
	"github.com/angelmondragon/yahipe-backend/pkg/metrics"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func newTestRouter(t *testing.T, gen insights.Generator) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App:  config.AppConfig{Env: "dev", Port: "0"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Password: config.PasswordConfig{
			ArgonMemoryKB: 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
		},
	}
	logg := logger.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.NewMarketplace(reg)

	store, err := catalog.Open("")
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	sessions := session.NewRegistry()
	authSvc, err := auth.NewService(auth.ServiceParams{Directory: store, Sessions: sessions, Password: cfg.Password, Metrics: m, Logger: logg})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	shopsSvc, err := shops.NewService(store)
	if err != nil {
		t.Fatalf("shops service: %v", err)
	}
	clock := func() time.Time { return time.Date(2023, time.October, 2, 10, 0, 0, 0, time.Local) }
	dashSvc, err := dashboard.NewService(dashboard.ServiceParams{
		Analytics: analytics.NewService(analytics.Options{Clock: clock}),
		Insights:  insights.NewService(gen, m, logg),
		Metrics:   m,
		Logger:    logg,
	})
	if err != nil {
		t.Fatalf("dashboard service: %v", err)
	}
	return NewRouter(cfg, logg, nil, reg, sessions, authSvc, shopsSvc, booking.NewCapturer(), dashSvc, m)
}

func do(t *testing.T, h http.Handler, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "127.0.0.1:1234"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v (%s)", err, string(envelope.Data))
	}
}

func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"email":"`+email+`","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	decodeData(t, rec, &resp)
	if rec.Header().Get(middleware.SessionHeader) != resp.SessionID {
		t.Fatalf("expected session header to match body")
	}
	return resp.SessionID
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t, nil)
	for _, path := range []string{"/health/live", "/health/ready"} {
		if rec := do(t, h, http.MethodGet, path, "", ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
	login(t, h, "customer@yahipe.com")
	rec := do(t, h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "yahipe_logins_total") {
		t.Fatalf("expected login metric, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestLoginFailure(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := do(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"email":"customer@yahipe.com","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password.") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestConsumerFlow(t *testing.T) {
	h := newTestRouter(t, nil)
	sid := login(t, h, "customer@yahipe.com")

	rec := do(t, h, http.MethodGet, "/api/v1/shops?open_now=true", sid, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("shops: expected 200, got %d", rec.Code)
	}
	var browse struct {
		Categories []string `json:"categories"`
		Shops      []struct {
			ID string `json:"id"`
		} `json:"shops"`
		Markers []struct {
			ShopID string `json:"shop_id"`
		} `json:"markers"`
	}
	decodeData(t, rec, &browse)
	if len(browse.Shops) != 2 || browse.Shops[0].ID != "shop-1" || browse.Shops[1].ID != "shop-3" {
		t.Fatalf("unexpected open shops %+v", browse.Shops)
	}
	if len(browse.Markers) != 2 || browse.Categories[0] != "All" {
		t.Fatalf("unexpected markers/categories %+v %+v", browse.Markers, browse.Categories)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/shops?open_now=maybe", sid, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad open_now, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/shops/shop-1/appointments", sid, `{"service_id":"s1-1","staff_id":"st1-1","date":"2024-03-02","time":"10:30"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("book: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), booking.ConfirmationMessage) {
		t.Fatalf("expected confirmation message, got %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/v1/shops/shop-1/appointments", sid, `{"service_id":"s1-1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete booking, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/appointments", sid, "")
	var appts []booking.Appointment
	decodeData(t, rec, &appts)
	if len(appts) != 1 || appts[0].ServiceName != "Haircut - Men" {
		t.Fatalf("unexpected appointments %+v", appts)
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/dashboard/analytics", sid, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("consumer must not reach dashboard, got %d", rec.Code)
	}
}

func TestShopkeeperFlow(t *testing.T) {
	h := newTestRouter(t, stubGenerator{text: "🌟 Run a weekday discount"})
	sid := login(t, h, "shopkeeper@yahipe.com")

	if rec := do(t, h, http.MethodGet, "/api/v1/shops", sid, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("shopkeeper must not browse consumer routes, got %d", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/v1/dashboard/analytics", sid, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("analytics: expected 200, got %d", rec.Code)
	}
	var report struct {
		Date        string `json:"date"`
		WeeklySales []struct {
			Name  string `json:"name"`
			Total string `json:"total"`
		} `json:"weekly_sales"`
		Today struct {
			Revenue      string `json:"revenue"`
			Transactions int    `json:"transactions"`
		} `json:"today"`
		ActiveStaff int `json:"active_staff"`
	}
	decodeData(t, rec, &report)
	if report.Date != "2023-10-02" || report.Today.Transactions != 1 || report.Today.Revenue != "800" {
		t.Fatalf("unexpected today metrics %+v", report)
	}
	if report.WeeklySales[0].Name != "Sun" || report.WeeklySales[0].Total != "450" || report.ActiveStaff != 2 {
		t.Fatalf("unexpected weekly series %+v", report)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/dashboard/shop/toggle", sid, "")
	var shop catalog.Shop
	decodeData(t, rec, &shop)
	if shop.IsOpen {
		t.Fatal("expected shop to be closed after toggle")
	}

	rec = do(t, h, http.MethodPost, "/api/v1/dashboard/staff", sid, `{"name":"Priya","shift":"9 AM - 5 PM"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add staff: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodPost, "/api/v1/dashboard/services", sid, `{"name":"Pedicure","price":350}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add service: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodDelete, "/api/v1/dashboard/services/s1-5", sid, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("remove service: expected 204, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/v1/dashboard/staff/missing", sid, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("remove missing staff: expected 404, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/dashboard/insights", sid, "")
	var ins dashboard.InsightsResponse
	decodeData(t, rec, &ins)
	if ins.Fallback || ins.Insights != "🌟 Run a weekday discount" {
		t.Fatalf("unexpected insights %+v", ins)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/dashboard/insights/status", sid, "")
	var status dashboard.InsightsStatus
	decodeData(t, rec, &status)
	if status.Loading {
		t.Fatal("no generation should be in flight")
	}

	if rec := do(t, h, http.MethodPost, "/api/v1/auth/logout", sid, ""); rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/dashboard/shop", sid, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestInsightsFallbackOverHTTP(t *testing.T) {
	h := newTestRouter(t, stubGenerator{err: errors.New("quota exceeded")})
	sid := login(t, h, "shopkeeper@yahipe.com")

	rec := do(t, h, http.MethodPost, "/api/v1/dashboard/insights", sid, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var ins dashboard.InsightsResponse
	decodeData(t, rec, &ins)
	if !ins.Fallback || ins.Insights != insights.FallbackMessage {
		t.Fatalf("expected fallback, got %+v", ins)
	}
	if strings.Contains(rec.Body.String(), "quota") {
		t.Fatal("upstream cause must not leak to the client")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newTestRouter(t, nil)
	first := login(t, h, "shopkeeper@yahipe.com")
	second := login(t, h, "shopkeeper@yahipe.com")

	do(t, h, http.MethodPost, "/api/v1/dashboard/shop/toggle", first, "")

	var shop catalog.Shop
	decodeData(t, do(t, h, http.MethodGet, "/api/v1/dashboard/shop", second, ""), &shop)
	if !shop.IsOpen {
		t.Fatal("toggle in one session must not affect another")
	}
}

func TestMeRequiresSession(t *testing.T) {
	h := newTestRouter(t, nil)
	if rec := do(t, h, http.MethodGet, "/api/v1/auth/me", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	sid := login(t, h, "customer@yahipe.com")
	rec := do(t, h, http.MethodGet, "/api/v1/auth/me", sid, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"role":"consumer"`) {
		t.Fatalf("unexpected me response %d %s", rec.Code, rec.Body.String())
	}
}
