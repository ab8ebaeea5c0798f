package dashboard

import (
	"github.com/angelmondragon/yahipe-backend/internal/analytics"
	"github.com/shopspring/decimal"
)

// AddServiceInput is the "add service" form.
type AddServiceInput struct {
	Name       string          `json:"name" validate:"required,max=120"`
	Price      decimal.Decimal `json:"price"`
	Type       string          `json:"type,omitempty" validate:"max=60"`
	DemoPhotos []string        `json:"demo_photos,omitempty" validate:"max=10,dive,url"`
}

// AddStaffInput is the "add staff" form.
type AddStaffInput struct {
	Name       string   `json:"name" validate:"required,max=120"`
	Shift      string   `json:"shift" validate:"required,max=60"`
	Photo      string   `json:"photo,omitempty" validate:"omitempty,url"`
	DemoPhotos []string `json:"demo_photos,omitempty" validate:"max=10,dive,url"`
}

// AnalyticsResponse feeds the dashboard charts and the today cards.
type AnalyticsResponse struct {
	Date            string                 `json:"date"`
	WeeklySales     []analytics.LabelTotal `json:"weekly_sales"`
	PopularServices []analytics.LabelCount `json:"popular_services"`
	Today           analytics.TodayMetrics `json:"today"`
	ActiveStaff     int                    `json:"active_staff"`
}

// InsightsResponse carries either the generated suggestions or the apology text.
type InsightsResponse struct {
	Insights string `json:"insights"`
	Fallback bool   `json:"fallback"`
}

// InsightsStatus lets clients show a loader while generation runs.
type InsightsStatus struct {
	Loading bool `json:"loading"`
}

func fromReport(r *analytics.Report) *AnalyticsResponse {
	return &AnalyticsResponse{
		Date:            r.Date.String(),
		WeeklySales:     r.WeeklySales,
		PopularServices: r.PopularServices,
		Today:           r.Today,
		ActiveStaff:     r.ActiveStaff,
	}
}
