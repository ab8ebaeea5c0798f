package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/yahipe-backend/api/middleware"
	"github.com/angelmondragon/yahipe-backend/api/responses"
	"github.com/angelmondragon/yahipe-backend/api/validators"
	"github.com/angelmondragon/yahipe-backend/internal/dashboard"
	"github.com/angelmondragon/yahipe-backend/internal/session"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
)

// dashboardHandler resolves the session and service shared by every dashboard route.
func dashboardHandler(svc dashboard.Service, logg *logger.Logger, fn func(w http.ResponseWriter, r *http.Request, sess *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}
		fn(w, r, sess)
	}
}

func DashboardShop(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		shop, err := svc.Shop(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	})
}

func DashboardToggleOpen(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		shop, err := svc.ToggleOpen(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	})
}

func DashboardAddService(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		var body dashboard.AddServiceInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.AddService(r.Context(), sess, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	})
}

func DashboardRemoveService(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		if err := svc.RemoveService(r.Context(), sess, chi.URLParam(r, "serviceId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func DashboardAddStaff(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		var body dashboard.AddStaffInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.AddStaff(r.Context(), sess, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	})
}

func DashboardRemoveStaff(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		if err := svc.RemoveStaff(r.Context(), sess, chi.URLParam(r, "staffId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func DashboardAnalytics(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		report, err := svc.Analytics(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	})
}

// DashboardInsights always answers 200 once the shop resolves; generation
// failures come back as the fallback text.
func DashboardInsights(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		resp, err := svc.Insights(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	})
}

func DashboardInsightsStatus(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		status, err := svc.InsightsStatus(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	})
}
