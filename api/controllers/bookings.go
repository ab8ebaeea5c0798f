package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/yahipe-backend/api/middleware"
	"github.com/angelmondragon/yahipe-backend/api/responses"
	"github.com/angelmondragon/yahipe-backend/api/validators"
	"github.com/angelmondragon/yahipe-backend/internal/booking"
	"github.com/angelmondragon/yahipe-backend/internal/shops"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
	"github.com/angelmondragon/yahipe-backend/pkg/metrics"
)

type bookingResponse struct {
	Message     string              `json:"message"`
	Appointment booking.Appointment `json:"appointment"`
}

// BookAppointment captures a booking for the shop in the URL.
func BookAppointment(svc shops.Service, capturer *booking.Capturer, m *metrics.Marketplace, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || capturer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking unavailable"))
			return
		}
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		shop, err := svc.Detail(r.Context(), chi.URLParam(r, "shopId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body booking.Request
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appt, err := capturer.Capture(r.Context(), sess, *shop, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncBooking(shop.ID)
		if logg != nil {
			ctx := logg.WithFields(logg.WithShopID(r.Context(), shop.ID), map[string]any{
				"appointment_id": appt.ID.String(),
				"service_id":     appt.ServiceID,
				"staff_id":       appt.StaffID,
			})
			logg.Info(ctx, "booking.captured")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bookingResponse{
			Message:     booking.ConfirmationMessage,
			Appointment: appt,
		})
	}
}

// ListAppointments returns the appointments captured in this session.
func ListAppointments(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}
		responses.WriteSuccess(w, sess.Appointments())
	}
}
