package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/yahipe-backend/api/responses"
	"github.com/angelmondragon/yahipe-backend/api/validators"
	"github.com/angelmondragon/yahipe-backend/internal/shops"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
)

// ShopList returns the filtered shops as list rows and map markers.
func ShopList(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shops service unavailable"))
			return
		}

		openNow, err := validators.ParseQueryBool(r, "open_now", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		criteria := shops.Criteria{
			Category: validators.ParseQueryString(r, "category", 120),
			OpenNow:  openNow,
		}

		result, err := svc.Browse(r.Context(), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ShopDetail returns one shop with its services and staff for the booking form.
func ShopDetail(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shops service unavailable"))
			return
		}
		shop, err := svc.Detail(r.Context(), chi.URLParam(r, "shopId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}
