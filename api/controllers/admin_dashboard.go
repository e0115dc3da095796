package controllers

import (
	"net/http"

	"github.com/chocokroko/chocokroko-backend/api/responses"
	"github.com/chocokroko/chocokroko-backend/internal/orders"
	"github.com/chocokroko/chocokroko-backend/internal/reviews"
	"github.com/chocokroko/chocokroko-backend/pkg/enums"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
	"github.com/chocokroko/chocokroko-backend/pkg/logger"
)

type dashboardResponse struct {
	OrdersByStatus map[enums.OrderStatus]int64 `json:"orders_by_status"`
	PendingReviews int64                       `json:"pending_reviews"`
}

// AdminDashboard returns the back-office landing page counters.
func AdminDashboard(orderSvc orders.Service, reviewSvc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if orderSvc == nil || reviewSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard services unavailable"))
			return
		}

		counts, err := orderSvc.CountsByStatus(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pending, err := reviewSvc.CountPending(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dashboardResponse{
			OrdersByStatus: counts,
			PendingReviews: pending,
		})
	}
}
