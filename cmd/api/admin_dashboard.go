package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mesa/internal/feedback"
)

// getDashboardHandler builds the aggregate snapshot from the tenant-scoped
// set. It is read-only and tolerates slightly stale data.
func (app *application) getDashboardHandler(w http.ResponseWriter, r *http.Request) {
	admin := getAdminFromContext(r)

	feedbacks, err := app.store.Feedbacks.ListByRestaurant(r.Context(), admin.RestaurantID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			app.transientErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	dashboard := feedback.BuildDashboard(feedbacks, time.Now())

	if err := app.jsonResponse(w, http.StatusOK, dashboard); err != nil {
		app.internalServerError(w, r, err)
	}
}
