package main

import (
	"context"
	"errors"
	"net/http"

	"mesa/internal/feedback"
	"mesa/internal/params"
)

type couponListItem struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	CouponCode      *string `json:"coupon_code"`
	CouponValidated bool    `json:"coupon_validated"`
	CreatedAt       string  `json:"created_at"`
}

type couponListResponse struct {
	Items []couponListItem `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}

// listCouponsHandler is the coupon-oriented view of the feedback set, with an
// optional validado filter.
func (app *application) listCouponsHandler(w http.ResponseWriter, r *http.Request) {
	admin := getAdminFromContext(r)

	query, err := params.ParseListQuery(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	feedbacks, err := app.store.Feedbacks.ListByRestaurant(r.Context(), admin.RestaurantID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			app.transientErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	filtered := feedback.Apply(feedbacks, feedback.Filters{Validated: query.Filters.Validated})
	pageItems := feedback.Page(filtered, query.Page, query.Size)

	items := make([]couponListItem, 0, len(pageItems))
	for _, f := range pageItems {
		items = append(items, couponListItem{
			ID:              f.ID,
			Name:            f.Name,
			Email:           f.Email,
			Phone:           f.Phone,
			CouponCode:      f.CouponCode,
			CouponValidated: f.CouponValidated,
			CreatedAt:       f.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	response := couponListResponse{
		Items: items,
		Total: len(filtered),
		Page:  query.Page,
		Size:  query.Size,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
