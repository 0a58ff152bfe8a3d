package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mesa/internal/feedback"
	"mesa/internal/mailer"
	"mesa/internal/params"
	"mesa/internal/store"

	"github.com/go-chi/chi/v5"
)

type feedbackListItem struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CreatedAt       time.Time `json:"created_at"`
	Rating          int       `json:"rating"`
	Tipo            string    `json:"tipo"`
	Message         *string   `json:"message"`
	ConsumedItem    string    `json:"consumed_item"`
	CouponCode      *string   `json:"coupon_code"`
	CouponValidated bool      `json:"coupon_validated"`
}

type feedbackListResponse struct {
	Items []feedbackListItem `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

func tipoOf(rating int) string {
	if feedback.IsPositive(rating) {
		return feedback.TipoPositivo
	}
	return feedback.TipoNegativo
}

func (app *application) listFeedbacksHandler(w http.ResponseWriter, r *http.Request) {
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

	filtered := feedback.Apply(feedbacks, query.Filters)
	pageItems := feedback.Page(filtered, query.Page, query.Size)

	items := make([]feedbackListItem, 0, len(pageItems))
	for _, f := range pageItems {
		items = append(items, feedbackListItem{
			ID:              f.ID,
			Name:            f.Name,
			Email:           f.Email,
			Phone:           f.Phone,
			CreatedAt:       f.CreatedAt,
			Rating:          f.Rating,
			Tipo:            tipoOf(f.Rating),
			Message:         f.NegativeComment,
			ConsumedItem:    f.ConsumedItem,
			CouponCode:      f.CouponCode,
			CouponValidated: f.CouponValidated,
		})
	}

	response := feedbackListResponse{
		Items: items,
		Total: len(filtered),
		Page:  query.Page,
		Size:  query.Size,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getFeedbackDetailHandler returns the full record; an id under another
// restaurant is forbidden, not hidden as missing.
func (app *application) getFeedbackDetailHandler(w http.ResponseWriter, r *http.Request) {
	admin := getAdminFromContext(r)

	feedbackID, err := strconv.ParseInt(chi.URLParam(r, "feedbackID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid feedback ID"))
		return
	}

	f, err := app.store.Feedbacks.GetByID(r.Context(), feedbackID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, context.DeadlineExceeded):
			app.transientErrorResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if f.RestaurantID != admin.RestaurantID {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, f); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) validateCouponHandler(w http.ResponseWriter, r *http.Request) {
	admin := getAdminFromContext(r)

	feedbackID, err := strconv.ParseInt(chi.URLParam(r, "feedbackID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid feedback ID"))
		return
	}

	f, err := app.store.Feedbacks.ValidateCoupon(r.Context(), feedbackID, admin.RestaurantID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrForbidden):
			app.forbiddenResponse(w, r)
		case errors.Is(err, store.ErrCouponValidated):
			app.conflictResponse(w, r, errors.New("este cupom já foi validado anteriormente"))
		case errors.Is(err, store.ErrCouponNotIssued):
			app.badRequestResponse(w, r, errors.New("este feedback ainda não possui cupom"))
		case errors.Is(err, context.DeadlineExceeded):
			app.transientErrorResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, f); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) complaintHoursHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := app.jsonResponse(w, http.StatusOK, feedback.ComplaintHours(feedbacks)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ReplyFeedbackPayload struct {
	Mensagem string `json:"mensagem" validate:"required,max=2000"`
}

// replyFeedbackHandler emails an admin-written answer to the customer. Only
// negative feedback may receive a reply; mail failure rolls nothing back.
func (app *application) replyFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	admin := getAdminFromContext(r)

	feedbackID, err := strconv.ParseInt(chi.URLParam(r, "feedbackID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid feedback ID"))
		return
	}

	var payload ReplyFeedbackPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	f, err := app.store.Feedbacks.GetByID(ctx, feedbackID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, context.DeadlineExceeded):
			app.transientErrorResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if f.RestaurantID != admin.RestaurantID {
		app.forbiddenResponse(w, r)
		return
	}

	if feedback.IsPositive(f.Rating) {
		app.badRequestResponse(w, r, errors.New("somente feedback negativo pode receber resposta"))
		return
	}

	restaurant, err := app.store.Restaurants.GetByID(ctx, admin.RestaurantID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	vars := struct {
		Username       string
		Message        string
		RestaurantName string
	}{
		Username:       f.Name,
		Message:        payload.Mensagem,
		RestaurantName: restaurant.Name,
	}

	status, err := app.mailer.Send(mailer.FeedbackReplyTemplate, f.Name, f.Email, vars)
	if err != nil {
		app.logger.Errorw("error sending reply email", "feedback_id", f.ID, "error", err)
		app.transientErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("reply email sent", "feedback_id", f.ID, "status code", status)

	data := map[string]string{
		"status":   "OK",
		"mensagem": "Email enviado com sucesso!",
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}
