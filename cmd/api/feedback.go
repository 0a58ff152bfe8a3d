package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mesa/internal/coupon"
	"mesa/internal/feedback"
	"mesa/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateFeedbackPayload struct {
	Name            string  `json:"name" validate:"required,max=120"`
	Email           string  `json:"email" validate:"required,email,max=255"`
	Phone           string  `json:"phone" validate:"required,max=30"`
	ConsumedItem    string  `json:"consumed_item" validate:"required,max=255"`
	Rating          int     `json:"rating" validate:"required,min=1,max=5"`
	ConsentGiven    bool    `json:"consent_given"`
	NegativeComment *string `json:"negative_comment" validate:"omitempty,max=1000"`
}

type FeedbackResponse struct {
	ID             int64     `json:"id"`
	Classification string    `json:"classification"`
	Message        string    `json:"message"`
	ReviewLink     *string   `json:"review_link"`
	CouponCode     *string   `json:"coupon_code"`
	Rating         int       `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
}

func (app *application) createFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateFeedbackPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	submission := feedback.Submission{
		Name:            payload.Name,
		Email:           payload.Email,
		Phone:           payload.Phone,
		ConsumedItem:    payload.ConsumedItem,
		Rating:          payload.Rating,
		ConsentGiven:    payload.ConsentGiven,
		NegativeComment: payload.NegativeComment,
	}

	if err := feedback.ValidateSubmission(submission); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	restaurant, err := app.store.Restaurants.GetByID(ctx, app.config.feedback.defaultRestaurantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.badRequestResponse(w, r, errors.New("default restaurant is not registered"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	f := &store.Feedback{
		RestaurantID: restaurant.ID,
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		ConsumedItem: payload.ConsumedItem,
		Rating:       payload.Rating,
		ConsentGiven: payload.ConsentGiven,
	}

	if feedback.IsPositive(payload.Rating) {
		// coupon is withheld until the customer confirms the external review
		link := restaurant.ReviewLink
		if link == "" {
			link = app.config.feedback.reviewLinkFallback
		}
		f.ReviewLink = &link
	} else {
		f.NegativeComment = payload.NegativeComment
		code := coupon.Generate(app.config.feedback.couponPrefix, time.Now())
		f.CouponCode = &code
	}

	if err := app.store.Feedbacks.Create(ctx, f); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			app.transientErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := FeedbackResponse{
		ID:             f.ID,
		Classification: feedback.Classify(f.Rating),
		Message:        feedback.IntakeMessage(f.Rating),
		ReviewLink:     f.ReviewLink,
		CouponCode:     f.CouponCode,
		Rating:         f.Rating,
		CreatedAt:      f.CreatedAt,
	}

	if err := app.jsonResponse(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CouponResponse struct {
	CouponCode string `json:"coupon_code"`
	Notice     string `json:"notice"`
}

// confirmCouponHandler releases the coupon of a high-rating feedback after the
// customer reports the external review as done. Calling it again returns the
// same code.
func (app *application) confirmCouponHandler(w http.ResponseWriter, r *http.Request) {
	feedbackID, err := strconv.ParseInt(chi.URLParam(r, "feedbackID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid feedback ID"))
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

	if !feedback.IsPositive(f.Rating) {
		app.badRequestResponse(w, r, errors.New("cupom por confirmação só é válido para avaliações com nota 4 ou 5"))
		return
	}

	if f.CouponCode != nil && *f.CouponCode != "" {
		app.jsonResponse(w, http.StatusOK, CouponResponse{
			CouponCode: *f.CouponCode,
			Notice:     "Cupom já foi gerado anteriormente.",
		})
		return
	}

	code := coupon.Generate(app.config.feedback.couponPrefix, time.Now())
	if err := app.store.Feedbacks.AttachCoupon(ctx, feedbackID, code); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// a concurrent confirmation won; hand back its code
			existing, err := app.store.Feedbacks.GetByID(ctx, feedbackID)
			if err != nil {
				app.internalServerError(w, r, err)
				return
			}
			app.jsonResponse(w, http.StatusOK, CouponResponse{
				CouponCode: *existing.CouponCode,
				Notice:     "Cupom já foi gerado anteriormente.",
			})
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, CouponResponse{
		CouponCode: code,
		Notice:     "Cupom liberado! Aproveite seu benefício 🎁",
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}
