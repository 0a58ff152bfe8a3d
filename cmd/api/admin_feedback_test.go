package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"mesa/internal/store"
)

func adminToken(t *testing.T, app *application) string {
	t.Helper()

	token, err := app.authenticator.GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func adminRequest(t *testing.T, app *application, mux http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, app))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func seedFeedback(t *testing.T, fs *stubFeedbackStore, f store.Feedback) store.Feedback {
	t.Helper()

	if err := fs.Create(context.Background(), &f); err != nil {
		t.Fatalf("seed feedback: %v", err)
	}
	return f
}

func TestListFeedbacksRequiresToken(t *testing.T) {
	app, _ := newTestApplication(t)
	mux := app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/feedbacks", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestListFeedbacksPagination(t *testing.T) {
	app, fs := newTestApplication(t)
	mux := app.mount()

	comment := "comida fria"
	for i := 0; i < 5; i++ {
		seedFeedback(t, fs, store.Feedback{
			RestaurantID:    1,
			Name:            "Cliente",
			Email:           "cliente@example.com",
			Rating:          2,
			NegativeComment: &comment,
		})
	}
	// another tenant's record must never show up
	seedFeedback(t, fs, store.Feedback{RestaurantID: 2, Name: "Outro", Rating: 5})

	rr := adminRequest(t, app, mux, http.MethodGet, "/v1/admin/feedbacks?page=1&size=2")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var resp feedbackListResponse
	decodeData(t, rr, &resp)

	if resp.Total != 5 {
		t.Errorf("total = %d, want 5 (tenant scoped)", resp.Total)
	}
	if len(resp.Items) != 2 {
		t.Errorf("items = %d, want 2", len(resp.Items))
	}

	// out-of-range page keeps the true total
	rr = adminRequest(t, app, mux, http.MethodGet, "/v1/admin/feedbacks?page=9&size=2")
	decodeData(t, rr, &resp)
	if len(resp.Items) != 0 || resp.Total != 5 {
		t.Errorf("overflow page: items = %d, total = %d, want 0 and 5", len(resp.Items), resp.Total)
	}
}

func TestFeedbackDetailScoping(t *testing.T) {
	app, fs := newTestApplication(t)
	mux := app.mount()

	comment := "demora"
	mine := seedFeedback(t, fs, store.Feedback{RestaurantID: 1, Name: "Ana", Rating: 2, NegativeComment: &comment})
	other := seedFeedback(t, fs, store.Feedback{RestaurantID: 2, Name: "Outro", Rating: 5})

	rr := adminRequest(t, app, mux, http.MethodGet, "/v1/admin/feedbacks/"+itoa(mine.ID))
	if rr.Code != http.StatusOK {
		t.Errorf("own detail status = %d, want 200", rr.Code)
	}

	rr = adminRequest(t, app, mux, http.MethodGet, "/v1/admin/feedbacks/"+itoa(other.ID))
	if rr.Code != http.StatusForbidden {
		t.Errorf("cross-tenant detail status = %d, want 403", rr.Code)
	}

	rr = adminRequest(t, app, mux, http.MethodGet, "/v1/admin/feedbacks/999")
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing detail status = %d, want 404", rr.Code)
	}
}

func TestValidateCouponLifecycle(t *testing.T) {
	app, fs := newTestApplication(t)
	mux := app.mount()

	comment := "comida fria"
	code := "MESA-20250610-AB12CD"
	f := seedFeedback(t, fs, store.Feedback{
		RestaurantID:    1,
		Name:            "Ana",
		Rating:          2,
		NegativeComment: &comment,
		CouponCode:      &code,
	})

	target := "/v1/admin/feedbacks/" + itoa(f.ID) + "/validate-coupon"

	first := adminRequest(t, app, mux, http.MethodPatch, target)
	if first.Code != http.StatusOK {
		t.Fatalf("first validation status = %d: %s", first.Code, first.Body.String())
	}

	var detail store.Feedback
	decodeData(t, first, &detail)
	if !detail.CouponValidated || detail.CouponValidatedAt == nil {
		t.Error("validation must set the flag and the timestamp together")
	}
	validatedAt := *detail.CouponValidatedAt

	second := adminRequest(t, app, mux, http.MethodPatch, target)
	if second.Code != http.StatusConflict {
		t.Errorf("second validation status = %d, want 409", second.Code)
	}
	if got := fs.feedbacks[f.ID].CouponValidatedAt; got == nil || !got.Equal(validatedAt) {
		t.Error("rejected validation must leave the timestamp unchanged")
	}
}

func TestValidateCouponRejections(t *testing.T) {
	app, fs := newTestApplication(t)
	mux := app.mount()

	comment := "ruim"
	code := "MESA-20250610-ZZZZZZ"
	noCoupon := seedFeedback(t, fs, store.Feedback{RestaurantID: 1, Name: "Bruno", Rating: 5})
	foreign := seedFeedback(t, fs, store.Feedback{RestaurantID: 2, Name: "Outro", Rating: 2, NegativeComment: &comment, CouponCode: &code})

	rr := adminRequest(t, app, mux, http.MethodPatch, "/v1/admin/feedbacks/999/validate-coupon")
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rr.Code)
	}

	rr = adminRequest(t, app, mux, http.MethodPatch, "/v1/admin/feedbacks/"+itoa(foreign.ID)+"/validate-coupon")
	if rr.Code != http.StatusForbidden {
		t.Errorf("cross-tenant status = %d, want 403", rr.Code)
	}

	rr = adminRequest(t, app, mux, http.MethodPatch, "/v1/admin/feedbacks/"+itoa(noCoupon.ID)+"/validate-coupon")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("no-coupon status = %d, want 400", rr.Code)
	}
}

func TestComplaintHoursEndpoint(t *testing.T) {
	app, fs := newTestApplication(t)
	mux := app.mount()

	comment := "demora no atendimento"
	at := time.Date(2025, 6, 10, 20, 15, 0, 0, time.UTC)
	seedFeedback(t, fs, store.Feedback{RestaurantID: 1, Name: "Ana", Rating: 2, NegativeComment: &comment, CreatedAt: at})
	seedFeedback(t, fs, store.Feedback{RestaurantID: 1, Name: "Bia", Rating: 1, NegativeComment: &comment, CreatedAt: at.Add(10 * time.Minute)})

	rr := adminRequest(t, app, mux, http.MethodGet, "/v1/admin/feedbacks/complaint-hours")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var buckets []struct {
		HourStart int `json:"hour_start"`
		HourEnd   int `json:"hour_end"`
		Total     int `json:"total"`
	}
	decodeData(t, rr, &buckets)

	if len(buckets) != 1 {
		t.Fatalf("buckets = %d, want 1", len(buckets))
	}
	if buckets[0].HourStart != 20 || buckets[0].HourEnd != 21 || buckets[0].Total != 2 {
		t.Errorf("bucket = %+v, want 20-21 x2", buckets[0])
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
