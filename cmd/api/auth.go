package main

import (
	"errors"
	"net/http"

	"mesa/internal/store"
)

type RegisterAdminPayload struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	RestaurantID int64  `json:"restaurant_id" validate:"required"`
}

func (app *application) registerAdminHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterAdminPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	if _, err := app.store.Restaurants.GetByID(ctx, payload.RestaurantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.badRequestResponse(w, r, errors.New("restaurant does not exist"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	admin := &store.Admin{
		Name:         payload.Name,
		Email:        payload.Email,
		RestaurantID: payload.RestaurantID,
	}

	if err := admin.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Admins.Create(ctx, admin); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, admin); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreateTokenPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	AdminID      int64  `json:"admin_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	RestaurantID int64  `json:"restaurant_id"`
}

func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	admin, err := app.store.Admins.GetByEmail(r.Context(), payload.Email)
	if err != nil {
		// same rejection for unknown email and wrong password
		if errors.Is(err, store.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := admin.Password.Compare(payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	token, err := app.authenticator.GenerateToken(admin.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := LoginResponse{
		Token:        token,
		AdminID:      admin.ID,
		Name:         admin.Name,
		Email:        admin.Email,
		RestaurantID: admin.RestaurantID,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) meHandler(w http.ResponseWriter, r *http.Request) {
	admin := getAdminFromContext(r)

	data := map[string]any{
		"admin_id":      admin.ID,
		"name":          admin.Name,
		"email":         admin.Email,
		"restaurant_id": admin.RestaurantID,
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}
