// Package httpx provides the HTTP surface of the social network API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/socialgrid/socialgrid/internal/domain/model"
	"github.com/socialgrid/socialgrid/internal/service"
)

// AuthHandlers provides HTTP handlers for login and registration.
type AuthHandlers struct {
	Svc     *service.AuthService
	BaseURL string
}

// Login handles POST /api/auth/login. Failed credential checks are the one
// place this API answers 401; everything behind authentication answers 403.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !DecodeJSON(w, r, &creds) {
		return
	}

	res, err := h.Svc.Login(r.Context(), &creds)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "bad_credentials", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, res)
}

// Register handles POST /api/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Register(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	w.Header().Set("Location", locationURL(h.BaseURL, "/api/user/"+user.ID))
	WriteJSON(w, http.StatusCreated, user)
}
