package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/socialgrid/socialgrid/internal/domain/auth"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	"github.com/socialgrid/socialgrid/internal/service"
)

const maxUserListLimit = 100

// UserHandlers provides HTTP handlers for account operations.
type UserHandlers struct {
	Svc *service.UserService
}

// GetByID handles GET /api/user/{userID}. Any authenticated account may read
// a profile.
func (h *UserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, domainauth.RoleRule{Roles: []domainauth.Role{domainauth.RoleUser, domainauth.RoleAdmin}}) {
		return
	}

	id := r.PathValue("userID")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("user id is required")})
		return
	}

	user, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// List handles GET /api/user. Admin only.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, domainauth.RoleRule{Roles: []domainauth.Role{domainauth.RoleAdmin}}) {
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxUserListLimit)
	users, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// Update handles PUT /api/user/{userID}. Accounts may edit themselves;
// admins may edit anyone.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("userID")
	if !Authorize(w, r, domainauth.SelfRule{UserID: id}) {
		return
	}

	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/user/{userID}. Accounts may delete themselves;
// admins may delete anyone. The account's posts, likes and comments go with it.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("userID")
	if !Authorize(w, r, domainauth.SelfRule{UserID: id}) {
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("user not found")})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
