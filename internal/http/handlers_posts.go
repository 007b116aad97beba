package httpx

import (
	"errors"
	"net/http"
	"time"

	domainauth "github.com/socialgrid/socialgrid/internal/domain/auth"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	"github.com/socialgrid/socialgrid/internal/service"
)

const maxPostListLimit = 100

// anyAccount allows every authenticated account regardless of role.
var anyAccount = domainauth.RoleRule{Roles: []domainauth.Role{domainauth.RoleUser, domainauth.RoleAdmin}}

// adminOnly allows administrators only.
var adminOnly = domainauth.RoleRule{Roles: []domainauth.Role{domainauth.RoleAdmin}}

// PostHandlers provides HTTP handlers for posts, likes and comments.
type PostHandlers struct {
	Svc     *service.PostService
	BaseURL string
}

// ownershipRule builds the owner-or-admin rule for a post.
func (h *PostHandlers) ownershipRule(postID string) domainauth.Rule {
	return domainauth.OwnershipRule{ResourceID: postID, OwnerID: h.Svc.OwnerID}
}

// Create handles POST /api/posts. The author is always the calling principal.
func (h *PostHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, anyAccount) {
		return
	}
	p, _ := GetPrincipalFromContext(r.Context())

	var req model.CreatePostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Create(r.Context(), p.UserID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	w.Header().Set("Location", locationURL(h.BaseURL, "/api/posts/"+post.ID))
	WriteJSON(w, http.StatusCreated, post)
}

// GetByID handles GET /api/posts/{postID}.
func (h *PostHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, anyAccount) {
		return
	}

	id := r.PathValue("postID")
	post, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Update handles PUT /api/posts/{postID}. Authors may edit their own posts;
// admins may edit any.
func (h *PostHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("postID")
	if !Authorize(w, r, h.ownershipRule(id)) {
		return
	}

	var req model.UpdatePostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{postID}. Authors may delete their own
// posts; admins may delete any.
func (h *PostHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("postID")
	if !Authorize(w, r, h.ownershipRule(id)) {
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("post not found")})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/posts. Admin only; regular accounts use the feed.
func (h *PostHandlers) List(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, adminOnly) {
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxPostListLimit)
	posts, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// Feed handles GET /api/posts/feed?filter=time|popularity.
func (h *PostHandlers) Feed(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, anyAccount) {
		return
	}

	filter, ok := model.ParseFeedFilter(r.URL.Query().Get("filter"))
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_filter",
			Err:     errors.New("filter must be one of: time, popularity"),
		})
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxPostListLimit)
	posts, err := h.Svc.Feed(r.Context(), filter, limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "feed_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts":  posts,
		"filter": filter,
		"limit":  limit,
		"offset": offset,
	})
}

// ListByUser handles GET /api/posts/user/{userID}/filtered. Accounts may
// query their own history; admins anyone's.
func (h *PostHandlers) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !Authorize(w, r, domainauth.SelfRule{UserID: userID}) {
		return
	}

	filter, ok := model.ParseFeedFilter(r.URL.Query().Get("filter"))
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_filter",
			Err:     errors.New("filter must be one of: time, popularity"),
		})
		return
	}

	opts := &model.UserPostsOptions{Filter: filter}
	var err error
	if opts.Start, err = parseTimeQuery(r, "startTime"); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_time", Err: err})
		return
	}
	if opts.End, err = parseTimeQuery(r, "endTime"); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_time", Err: err})
		return
	}

	posts, err := h.Svc.ListByUser(r.Context(), userID, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts":  posts,
		"filter": filter,
	})
}

// ToggleLike handles POST /api/posts/{postID}/like.
func (h *PostHandlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, anyAccount) {
		return
	}
	p, _ := GetPrincipalFromContext(r.Context())

	res, err := h.Svc.ToggleLike(r.Context(), r.PathValue("postID"), p.UserID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, res)
}

// AddComment handles POST /api/posts/{postID}/comments.
func (h *PostHandlers) AddComment(w http.ResponseWriter, r *http.Request) {
	if !Authorize(w, r, anyAccount) {
		return
	}
	p, _ := GetPrincipalFromContext(r.Context())

	var req model.AddCommentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	comment, err := h.Svc.AddComment(r.Context(), r.PathValue("postID"), p.UserID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, comment)
}

// parseTimeQuery parses an optional RFC 3339 timestamp query parameter.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, errors.New(key + " must be an RFC 3339 timestamp")
	}
	return &t, nil
}
