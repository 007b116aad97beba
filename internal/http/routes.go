package httpx

import (
	"net/http"

	"github.com/socialgrid/socialgrid/internal/service"
)

// AllowPrefixes lists the path prefixes the authentication middleware skips.
// Login and registration must be reachable without a token, health checks
// feed orchestrators, and the docs prefix serves the published API reference.
var AllowPrefixes = []string{"/api/auth/", "/healthz", "/docs"}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Posts      *service.PostService
	Statistics *service.StatisticsService

	// BaseURL prefixes Location headers on created resources.
	BaseURL string
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, BaseURL: services.BaseURL}
	userHandlers := &UserHandlers{Svc: services.Users}
	postHandlers := &PostHandlers{Svc: services.Posts, BaseURL: services.BaseURL}
	statsHandlers := &StatisticsHandlers{Svc: services.Statistics}

	registerAuthRoutes(mux, authHandlers)
	registerUserRoutes(mux, userHandlers)
	registerPostRoutes(mux, postHandlers)
	registerStatisticsRoutes(mux, statsHandlers)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/register", h.Register)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers) {
	mux.HandleFunc("GET /api/user", h.List)
	mux.HandleFunc("GET /api/user/{userID}", h.GetByID)
	mux.HandleFunc("PUT /api/user/{userID}", h.Update)
	mux.HandleFunc("DELETE /api/user/{userID}", h.Delete)
}

func registerPostRoutes(mux *http.ServeMux, h *PostHandlers) {
	mux.HandleFunc("POST /api/posts", h.Create)
	mux.HandleFunc("GET /api/posts", h.List)
	mux.HandleFunc("GET /api/posts/feed", h.Feed)
	mux.HandleFunc("GET /api/posts/user/{userID}/filtered", h.ListByUser)
	mux.HandleFunc("GET /api/posts/{postID}", h.GetByID)
	mux.HandleFunc("PUT /api/posts/{postID}", h.Update)
	mux.HandleFunc("DELETE /api/posts/{postID}", h.Delete)
	mux.HandleFunc("POST /api/posts/{postID}/like", h.ToggleLike)
	mux.HandleFunc("POST /api/posts/{postID}/comments", h.AddComment)
}

func registerStatisticsRoutes(mux *http.ServeMux, h *StatisticsHandlers) {
	mux.HandleFunc("GET /api/statistics/popular-posts", h.PopularPosts)
	mux.HandleFunc("GET /api/statistics/user-activity", h.UserActivity)
}
