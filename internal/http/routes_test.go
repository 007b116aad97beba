package httpx

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/socialgrid/socialgrid/internal/domain/auth"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	apperrors "github.com/socialgrid/socialgrid/internal/errors"
)

func TestRouter_LoginThenAdminRoute(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	admin := env.account(t, "root", auth.RoleUser, auth.RoleAdmin)

	// login resolves the account once, the admin route once more
	env.Users.EXPECT().LoadUser(gomock.Any(), "root").Return(admin, nil).Times(2)
	env.Users.EXPECT().List(gomock.Any(), 50, 0).Return([]*model.User{admin}, nil)

	rec := env.do(t, doParams{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   model.Credentials{Username: "root", Password: "s3cret-pw"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody[map[string]any](t, rec)
	tokenStr, _ := login["token"].(string)
	require.NotEmpty(t, tokenStr)

	rec = env.do(t, doParams{Method: http.MethodGet, Path: "/api/user", Token: tokenStr})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Login_BadCredentialsIsTheOnly401(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)

	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(user, nil)

	rec := env.do(t, doParams{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   model.Credentials{Username: "alice", Password: "wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "bad_credentials", body["error"])
}

func TestRouter_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.Users.EXPECT().LoadUser(gomock.Any(), "ghost").Return(nil, apperrors.NotFound("user not found"))

	rec := env.do(t, doParams{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   model.Credentials{Username: "ghost", Password: "whatever"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "bad_credentials", body["error"])
}

func TestRouter_ProtectedRouteWithoutToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, doParams{Method: http.MethodGet, Path: "/api/posts/feed"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "forbidden", body["error"])
}

func TestRouter_UserTokenOnAdminRoute(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)

	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(user, nil)

	rec := env.do(t, doParams{
		Method: http.MethodGet,
		Path:   "/api/user",
		Token:  env.tokenFor(t, user),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ExpiredToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)

	stale, err := env.Codec.Issue(user.Username, user.Roles, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	// Resolution fails before the account is ever consulted.
	rec := env.do(t, doParams{Method: http.MethodGet, Path: "/api/posts/feed", Token: stale})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_DeletedAccountTokenIsDead(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)

	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(nil, apperrors.NotFound("user not found"))

	rec := env.do(t, doParams{
		Method: http.MethodGet,
		Path:   "/api/posts/feed",
		Token:  env.tokenFor(t, user),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_GarbageTokenOnPublicPath(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.Users.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(env.account(t, "newbie", auth.RoleUser), nil)

	rec := env.do(t, doParams{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		Token:  "garbage",
		Body:   model.RegisterRequest{Username: "newbie", Email: "newbie@example.com", Password: "longenough"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_HealthNeedsNoAuth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, doParams{Method: http.MethodGet, Path: "/healthz"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_PostOwnershipOnUpdate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	owner := env.account(t, "owner", auth.RoleUser)
	other := env.account(t, "other", auth.RoleUser)
	admin := env.account(t, "root", auth.RoleAdmin)

	edit := model.UpdatePostRequest{Content: "edited"}
	edited := &model.Post{ID: "p1", AuthorID: owner.ID, Content: "edited"}

	// owner edits own post
	env.Users.EXPECT().LoadUser(gomock.Any(), "owner").Return(owner, nil)
	env.Posts.EXPECT().OwnerID(gomock.Any(), "p1").Return(owner.ID, nil)
	env.Posts.EXPECT().Update(gomock.Any(), "p1", &edit).Return(edited, nil)

	rec := env.do(t, doParams{
		Method: http.MethodPut,
		Path:   "/api/posts/p1",
		Token:  env.tokenFor(t, owner),
		Body:   edit,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// another account is denied before the edit runs
	env.Users.EXPECT().LoadUser(gomock.Any(), "other").Return(other, nil)
	env.Posts.EXPECT().OwnerID(gomock.Any(), "p1").Return(owner.ID, nil)

	rec = env.do(t, doParams{
		Method: http.MethodPut,
		Path:   "/api/posts/p1",
		Token:  env.tokenFor(t, other),
		Body:   edit,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// admin override skips the owner lookup entirely
	env.Users.EXPECT().LoadUser(gomock.Any(), "root").Return(admin, nil)
	env.Posts.EXPECT().Update(gomock.Any(), "p1", &edit).Return(edited, nil)

	rec = env.do(t, doParams{
		Method: http.MethodPut,
		Path:   "/api/posts/p1",
		Token:  env.tokenFor(t, admin),
		Body:   edit,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SelfRuleOnUserRoutes(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	alice := env.account(t, "alice", auth.RoleUser)
	bob := env.account(t, "bob", auth.RoleUser)

	// alice edits her own profile
	update := model.UpdateUserRequest{Username: "alice", Email: "alice@example.com"}
	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(alice, nil)
	env.Users.EXPECT().Update(gomock.Any(), alice.ID, &update, "").Return(alice, nil)

	rec := env.do(t, doParams{
		Method: http.MethodPut,
		Path:   "/api/user/" + alice.ID,
		Token:  env.tokenFor(t, alice),
		Body:   update,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// bob cannot edit alice
	env.Users.EXPECT().LoadUser(gomock.Any(), "bob").Return(bob, nil)

	rec = env.do(t, doParams{
		Method: http.MethodPut,
		Path:   "/api/user/" + alice.ID,
		Token:  env.tokenFor(t, bob),
		Body:   update,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_RoleEscalationTakesEffectWithoutReissue(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	before := env.account(t, "climber", auth.RoleUser)
	after := env.account(t, "climber", auth.RoleUser, auth.RoleAdmin)

	tokenStr := env.tokenFor(t, before)

	// First call: still a plain user, admin route denied.
	env.Users.EXPECT().LoadUser(gomock.Any(), "climber").Return(before, nil)
	rec := env.do(t, doParams{Method: http.MethodGet, Path: "/api/user", Token: tokenStr})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Roles changed in the store; the same token now passes.
	env.Users.EXPECT().LoadUser(gomock.Any(), "climber").Return(after, nil)
	env.Users.EXPECT().List(gomock.Any(), 50, 0).Return([]*model.User{after}, nil)
	rec = env.do(t, doParams{Method: http.MethodGet, Path: "/api/user", Token: tokenStr})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LikeAndComment(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)

	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(user, nil).Times(2)
	env.Posts.EXPECT().
		ToggleLike(gomock.Any(), "p1", user.ID).
		Return(&model.LikeResult{PostID: "p1", Liked: true, LikeCount: 1}, nil)
	env.Posts.EXPECT().
		AddComment(gomock.Any(), "p1", user.ID, gomock.Any()).
		Return(&model.Comment{ID: "c1", PostID: "p1", AuthorID: user.ID, Content: "nice"}, nil)

	rec := env.do(t, doParams{Method: http.MethodPost, Path: "/api/posts/p1/like", Token: env.tokenFor(t, user)})
	require.Equal(t, http.StatusOK, rec.Code)
	like := decodeBody[model.LikeResult](t, rec)
	assert.True(t, like.Liked)

	rec = env.do(t, doParams{
		Method: http.MethodPost,
		Path:   "/api/posts/p1/comments",
		Token:  env.tokenFor(t, user),
		Body:   model.AddCommentRequest{Content: "nice"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_FeedFilterValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)

	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(user, nil)

	rec := env.do(t, doParams{
		Method: http.MethodGet,
		Path:   "/api/posts/feed?filter=bogus",
		Token:  env.tokenFor(t, user),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "invalid_filter", body["error"])
}

func TestRouter_StatisticsRoutes(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)
	admin := env.account(t, "root", auth.RoleAdmin)

	// any account may read popular posts
	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(user, nil).Times(2)
	env.Posts.EXPECT().
		PopularPosts(gomock.Any(), 10).
		Return([]*model.PostStatistics{{PostID: "p1", LikeCount: 5}}, nil)

	rec := env.do(t, doParams{
		Method: http.MethodGet,
		Path:   "/api/statistics/popular-posts",
		Token:  env.tokenFor(t, user),
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// user activity is admin only
	rec = env.do(t, doParams{
		Method: http.MethodGet,
		Path:   "/api/statistics/user-activity?userId=u1",
		Token:  env.tokenFor(t, user),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env.Users.EXPECT().LoadUser(gomock.Any(), "root").Return(admin, nil)
	env.Posts.EXPECT().
		UserActivity(gomock.Any(), "u1").
		Return(&model.UserActivity{UserID: "u1", Username: "alice", PostCount: 2}, nil)

	rec = env.do(t, doParams{
		Method: http.MethodGet,
		Path:   "/api/statistics/user-activity?userId=u1",
		Token:  env.tokenFor(t, admin),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_NotFoundMapsTo404(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)

	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(user, nil)
	env.Posts.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, apperrors.NotFound("post not found"))

	rec := env.do(t, doParams{
		Method: http.MethodGet,
		Path:   "/api/posts/missing",
		Token:  env.tokenFor(t, user),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CreatedResourcesCarryLocation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.account(t, "alice", auth.RoleUser)

	env.Users.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(env.account(t, "newbie", auth.RoleUser), nil)

	rec := env.do(t, doParams{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		Body:   model.RegisterRequest{Username: "newbie", Email: "newbie@example.com", Password: "longenough"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testBaseURL+"/api/user/user-newbie", rec.Header().Get("Location"))

	env.Users.EXPECT().LoadUser(gomock.Any(), "alice").Return(user, nil)
	env.Posts.EXPECT().
		Create(gomock.Any(), user.ID, gomock.Any()).
		Return(&model.Post{ID: "p1", AuthorID: user.ID, Content: "hello"}, nil)

	rec = env.do(t, doParams{
		Method: http.MethodPost,
		Path:   "/api/posts",
		Token:  env.tokenFor(t, user),
		Body:   model.CreatePostRequest{Content: "hello"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testBaseURL+"/api/posts/p1", rec.Header().Get("Location"))
}

func TestRouter_ConflictMapsTo409(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.Users.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("username already taken"))

	rec := env.do(t, doParams{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		Body:   model.RegisterRequest{Username: "taken", Email: "taken@example.com", Password: "longenough"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
