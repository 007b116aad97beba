package httpx

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/socialgrid/socialgrid/internal/domain/auth"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	"github.com/socialgrid/socialgrid/internal/mocks"
	"github.com/socialgrid/socialgrid/internal/password"
	"github.com/socialgrid/socialgrid/internal/service"
	"github.com/socialgrid/socialgrid/internal/token"
)

var testSigningSecret = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

const testBaseURL = "http://api.test"

// testEnv wires mock repositories through real services and the full
// middleware chain, mirroring the production handler stack.
type testEnv struct {
	Users   *mocks.MockUserRepository
	Posts   *mocks.MockPostRepository
	Handler http.Handler
	Hasher  *password.BcryptHasher
	Codec   *token.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	posts := mocks.NewMockPostRepository(ctrl)

	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	codec, err := token.NewCodec(testSigningSecret, time.Hour)
	require.NoError(t, err)

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Users:  users,
		Hasher: hasher,
		Codec:  codec,
	})
	router := NewRouter(RouterServices{
		Auth:       authSvc,
		Users:      service.NewUserService(service.UserServiceOptions{Users: users, Hasher: hasher}),
		Posts:      service.NewPostService(service.PostServiceOptions{Posts: posts}),
		Statistics: service.NewStatisticsService(service.StatisticsServiceOptions{Posts: posts}),
		BaseURL:    testBaseURL,
	})

	authn := Authenticate(AuthenticateOptions{Resolver: authSvc, AllowPrefixes: AllowPrefixes})
	return &testEnv{
		Users:   users,
		Posts:   posts,
		Handler: authn(router),
		Hasher:  hasher,
		Codec:   codec,
	}
}

// account builds a stored user whose password is always "s3cret-pw".
func (e *testEnv) account(t *testing.T, username string, roles ...auth.Role) *model.User {
	t.Helper()
	hash, err := e.Hasher.Hash("s3cret-pw")
	require.NoError(t, err)
	return &model.User{
		ID:           "user-" + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Roles:        roles,
	}
}

// tokenFor issues a token for the user as if they had just logged in.
func (e *testEnv) tokenFor(t *testing.T, u *model.User) string {
	t.Helper()
	signed, err := e.Codec.Issue(u.Username, u.Roles, time.Now())
	require.NoError(t, err)
	return signed
}

type doParams struct {
	Method string
	Path   string
	Token  string
	Body   any
}

func (e *testEnv) do(t *testing.T, p doParams) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if p.Body != nil {
		b, err := json.Marshal(p.Body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(p.Method, p.Path, body)
	if p.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	}
	rec := httptest.NewRecorder()
	e.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
