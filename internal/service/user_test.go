package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/socialgrid/socialgrid/internal/domain/auth"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	apperrors "github.com/socialgrid/socialgrid/internal/errors"
	"github.com/socialgrid/socialgrid/internal/mocks"
)

func newUserService(t *testing.T) (*mocks.MockUserRepository, *UserService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(UserServiceOptions{Users: users, Hasher: stubHasher{}})
	return users, svc
}

func TestUserService_Update_KeepsPasswordWhenEmpty(t *testing.T) {
	t.Parallel()
	users, svc := newUserService(t)

	req := &model.UpdateUserRequest{Username: "alice", Email: "alice@example.com"}
	users.EXPECT().
		Update(gomock.Any(), "u1", req, "").
		Return(testUser("alice", auth.RoleUser), nil)

	_, err := svc.Update(context.Background(), "u1", req)
	require.NoError(t, err)
}

func TestUserService_Update_RehashesNewPassword(t *testing.T) {
	t.Parallel()
	users, svc := newUserService(t)

	req := &model.UpdateUserRequest{Username: "alice", Email: "alice@example.com", Password: "newpassword"}
	users.EXPECT().
		Update(gomock.Any(), "u1", req, "hashed:newpassword").
		Return(testUser("alice", auth.RoleUser), nil)

	_, err := svc.Update(context.Background(), "u1", req)
	require.NoError(t, err)
}

func TestUserService_Update_Invalid(t *testing.T) {
	t.Parallel()
	_, svc := newUserService(t)

	_, err := svc.Update(context.Background(), "u1", &model.UpdateUserRequest{Username: "x", Email: "bad"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Update(context.Background(), "u1", nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUserService_Delete(t *testing.T) {
	t.Parallel()
	users, svc := newUserService(t)

	users.EXPECT().Delete(gomock.Any(), "u1").Return(true, nil)
	ok, err := svc.Delete(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	users.EXPECT().Delete(gomock.Any(), "gone").Return(false, nil)
	ok, err = svc.Delete(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, ok)
}
