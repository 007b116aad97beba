// Package mocks provides mock implementations for testing the service layer.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/socialgrid/socialgrid/internal/core UserRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=post_repository_mock.go github.com/socialgrid/socialgrid/internal/core PostRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/socialgrid/socialgrid/internal/core CacheRepository
