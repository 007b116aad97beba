package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/socialgrid/socialgrid/internal/domain/model"
	"github.com/socialgrid/socialgrid/internal/mocks"
)

func newStatisticsService(t *testing.T) (*mocks.MockPostRepository, *mocks.MockCacheRepository, *StatisticsService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	posts := mocks.NewMockPostRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := NewStatisticsService(StatisticsServiceOptions{
		Posts:    posts,
		Cache:    cache,
		CacheTTL: time.Minute,
	})
	return posts, cache, svc
}

func rankingFixture() []*model.PostStatistics {
	return []*model.PostStatistics{
		{PostID: "p1", Content: "top", LikeCount: 9, CommentCount: 2},
		{PostID: "p2", Content: "second", LikeCount: 4, CommentCount: 0},
	}
}

func TestStatisticsService_PopularPosts_CacheMiss(t *testing.T) {
	t.Parallel()
	posts, cache, svc := newStatisticsService(t)
	ranking := rankingFixture()
	payload, err := json.Marshal(ranking)
	require.NoError(t, err)

	cache.EXPECT().Get(gomock.Any(), "stats:popular_posts:10").Return(nil, nil)
	posts.EXPECT().PopularPosts(gomock.Any(), 10).Return(ranking, nil)
	cache.EXPECT().Set(gomock.Any(), "stats:popular_posts:10", payload, time.Minute).Return(nil)

	got, err := svc.PopularPosts(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, ranking, got)
}

func TestStatisticsService_PopularPosts_CacheHit(t *testing.T) {
	t.Parallel()
	_, cache, svc := newStatisticsService(t)
	ranking := rankingFixture()
	payload, err := json.Marshal(ranking)
	require.NoError(t, err)

	cache.EXPECT().Get(gomock.Any(), "stats:popular_posts:10").Return(payload, nil)

	got, err := svc.PopularPosts(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, ranking, got)
}

func TestStatisticsService_PopularPosts_CacheFailureFallsThrough(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	posts := mocks.NewMockPostRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	var logBuf bytes.Buffer
	svc := NewStatisticsService(StatisticsServiceOptions{
		Posts:    posts,
		Cache:    cache,
		CacheTTL: time.Minute,
		Logger:   slog.New(slog.NewTextHandler(&logBuf, nil)),
	})
	ranking := rankingFixture()

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	posts.EXPECT().PopularPosts(gomock.Any(), 5).Return(ranking, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	got, err := svc.PopularPosts(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, ranking, got)

	// Degradations surface through the injected logger, not the global one.
	assert.Contains(t, logBuf.String(), "popular posts cache read failed")
	assert.Contains(t, logBuf.String(), "popular posts cache write failed")
}

func TestStatisticsService_PopularPosts_NoCache(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	posts := mocks.NewMockPostRepository(ctrl)
	svc := NewStatisticsService(StatisticsServiceOptions{Posts: posts})

	ranking := rankingFixture()
	posts.EXPECT().PopularPosts(gomock.Any(), 10).Return(ranking, nil)

	// A non-positive limit falls back to the default page size.
	got, err := svc.PopularPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, ranking, got)
}

func TestStatisticsService_UserActivity(t *testing.T) {
	t.Parallel()
	posts, _, svc := newStatisticsService(t)

	activity := &model.UserActivity{UserID: "u1", Username: "alice", PostCount: 3, LikeCount: 7, CommentCount: 1}
	posts.EXPECT().UserActivity(gomock.Any(), "u1").Return(activity, nil)

	got, err := svc.UserActivity(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, activity, got)
}
