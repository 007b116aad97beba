package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/socialgrid/socialgrid/internal/core"
	"github.com/socialgrid/socialgrid/internal/domain/model"
)

const popularPostsKeyPrefix = "stats:popular_posts:"

// StatisticsServiceOptions groups dependencies for StatisticsService.
// Cache may be nil, in which case every read goes to the database.
type StatisticsServiceOptions struct {
	Posts    core.PostRepository
	Cache    core.CacheRepository
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// StatisticsService serves aggregate read models over posts and users.
// Popular-post rankings are cached because they scan the whole likes table;
// cache failures degrade to direct reads rather than failing the request.
type StatisticsService struct {
	posts    core.PostRepository
	cache    core.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewStatisticsService constructs a new StatisticsService.
func NewStatisticsService(opts StatisticsServiceOptions) *StatisticsService {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StatisticsService{posts: opts.Posts, cache: opts.Cache, cacheTTL: ttl, logger: logger}
}

// PopularPosts returns the top posts by like count, serving from cache when a
// fresh ranking for the same limit is available.
func (s *StatisticsService) PopularPosts(ctx context.Context, limit int) ([]*model.PostStatistics, error) {
	if limit <= 0 {
		limit = 10
	}
	key := popularPostsKeyPrefix + strconv.Itoa(limit)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "popular posts cache read failed", "err", err)
		} else if cached != nil {
			var out []*model.PostStatistics
			if unmarshalErr := json.Unmarshal(cached, &out); unmarshalErr == nil {
				return out, nil
			}
			// Unreadable entries are replaced by the fresh ranking below.
			s.logger.WarnContext(ctx, "popular posts cache entry unreadable", "key", key)
		}
	}

	ranking, err := s.posts.PopularPosts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("rank popular posts: %w", err)
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(ranking); marshalErr == nil {
			if setErr := s.cache.Set(ctx, key, payload, s.cacheTTL); setErr != nil {
				s.logger.WarnContext(ctx, "popular posts cache write failed", "err", setErr)
			}
		}
	}

	return ranking, nil
}

// UserActivity aggregates post, like and comment counts for a single user.
func (s *StatisticsService) UserActivity(ctx context.Context, userID string) (*model.UserActivity, error) {
	return s.posts.UserActivity(ctx, userID)
}
