package service

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"caseforge_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 100

	leaderboardKeyPrefix = "leaderboard:top:"
	leaderboardTTL       = 60 * time.Second
)

type LeaderboardService struct {
	Stats StatsStore
	Redis *redis.Client
}

// NewLeaderboardService rdb 为 nil 时不使用缓存
func NewLeaderboardService(stats StatsStore, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{Stats: stats, Redis: rdb}
}

// Top 按总分排名的前 limit 名，缓存不可用时直接查库
func (s *LeaderboardService) Top(ctx context.Context, limit int) []model.LeaderboardEntry {
	limit = util.ClampLimit(limit, DefaultLeaderboardLimit, MaxLeaderboardLimit)
	key := fmt.Sprintf("%s%d", leaderboardKeyPrefix, limit)

	if entries, ok := s.cached(ctx, key); ok {
		return entries
	}

	entries, err := s.Stats.Leaderboard(ctx, limit)
	if err != nil {
		logger.Log.Warn("Failed to load leaderboard", zap.Int("limit", limit), zap.Error(err))
		return []model.LeaderboardEntry{}
	}

	s.store(ctx, key, entries)
	return entries
}

func (s *LeaderboardService) cached(ctx context.Context, key string) ([]model.LeaderboardEntry, bool) {
	if s.Redis == nil {
		return nil, false
	}

	val, err := s.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		monitoring.CacheLookups.WithLabelValues("leaderboard", "miss").Inc()
		return nil, false
	} else if err != nil {
		logger.Log.Warn("Leaderboard cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		logger.Log.Warn("Leaderboard cache entry corrupted", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	monitoring.CacheLookups.WithLabelValues("leaderboard", "hit").Inc()
	return entries, true
}

func (s *LeaderboardService) store(ctx context.Context, key string, entries []model.LeaderboardEntry) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, leaderboardTTL).Err(); err != nil {
		logger.Log.Warn("Leaderboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate 统计变化后清除所有排行榜缓存
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}

	iter := s.Redis.Scan(ctx, 0, leaderboardKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("Leaderboard cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("Leaderboard cache invalidation failed", zap.Error(err))
	}
}
