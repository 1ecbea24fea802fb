package service

import (
	"context"
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DashboardCache holds the per-user dashboard snapshot in redis. A nil cache
// (no redis in tests) degrades to always-miss.
type DashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDashboardCache(rdb *redis.Client) *DashboardCache {
	return &DashboardCache{rdb: rdb, ttl: 60 * time.Second}
}

func (c *DashboardCache) key(userID uint) string {
	return fmt.Sprintf("dashboard:%d", userID)
}

func (c *DashboardCache) Get(ctx context.Context, userID uint) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *DashboardCache) Set(ctx context.Context, userID uint, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(userID), payload, c.ttl).Err(); err != nil {
		zap.L().Warn("dashboard cache set failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// Invalidate drops the snapshot after anything writes a row the dashboard
// reads. The next request refetches everything.
func (c *DashboardCache) Invalidate(ctx context.Context, userID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(userID)).Err(); err != nil {
		zap.L().Warn("dashboard cache invalidate failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

type DashboardService struct {
	userRepo       *repository.UserRepository
	assessmentRepo *repository.AssessmentRepository
	pathRepo       *repository.LearningPathRepository
	goalRepo       *repository.GoalRepository
	cache          *DashboardCache
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	assessmentRepo *repository.AssessmentRepository,
	pathRepo *repository.LearningPathRepository,
	goalRepo *repository.GoalRepository,
	cache *DashboardCache,
) *DashboardService {
	return &DashboardService{
		userRepo:       userRepo,
		assessmentRepo: assessmentRepo,
		pathRepo:       pathRepo,
		goalRepo:       goalRepo,
		cache:          cache,
	}
}

type DashboardSnapshot struct {
	Profile       *model.User          `json:"profile"`
	Assessments   []model.Assessment   `json:"assessments"`
	LearningPaths []model.LearningPath `json:"learningPaths"`
	Goals         []model.SmartGoal    `json:"goals"`
	FetchedAt     time.Time            `json:"fetchedAt"`
}

// Snapshot assembles the dashboard view: profile, the last 3 assessments, all
// learning paths and the last 5 goals. Served from cache when fresh.
func (s *DashboardService) Snapshot(ctx context.Context, userID uint) (*DashboardSnapshot, error) {
	if data, ok := s.cache.Get(ctx, userID); ok {
		var snap DashboardSnapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			return &snap, nil
		}
	}

	profile, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	assessments, err := s.assessmentRepo.ListByUser(userID, 3)
	if err != nil {
		return nil, err
	}
	paths, err := s.pathRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.ListByUser(userID, 5)
	if err != nil {
		return nil, err
	}

	snap := &DashboardSnapshot{
		Profile:       profile,
		Assessments:   assessments,
		LearningPaths: paths,
		Goals:         goals,
		FetchedAt:     time.Now(),
	}

	if payload, err := json.Marshal(snap); err == nil {
		s.cache.Set(ctx, userID, payload)
	}
	return snap, nil
}
