package service

import (
	"context"
	"first20_backend/internal/config"
	"first20_backend/internal/repository"
	"first20_backend/internal/testutil"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

// 2025-03-10 09:30 UTC
var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

// memoryCache records invalidations so tests can assert on them.
type memoryCache struct {
	mu          sync.Mutex
	data        map[uint]map[string][]byte
	invalidated []uint
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[uint]map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, userID uint, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[userID][key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, userID uint, key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data[userID] == nil {
		c.data[userID] = map[string][]byte{}
	}
	c.data[userID][key] = data
}

func (c *memoryCache) Invalidate(_ context.Context, userID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, userID)
	c.invalidated = append(c.invalidated, userID)
}

type testEnv struct {
	db        *gorm.DB
	cache     *memoryCache
	users     *repository.UserRepository
	skills    *repository.SkillRepository
	plans     *repository.PlanRepository
	sessions  *repository.SessionRepository
	freezes   *repository.FreezeRepository
	auth      *AuthService
	skill     *SkillService
	plan      *PlanService
	session   *SessionService
	badge     *BadgeService
	freeze    *FreezeService
	dashboard *DashboardService
	calendar  *CalendarService
	export    *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStorage(t, localStorage(t.TempDir()))
}

func localStorage(dir string) *config.StorageConfig {
	return &config.StorageConfig{Type: "local", LocalPath: dir, PublicBaseURL: "http://files.test"}
}

func newTestEnvWithStorage(t *testing.T, storage *config.StorageConfig) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := testutil.TestConfig()
	target := cfg.Program.TargetMinutes
	clock := testutil.FixedClock(testNow)

	e := &testEnv{
		db:       db,
		cache:    newMemoryCache(),
		users:    repository.NewUserRepository(db),
		skills:   repository.NewSkillRepository(db),
		plans:    repository.NewPlanRepository(db),
		sessions: repository.NewSessionRepository(db),
		freezes:  repository.NewFreezeRepository(db),
	}
	reflections := repository.NewReflectionRepository(db)
	badges := repository.NewBadgeRepository(db)

	e.auth = NewAuthService(e.users, cfg)
	e.badge = NewBadgeService(badges, e.sessions)
	e.badge.Now = clock
	e.skill = NewSkillService(db, e.skills, e.plans, e.sessions, e.cache, target)
	e.skill.Now = clock
	e.plan = NewPlanService(db, e.skills, e.plans, e.sessions, e.cache)
	e.session = NewSessionService(db, e.skills, e.sessions, reflections, e.badge, e.cache, target)
	e.session.Now = clock
	e.freeze = NewFreezeService(db, e.users, e.skills, e.sessions, e.freezes, e.cache)
	e.freeze.Now = clock
	e.dashboard = NewDashboardService(e.users, e.skills, e.plans, e.sessions, e.badge, e.freeze, e.cache, target)
	e.calendar = NewCalendarService(e.skills, e.plans, NewStorageService(storage))
	e.export = NewExportService(e.skills, e.plans, e.sessions, target)
	return e
}

func day(offset int) time.Time {
	y, m, d := testNow.Date()
	return time.Date(y, m, d+offset, 12, 0, 0, 0, time.UTC)
}
