package testutil

import (
	"first20_backend/internal/model"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"
)

// NewUser inserts a user with a placeholder password hash.
func NewUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{
		Email:                  email,
		Username:               email,
		Password:               "x",
		StreakFreezesAvailable: model.DefaultStreakFreezes,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

type SkillOption func(*model.Skill)

func WithStatus(status model.SkillStatus) SkillOption {
	return func(s *model.Skill) { s.Status = status }
}

func WithDailyMinutes(m int) SkillOption {
	return func(s *model.Skill) { s.DailyMinutes = m }
}

// NewSkill inserts a bare skill with no plan.
func NewSkill(t *testing.T, db *gorm.DB, userID uint, name string, opts ...SkillOption) *model.Skill {
	t.Helper()
	s := &model.Skill{
		UserID:           userID,
		Name:             name,
		TargetDefinition: fmt.Sprintf("Be able to %s", name),
		DailyMinutes:     60,
		Status:           model.SkillActive,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("create skill: %v", err)
	}
	return s
}

// NewSession inserts a session at the given time.
func NewSession(t *testing.T, db *gorm.DB, skillID uint, minutes int, at time.Time) *model.Session {
	t.Helper()
	s := &model.Session{SkillID: skillID, DurationMinutes: minutes, Date: at.UTC()}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s
}

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
