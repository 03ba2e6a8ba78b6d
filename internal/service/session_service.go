package service

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/planner"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SessionService struct {
	DB             *gorm.DB
	SkillRepo      *repository.SkillRepository
	SessionRepo    *repository.SessionRepository
	ReflectionRepo *repository.ReflectionRepository
	Badges         *BadgeService
	Cache          DashboardCache
	TargetMinutes  int
	Now            func() time.Time
}

func NewSessionService(
	db *gorm.DB,
	skillRepo *repository.SkillRepository,
	sessionRepo *repository.SessionRepository,
	reflectionRepo *repository.ReflectionRepository,
	badges *BadgeService,
	cache DashboardCache,
	targetMinutes int,
) *SessionService {
	return &SessionService{
		DB:             db,
		SkillRepo:      skillRepo,
		SessionRepo:    sessionRepo,
		ReflectionRepo: reflectionRepo,
		Badges:         badges,
		Cache:          cache,
		TargetMinutes:  targetMinutes,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

type LogResult struct {
	model.Session
	NewBadges      []string `json:"new_badges"`
	SkillCompleted bool     `json:"skill_completed"`
}

// Log records a finished focus session. When it carries an active skill
// over the target, the skill is completed in the same transaction.
func (s *SessionService) Log(ctx context.Context, userID, skillID uint, minutes int) (*LogResult, error) {
	skill, err := s.SkillRepo.FindByIDAndUserID(skillID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	now := s.Now()
	result := &LogResult{
		Session: model.Session{
			SkillID:         skill.ID,
			Date:            now,
			DurationMinutes: minutes,
		},
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		sessions := s.SessionRepo.WithTx(tx)
		if err := sessions.Create(&result.Session); err != nil {
			return err
		}
		if !skill.IsActive() {
			return nil
		}
		total, err := sessions.TotalMinutes(skill.ID)
		if err != nil {
			return err
		}
		if !planner.Reached(total, s.TargetMinutes) {
			return nil
		}
		skill.Status = model.SkillCompleted
		skill.CompletedAt = &now
		result.SkillCompleted = true
		return s.SkillRepo.WithTx(tx).Update(skill)
	})
	if err != nil {
		return nil, fmt.Errorf("log session: %w", err)
	}

	monitoring.SessionsLogged.Inc()
	monitoring.MinutesLogged.Add(float64(minutes))
	if result.SkillCompleted {
		monitoring.SkillsCompleted.Inc()
		logger.Log.Info("skill completed", zap.Uint("user_id", userID), zap.Uint("skill_id", skill.ID))
	}

	result.NewBadges, err = s.Badges.Evaluate(userID)
	if err != nil {
		// the session is already stored; badges catch up on the next log
		logger.Log.Error("badge evaluation failed", zap.Uint("user_id", userID), zap.Error(err))
	}
	if result.NewBadges == nil {
		result.NewBadges = []string{}
	}

	s.Cache.Invalidate(ctx, userID)
	return result, nil
}

type ReflectionInput struct {
	SessionID   uint
	Content     string
	Difficulty  model.Difficulty
	KeyTakeaway string
}

// AddReflection attaches a reflection to one of the caller's sessions.
func (s *SessionService) AddReflection(userID uint, in ReflectionInput) (*model.Reflection, error) {
	if _, err := s.SessionRepo.FindByIDAndUserID(in.SessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	reflection := &model.Reflection{
		SessionID:   in.SessionID,
		Content:     in.Content,
		Difficulty:  in.Difficulty,
		KeyTakeaway: in.KeyTakeaway,
	}
	if err := s.ReflectionRepo.Create(reflection); err != nil {
		return nil, fmt.Errorf("save reflection: %w", err)
	}
	return reflection, nil
}

// List returns the skill's sessions newest first, reflections included.
func (s *SessionService) List(userID, skillID uint) ([]model.Session, error) {
	if _, err := s.SkillRepo.FindByIDAndUserID(skillID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}
	return s.SessionRepo.FindBySkillID(skillID)
}
