package service

import (
	"context"
	"encoding/json"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/planner"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"first20_backend/pkg/logger"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DashboardService struct {
	UserRepo      *repository.UserRepository
	SkillRepo     *repository.SkillRepository
	PlanRepo      *repository.PlanRepository
	SessionRepo   *repository.SessionRepository
	Badges        *BadgeService
	Freezes       *FreezeService
	Cache         DashboardCache
	TargetMinutes int
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	skillRepo *repository.SkillRepository,
	planRepo *repository.PlanRepository,
	sessionRepo *repository.SessionRepository,
	badges *BadgeService,
	freezes *FreezeService,
	cache DashboardCache,
	targetMinutes int,
) *DashboardService {
	return &DashboardService{
		UserRepo:      userRepo,
		SkillRepo:     skillRepo,
		PlanRepo:      planRepo,
		SessionRepo:   sessionRepo,
		Badges:        badges,
		Freezes:       freezes,
		Cache:         cache,
		TargetMinutes: targetMinutes,
	}
}

type StreakInfo struct {
	CurrentDays      int `json:"current_days"`
	FreezesAvailable int `json:"freezes_available"`
}

type Dashboard struct {
	HasActiveSkill bool              `json:"has_active_skill"`
	Skill          *model.Skill      `json:"skill,omitempty"`
	CurrentPlan    *model.DailyPlan  `json:"current_plan"`
	Progress       *planner.Progress `json:"progress,omitempty"`
	Streak         *StreakInfo       `json:"streak,omitempty"`
	Badges         []model.UserBadge `json:"badges"`
}

// Get builds the dashboard for skillID, or for the latest active skill when
// skillID is nil.
func (s *DashboardService) Get(ctx context.Context, userID uint, skillID *uint) (*Dashboard, error) {
	cacheKey := "active"
	if skillID != nil {
		cacheKey = "skill:" + strconv.FormatUint(uint64(*skillID), 10)
	}
	if data, ok := s.Cache.Get(ctx, userID, cacheKey); ok {
		var cached Dashboard
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	d, err := s.build(userID, skillID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(d); err == nil {
		s.Cache.Set(ctx, userID, cacheKey, data)
	} else {
		logger.Log.Warn("dashboard not cacheable", zap.Error(err))
	}
	return d, nil
}

func (s *DashboardService) build(userID uint, skillID *uint) (*Dashboard, error) {
	var (
		skill *model.Skill
		err   error
	)
	if skillID != nil {
		skill, err = s.SkillRepo.FindByIDAndUserID(*skillID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
	} else {
		skill, err = s.SkillRepo.FindLatestActive(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Dashboard{HasActiveSkill: false}, nil
		}
	}
	if err != nil {
		return nil, err
	}

	total, err := s.SessionRepo.TotalMinutes(skill.ID)
	if err != nil {
		return nil, err
	}
	progress := planner.ComputeProgress(total, skill.DailyMinutes, s.TargetMinutes)

	plan, err := s.PlanRepo.FindBySkillAndDay(skill.ID, progress.CurrentDay)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		plan = nil
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.Freezes.Streak(skill.ID)
	if err != nil {
		return nil, err
	}
	badges, err := s.Badges.UserBadges(userID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []model.UserBadge{}
	}

	return &Dashboard{
		HasActiveSkill: true,
		Skill:          skill,
		CurrentPlan:    plan,
		Progress:       &progress,
		Streak: &StreakInfo{
			CurrentDays:      streak,
			FreezesAvailable: user.StreakFreezesAvailable,
		},
		Badges: badges,
	}, nil
}
