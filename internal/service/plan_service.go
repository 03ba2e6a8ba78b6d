package service

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/planner"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"fmt"

	"gorm.io/gorm"
)

const maxShiftDays = 365

type PlanService struct {
	DB          *gorm.DB
	SkillRepo   *repository.SkillRepository
	PlanRepo    *repository.PlanRepository
	SessionRepo *repository.SessionRepository
	Cache       DashboardCache
}

func NewPlanService(
	db *gorm.DB,
	skillRepo *repository.SkillRepository,
	planRepo *repository.PlanRepository,
	sessionRepo *repository.SessionRepository,
	cache DashboardCache,
) *PlanService {
	return &PlanService{
		DB:          db,
		SkillRepo:   skillRepo,
		PlanRepo:    planRepo,
		SessionRepo: sessionRepo,
		Cache:       cache,
	}
}

func (s *PlanService) ownedSkill(userID, skillID uint) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindByIDAndUserID(skillID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}
	return skill, nil
}

func (s *PlanService) List(userID, skillID uint) ([]model.DailyPlan, error) {
	if _, err := s.ownedSkill(userID, skillID); err != nil {
		return nil, err
	}
	return s.PlanRepo.FindBySkillID(skillID)
}

// Shift pushes every plan from the learner's current day onward back by
// days. Days already behind the learner keep their dates. It returns how
// many plans moved.
func (s *PlanService) Shift(ctx context.Context, userID, skillID uint, days int) (int, error) {
	if days < 1 || days > maxShiftDays {
		return 0, util.ErrInvalidShift
	}
	skill, err := s.ownedSkill(userID, skillID)
	if err != nil {
		return 0, err
	}

	shifted := 0
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		total, err := s.SessionRepo.WithTx(tx).TotalMinutes(skill.ID)
		if err != nil {
			return err
		}
		plans := s.PlanRepo.WithTx(tx)
		remaining, err := plans.FindFromDay(skill.ID, planner.CurrentDay(total, skill.DailyMinutes))
		if err != nil {
			return err
		}
		for i := range remaining {
			p := &remaining[i]
			if p.ScheduledDate == nil {
				continue
			}
			moved := p.ScheduledDate.AddDate(0, 0, days)
			p.ScheduledDate = &moved
			if err := plans.Update(p); err != nil {
				return err
			}
			shifted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("shift schedule: %w", err)
	}

	s.Cache.Invalidate(ctx, userID)
	return shifted, nil
}

// AddResource appends a resource to the plan and returns the full list.
func (s *PlanService) AddResource(ctx context.Context, userID, planID uint, res model.Resource) ([]model.Resource, error) {
	plan, err := s.PlanRepo.FindByIDAndUserID(planID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPlanNotFound
		}
		return nil, err
	}

	if res.Type == "" {
		res.Type = "link"
	}
	plan.Resources = append(plan.Resources, res)
	if err := s.PlanRepo.Update(plan); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	s.Cache.Invalidate(ctx, userID)
	return plan.Resources, nil
}
