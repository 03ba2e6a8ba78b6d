package service

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/planner"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type SkillService struct {
	DB            *gorm.DB
	SkillRepo     *repository.SkillRepository
	PlanRepo      *repository.PlanRepository
	SessionRepo   *repository.SessionRepository
	Cache         DashboardCache
	TargetMinutes int
	Now           func() time.Time
}

func NewSkillService(
	db *gorm.DB,
	skillRepo *repository.SkillRepository,
	planRepo *repository.PlanRepository,
	sessionRepo *repository.SessionRepository,
	cache DashboardCache,
	targetMinutes int,
) *SkillService {
	return &SkillService{
		DB:            db,
		SkillRepo:     skillRepo,
		PlanRepo:      planRepo,
		SessionRepo:   sessionRepo,
		Cache:         cache,
		TargetMinutes: targetMinutes,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

type CreateSkillInput struct {
	Name             string
	TargetDefinition string
	DailyMinutes     int
	Status           model.SkillStatus
}

// SkillSummary is a skill with its progress figures attached.
type SkillSummary struct {
	model.Skill
	TotalMinutes int     `json:"total_minutes"`
	HoursDone    float64 `json:"hours_done"`
	Percentage   float64 `json:"percentage"`
}

type SkillGroups struct {
	Active    []SkillSummary `json:"active"`
	Completed []SkillSummary `json:"completed"`
	Future    []SkillSummary `json:"future"`
}

// buildPlan generates and schedules a full plan starting on start's date.
func buildPlan(skill *model.Skill, targetMinutes int, start time.Time) ([]model.DailyPlan, error) {
	days, err := planner.Generate(skill.Name, skill.DailyMinutes, targetMinutes)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidDailyMinutes) {
			return nil, util.ErrInvalidDailyMinutes
		}
		return nil, err
	}

	plans := make([]model.DailyPlan, 0, len(days))
	for _, d := range days {
		scheduled := planner.ScheduledDate(start, d.DayNumber)
		plans = append(plans, model.DailyPlan{
			SkillID:                  skill.ID,
			DayNumber:                d.DayNumber,
			FocusTopic:               d.FocusTopic,
			ActionTask:               d.ActionTask,
			SuggestedDurationMinutes: d.DurationMinutes,
			ScheduledDate:            &scheduled,
			Resources:                []model.Resource{},
		})
	}
	return plans, nil
}

// Create stores the skill; an active skill gets its plan in the same
// transaction.
func (s *SkillService) Create(ctx context.Context, userID uint, in CreateSkillInput) (*model.Skill, error) {
	if in.DailyMinutes <= 0 {
		return nil, util.ErrInvalidDailyMinutes
	}
	if in.Status == "" {
		in.Status = model.SkillActive
	}

	skill := &model.Skill{
		UserID:           userID,
		Name:             in.Name,
		TargetDefinition: in.TargetDefinition,
		DailyMinutes:     in.DailyMinutes,
		Status:           in.Status,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.SkillRepo.WithTx(tx).Create(skill); err != nil {
			return err
		}
		if !skill.IsActive() {
			return nil
		}
		plans, err := buildPlan(skill, s.TargetMinutes, s.Now())
		if err != nil {
			return err
		}
		return s.PlanRepo.WithTx(tx).CreateBatch(plans)
	})
	if err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}

	s.Cache.Invalidate(ctx, userID)
	return skill, nil
}

func (s *SkillService) Get(userID, skillID uint) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindByIDAndUserID(skillID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) List(userID uint) (*SkillGroups, error) {
	skills, err := s.SkillRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	totals, err := s.SessionRepo.TotalsBySkill(userID)
	if err != nil {
		return nil, err
	}

	groups := &SkillGroups{
		Active:    []SkillSummary{},
		Completed: []SkillSummary{},
		Future:    []SkillSummary{},
	}
	for _, skill := range skills {
		p := planner.ComputeProgress(totals[skill.ID], skill.DailyMinutes, s.TargetMinutes)
		summary := SkillSummary{
			Skill:        skill,
			TotalMinutes: p.TotalMinutes,
			HoursDone:    p.HoursDone,
			Percentage:   p.Percentage,
		}
		switch skill.Status {
		case model.SkillActive:
			groups.Active = append(groups.Active, summary)
		case model.SkillCompleted:
			groups.Completed = append(groups.Completed, summary)
		case model.SkillFuture:
			groups.Future = append(groups.Future, summary)
		}
	}
	return groups, nil
}

// Active returns nil without error when the user has no active skill.
func (s *SkillService) Active(userID uint) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindLatestActive(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return skill, nil
}

// Start turns a future skill into an active one with a plan from today.
func (s *SkillService) Start(ctx context.Context, userID, skillID uint) (*model.Skill, error) {
	skill, err := s.Get(userID, skillID)
	if err != nil {
		return nil, err
	}

	switch skill.Status {
	case model.SkillActive:
		return skill, nil
	case model.SkillCompleted:
		return nil, util.ErrSkillCompleted
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		plans := s.PlanRepo.WithTx(tx)
		existing, err := plans.CountBySkillID(skill.ID)
		if err != nil {
			return err
		}
		if existing == 0 {
			generated, err := buildPlan(skill, s.TargetMinutes, s.Now())
			if err != nil {
				return err
			}
			if err := plans.CreateBatch(generated); err != nil {
				return err
			}
		}
		skill.Status = model.SkillActive
		return s.SkillRepo.WithTx(tx).Update(skill)
	})
	if err != nil {
		return nil, fmt.Errorf("start skill: %w", err)
	}

	s.Cache.Invalidate(ctx, userID)
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, userID, skillID uint) error {
	skill, err := s.Get(userID, skillID)
	if err != nil {
		return err
	}
	if err := s.SkillRepo.Delete(skill); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	s.Cache.Invalidate(ctx, userID)
	return nil
}
