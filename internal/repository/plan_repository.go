package repository

import (
	"first20_backend/internal/model"

	"gorm.io/gorm"
)

type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

func (r *PlanRepository) WithTx(tx *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: tx}
}

func (r *PlanRepository) CreateBatch(plans []model.DailyPlan) error {
	if len(plans) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(plans, 100).Error
}

func (r *PlanRepository) FindBySkillID(skillID uint) ([]model.DailyPlan, error) {
	var plans []model.DailyPlan
	err := r.DB.Where("skill_id = ?", skillID).Order("day_number asc").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) FindBySkillAndDay(skillID uint, day int) (*model.DailyPlan, error) {
	var plan model.DailyPlan
	err := r.DB.Where("skill_id = ? AND day_number = ?", skillID, day).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) FindFromDay(skillID uint, fromDay int) ([]model.DailyPlan, error) {
	var plans []model.DailyPlan
	err := r.DB.Where("skill_id = ? AND day_number >= ?", skillID, fromDay).
		Order("day_number asc").
		Find(&plans).Error
	return plans, err
}

// FindByIDAndUserID joins through skills so only the owner sees the plan.
func (r *PlanRepository) FindByIDAndUserID(id, userID uint) (*model.DailyPlan, error) {
	var plan model.DailyPlan
	err := r.DB.Joins("JOIN skills ON skills.id = daily_plans.skill_id").
		Where("daily_plans.id = ? AND skills.user_id = ? AND skills.deleted_at IS NULL", id, userID).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) CountBySkillID(skillID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.DailyPlan{}).Where("skill_id = ?", skillID).Count(&count).Error
	return count, err
}

func (r *PlanRepository) Update(plan *model.DailyPlan) error {
	return r.DB.Save(plan).Error
}
