package repository

import (
	"first20_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) WithTx(tx *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: tx}
}

func (r *SkillRepository) Create(skill *model.Skill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) Update(skill *model.Skill) error {
	return r.DB.Save(skill).Error
}

// FindByIDAndUserID returns gorm.ErrRecordNotFound for skills owned by
// someone else.
func (r *SkillRepository) FindByIDAndUserID(id, userID uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) FindByUserID(userID uint) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Where("user_id = ?", userID).Order("created_at asc, id asc").Find(&skills).Error
	return skills, err
}

// FindLatestActive returns the most recently created active skill.
func (r *SkillRepository) FindLatestActive(userID uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.SkillActive).
		Order("created_at desc, id desc").
		First(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) FindAllActive() ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Where("status = ?", model.SkillActive).Find(&skills).Error
	return skills, err
}

// Delete removes the skill and everything hanging off it.
func (r *SkillRepository) Delete(skill *model.Skill) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		sessionIDs := tx.Model(&model.Session{}).Select("id").Where("skill_id = ?", skill.ID)
		if err := tx.Where("session_id IN (?)", sessionIDs).Delete(&model.Reflection{}).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{&model.Session{}, &model.DailyPlan{}, &model.SkillFreeze{}} {
			if err := tx.Unscoped().Where("skill_id = ?", skill.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(skill).Error
	})
}
