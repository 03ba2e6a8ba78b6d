package repository

import (
	"first20_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type FreezeRepository struct {
	DB *gorm.DB
}

func NewFreezeRepository(db *gorm.DB) *FreezeRepository {
	return &FreezeRepository{DB: db}
}

func (r *FreezeRepository) WithTx(tx *gorm.DB) *FreezeRepository {
	return &FreezeRepository{DB: tx}
}

func (r *FreezeRepository) Create(freeze *model.SkillFreeze) error {
	return r.DB.Create(freeze).Error
}

func (r *FreezeRepository) DatesSince(skillID uint, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.DB.Model(&model.SkillFreeze{}).
		Where("skill_id = ? AND date >= ?", skillID, since).
		Pluck("date", &dates).Error
	return dates, err
}
