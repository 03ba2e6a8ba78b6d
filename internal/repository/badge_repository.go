package repository

import (
	"first20_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) WithTx(tx *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: tx}
}

func (r *BadgeRepository) Catalog() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Order("id asc").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindByUserID(userID uint) ([]model.UserBadge, error) {
	var badges []model.UserBadge
	err := r.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at asc, id asc").
		Find(&badges).Error
	return badges, err
}

// EarnedIDs returns the ids of badges the user already holds.
func (r *BadgeRepository) EarnedIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := r.DB.Model(&model.UserBadge{}).Where("user_id = ?", userID).Pluck("badge_id", &ids).Error; err != nil {
		return nil, err
	}
	earned := make(map[uint]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

// Award inserts the user badge unless it is already held. It reports
// whether a row was written.
func (r *BadgeRepository) Award(userBadge *model.UserBadge) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(userBadge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
