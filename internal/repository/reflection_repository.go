package repository

import (
	"first20_backend/internal/model"

	"gorm.io/gorm"
)

type ReflectionRepository struct {
	DB *gorm.DB
}

func NewReflectionRepository(db *gorm.DB) *ReflectionRepository {
	return &ReflectionRepository{DB: db}
}

func (r *ReflectionRepository) Create(reflection *model.Reflection) error {
	return r.DB.Create(reflection).Error
}

func (r *ReflectionRepository) FindBySessionID(sessionID uint) ([]model.Reflection, error) {
	var reflections []model.Reflection
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at asc").Find(&reflections).Error
	return reflections, err
}
