package repository

import (
	"first20_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) WithTx(tx *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: tx}
}

func (r *SessionRepository) Create(session *model.Session) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByIDAndUserID(id, userID uint) (*model.Session, error) {
	var session model.Session
	err := r.DB.Joins("JOIN skills ON skills.id = sessions.skill_id").
		Where("sessions.id = ? AND skills.user_id = ? AND skills.deleted_at IS NULL", id, userID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) TotalMinutes(skillID uint) (int, error) {
	var total int64
	err := r.DB.Model(&model.Session{}).
		Where("skill_id = ?", skillID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	return int(total), err
}

// TotalsBySkill sums minutes per skill for a user in one query.
func (r *SessionRepository) TotalsBySkill(userID uint) (map[uint]int, error) {
	type row struct {
		SkillID uint
		Total   int64
	}
	var rows []row
	err := r.DB.Model(&model.Session{}).
		Select("sessions.skill_id AS skill_id, SUM(sessions.duration_minutes) AS total").
		Joins("JOIN skills ON skills.id = sessions.skill_id").
		Where("skills.user_id = ? AND skills.deleted_at IS NULL", userID).
		Group("sessions.skill_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[uint]int, len(rows))
	for _, r := range rows {
		totals[r.SkillID] = int(r.Total)
	}
	return totals, nil
}

// UserStats returns the session count and minute sum across all of a
// user's skills.
func (r *SessionRepository) UserStats(userID uint) (count int64, minutes int, err error) {
	var out struct {
		Count   int64
		Minutes int64
	}
	err = r.DB.Model(&model.Session{}).
		Select("COUNT(sessions.id) AS count, COALESCE(SUM(sessions.duration_minutes), 0) AS minutes").
		Joins("JOIN skills ON skills.id = sessions.skill_id").
		Where("skills.user_id = ? AND skills.deleted_at IS NULL", userID).
		Scan(&out).Error
	return out.Count, int(out.Minutes), err
}

func (r *SessionRepository) FindBySkillID(skillID uint) ([]model.Session, error) {
	var sessions []model.Session
	err := r.DB.Preload("Reflections").
		Where("skill_id = ?", skillID).
		Order("date desc, id desc").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) DatesSince(skillID uint, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.DB.Model(&model.Session{}).
		Where("skill_id = ? AND date >= ?", skillID, since).
		Pluck("date", &dates).Error
	return dates, err
}
