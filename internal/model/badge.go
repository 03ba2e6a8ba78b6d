package model

import "time"

type BadgeCriteria string

const (
	CriteriaSessions BadgeCriteria = "sessions"
	CriteriaMinutes  BadgeCriteria = "minutes"
)

type Badge struct {
	BaseModel
	Name         string        `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string        `gorm:"size:255" json:"description"`
	IconName     string        `gorm:"size:50" json:"icon_name"`
	CriteriaType BadgeCriteria `gorm:"size:20" json:"criteria_type"`
	Threshold    int           `json:"threshold"`
}

func (Badge) TableName() string {
	return "badges"
}

type UserBadge struct {
	BaseModel
	UserID   uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"user_id"`
	BadgeID  uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
	Badge    Badge     `gorm:"foreignKey:BadgeID" json:"badge"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

// DefaultBadges is the seeded catalog.
var DefaultBadges = []Badge{
	{Name: "First Step", Description: "Completed your first session", IconName: "footprints", CriteriaType: CriteriaSessions, Threshold: 1},
	{Name: "High Five", Description: "Completed 5 hours of practice", IconName: "hand", CriteriaType: CriteriaMinutes, Threshold: 300},
	{Name: "Mastery", Description: "Completed 20 hours", IconName: "trophy", CriteriaType: CriteriaMinutes, Threshold: 1200},
}
