package model

import "time"

type SkillStatus string

const (
	SkillActive    SkillStatus = "active"
	SkillFuture    SkillStatus = "future"
	SkillCompleted SkillStatus = "completed"
)

// Skill is a learning goal tracked toward the twenty hour target.
type Skill struct {
	BaseModel
	UserID           uint        `gorm:"index;not null" json:"user_id"`
	Name             string      `gorm:"size:200;index;not null" json:"name"`
	TargetDefinition string      `gorm:"size:500" json:"target_definition"`
	DailyMinutes     int         `gorm:"not null" json:"daily_minutes"`
	Status           SkillStatus `gorm:"size:20;index;default:active" json:"status"`
	CompletedAt      *time.Time  `json:"completed_at"`

	DailyPlans []DailyPlan   `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"-"`
	Sessions   []Session     `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"-"`
	Freezes    []SkillFreeze `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Skill) TableName() string {
	return "skills"
}

func (s *Skill) IsActive() bool {
	return s.Status == SkillActive
}
