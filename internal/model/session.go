package model

import "time"

// Session is one focus session logged against a skill.
type Session struct {
	BaseModel
	SkillID         uint      `gorm:"index;not null" json:"skill_id"`
	Date            time.Time `gorm:"index" json:"date"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	Reflections []Reflection `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"reflections,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}
