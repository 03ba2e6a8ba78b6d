package model

import "time"

// SkillFreeze marks a day the streak is kept alive without practice.
type SkillFreeze struct {
	BaseModel
	SkillID uint      `gorm:"uniqueIndex:idx_skill_freeze_date;not null" json:"skill_id"`
	Date    time.Time `gorm:"type:date;uniqueIndex:idx_skill_freeze_date" json:"date"`
}

func (SkillFreeze) TableName() string {
	return "skill_freezes"
}
