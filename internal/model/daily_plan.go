package model

import "time"

// Resource is a learning link attached to a plan day.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type DailyPlan struct {
	BaseModel
	SkillID                  uint       `gorm:"index;not null" json:"skill_id"`
	DayNumber                int        `gorm:"index;not null" json:"day_number"`
	FocusTopic               string     `gorm:"size:200" json:"focus_topic"`
	ActionTask               string     `gorm:"type:text" json:"action_task"`
	SuggestedDurationMinutes int        `json:"suggested_duration_minutes"`
	ScheduledDate            *time.Time `gorm:"type:date" json:"scheduled_date"`
	Resources                []Resource `gorm:"serializer:json;type:text" json:"resources"`
}

func (DailyPlan) TableName() string {
	return "daily_plans"
}
