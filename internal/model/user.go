package model

import "time"

const DefaultStreakFreezes = 3

type User struct {
	BaseModel
	Email                  string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username               string    `gorm:"size:100;not null" json:"username"`
	Password               string    `gorm:"size:100;not null" json:"-"`
	StreakFreezesAvailable int       `gorm:"default:3" json:"streak_freezes_available"`
	LastSeen               time.Time `json:"last_seen"`

	Skills []Skill     `gorm:"foreignKey:UserID" json:"-"`
	Badges []UserBadge `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
