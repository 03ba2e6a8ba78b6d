package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Reflection 会话结束后的反思
type Reflection struct {
	UUIDBase
	SessionID   uint       `gorm:"index;not null" json:"session_id"`
	Content     string     `gorm:"type:text" json:"content"`
	Difficulty  Difficulty `gorm:"size:10" json:"difficulty"`
	KeyTakeaway string     `gorm:"size:500" json:"key_takeaway"`
}

func (Reflection) TableName() string {
	return "reflections"
}
