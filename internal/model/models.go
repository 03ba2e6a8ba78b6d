package model

// All lists every table managed by migrations, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Skill{},
		&DailyPlan{},
		&Session{},
		&Reflection{},
		&Badge{},
		&UserBadge{},
		&SkillFreeze{},
	}
}
