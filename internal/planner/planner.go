// Package planner holds the rules of the twenty hour program: how a plan is
// laid out over days, how far along a learner is, and how streaks count.
// Nothing here touches storage.
package planner

import (
	"errors"
	"fmt"
	"time"
)

const (
	PhaseBasics       = "Deconstruction & Basics"
	PhaseSelfCorrect  = "Learning to Self-Correct"
	PhaseFocused      = "Focused Practice"
	basicsShare       = 0.2
	selfCorrectShare  = 0.5
	DefaultTargetMins = 20 * 60
)

var ErrInvalidDailyMinutes = errors.New("daily minutes must be positive")

// PlanDay is one generated day before it is bound to a skill.
type PlanDay struct {
	DayNumber       int
	FocusTopic      string
	ActionTask      string
	DurationMinutes int
}

// Generate lays out targetMinutes of practice in dailyMinutes chunks. The
// final day carries only the remainder. The phase of a day is decided by the
// share of the target completed before it starts.
func Generate(skillName string, dailyMinutes, targetMinutes int) ([]PlanDay, error) {
	if dailyMinutes <= 0 {
		return nil, ErrInvalidDailyMinutes
	}
	if targetMinutes <= 0 {
		targetMinutes = DefaultTargetMins
	}

	days := make([]PlanDay, 0, DayCount(dailyMinutes, targetMinutes))
	accumulated := 0
	for day := 1; accumulated < targetMinutes; day++ {
		duration := dailyMinutes
		if accumulated+duration > targetMinutes {
			duration = targetMinutes - accumulated
		}

		topic, task := phase(skillName, float64(accumulated)/float64(targetMinutes))
		days = append(days, PlanDay{
			DayNumber:       day,
			FocusTopic:      topic,
			ActionTask:      task,
			DurationMinutes: duration,
		})
		accumulated += duration
	}
	return days, nil
}

func phase(skillName string, progress float64) (string, string) {
	switch {
	case progress < basicsShare:
		return PhaseBasics, fmt.Sprintf("Identify core components of %s. Research top resources. Deconstruct complex parts into smaller tasks.", skillName)
	case progress < selfCorrectShare:
		return PhaseSelfCorrect, "Practice core mechanisms. Focus on 'getting it right'. Identify mistakes immediately and correct them."
	default:
		return PhaseFocused, fmt.Sprintf("Deep work session on %s. Remove all distractions. Push past the frustration barrier.", skillName)
	}
}

// DayCount is ceil(target / daily).
func DayCount(dailyMinutes, targetMinutes int) int {
	if dailyMinutes <= 0 {
		return 0
	}
	return (targetMinutes + dailyMinutes - 1) / dailyMinutes
}

// ScheduledDate puts day 1 on start's calendar date and each later day on
// the following one.
func ScheduledDate(start time.Time, dayNumber int) time.Time {
	y, m, d := start.Date()
	return time.Date(y, m, d+dayNumber-1, 0, 0, 0, 0, time.UTC)
}

// CurrentDay is the 1-based plan day the learner is on.
func CurrentDay(totalMinutes, dailyMinutes int) int {
	if dailyMinutes <= 0 {
		return 1
	}
	return totalMinutes/dailyMinutes + 1
}
