package planner

import (
	"math"
	"time"
)

type Progress struct {
	TotalMinutes int     `json:"total_minutes"`
	HoursDone    float64 `json:"hours_done"`
	Percentage   float64 `json:"percentage"`
	CurrentDay   int     `json:"current_day"`
}

// round uses half-to-even so 0.25 becomes 0.2.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}

// ComputeProgress derives the progress block shown for a skill. Percentage
// is capped at 100.
func ComputeProgress(totalMinutes, dailyMinutes, targetMinutes int) Progress {
	if targetMinutes <= 0 {
		targetMinutes = DefaultTargetMins
	}
	return Progress{
		TotalMinutes: totalMinutes,
		HoursDone:    round(float64(totalMinutes)/60, 2),
		Percentage:   math.Min(round(float64(totalMinutes)/float64(targetMinutes)*100, 1), 100),
		CurrentDay:   CurrentDay(totalMinutes, dailyMinutes),
	}
}

// Reached reports whether the target has been met.
func Reached(totalMinutes, targetMinutes int) bool {
	if targetMinutes <= 0 {
		targetMinutes = DefaultTargetMins
	}
	return totalMinutes >= targetMinutes
}

func dayKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streak counts consecutive days with activity ending today. A day without
// activity yet today does not break the streak; counting then starts at
// yesterday.
func Streak(activity []time.Time, today time.Time) int {
	days := make(map[time.Time]bool, len(activity))
	for _, t := range activity {
		days[dayKey(t)] = true
	}

	cursor := dayKey(today)
	if !days[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// HasDay reports whether any of the times falls on day's calendar date.
func HasDay(times []time.Time, day time.Time) bool {
	key := dayKey(day)
	for _, t := range times {
		if dayKey(t).Equal(key) {
			return true
		}
	}
	return false
}
