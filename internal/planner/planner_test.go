package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EvenSplit(t *testing.T) {
	days, err := Generate("Guitar", 60, 1200)
	require.NoError(t, err)
	require.Len(t, days, 20)

	total := 0
	for i, d := range days {
		assert.Equal(t, i+1, d.DayNumber)
		assert.Equal(t, 60, d.DurationMinutes)
		total += d.DurationMinutes
	}
	assert.Equal(t, 1200, total)

	// 0..3 are under 20%, 4..9 under 50%, the rest focused practice
	assert.Equal(t, PhaseBasics, days[0].FocusTopic)
	assert.Equal(t, PhaseBasics, days[3].FocusTopic)
	assert.Equal(t, PhaseSelfCorrect, days[4].FocusTopic)
	assert.Equal(t, PhaseSelfCorrect, days[9].FocusTopic)
	assert.Equal(t, PhaseFocused, days[10].FocusTopic)
	assert.Equal(t, PhaseFocused, days[19].FocusTopic)

	assert.Contains(t, days[0].ActionTask, "Guitar")
	assert.NotContains(t, days[5].ActionTask, "Guitar")
	assert.Contains(t, days[19].ActionTask, "Guitar")
}

func TestGenerate_LastDayClipped(t *testing.T) {
	days, err := Generate("Chess", 45, 1200)
	require.NoError(t, err)
	require.Len(t, days, DayCount(45, 1200))
	assert.Len(t, days, 27)
	assert.Equal(t, 45, days[25].DurationMinutes)
	assert.Equal(t, 1200-26*45, days[26].DurationMinutes)
}

func TestGenerate_DailyLargerThanTarget(t *testing.T) {
	days, err := Generate("Juggling", 2000, 1200)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1200, days[0].DurationMinutes)
	assert.Equal(t, PhaseBasics, days[0].FocusTopic)
}

func TestGenerate_InvalidDailyMinutes(t *testing.T) {
	_, err := Generate("x", 0, 1200)
	assert.ErrorIs(t, err, ErrInvalidDailyMinutes)

	_, err = Generate("x", -5, 1200)
	assert.ErrorIs(t, err, ErrInvalidDailyMinutes)
}

func TestGenerate_DefaultTarget(t *testing.T) {
	days, err := Generate("x", 120, 0)
	require.NoError(t, err)
	assert.Len(t, days, 10)
}

func TestScheduledDate(t *testing.T) {
	start := time.Date(2026, 12, 30, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC), ScheduledDate(start, 1))
	assert.Equal(t, time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC), ScheduledDate(start, 4))
}

func TestCurrentDay(t *testing.T) {
	assert.Equal(t, 1, CurrentDay(0, 30))
	assert.Equal(t, 1, CurrentDay(29, 30))
	assert.Equal(t, 2, CurrentDay(30, 30))
	assert.Equal(t, 5, CurrentDay(125, 30))
	assert.Equal(t, 1, CurrentDay(100, 0))
}

func TestComputeProgress(t *testing.T) {
	p := ComputeProgress(100, 30, 1200)
	assert.Equal(t, 100, p.TotalMinutes)
	assert.Equal(t, 1.67, p.HoursDone)
	assert.Equal(t, 8.3, p.Percentage)
	assert.Equal(t, 4, p.CurrentDay)

	// 平分时取偶数
	assert.Equal(t, 0.2, ComputeProgress(3, 30, 1200).Percentage)
	assert.Equal(t, 6.2, ComputeProgress(75, 30, 1200).Percentage)
	assert.Equal(t, 1.2, ComputeProgress(15, 30, 1200).Percentage)

	capped := ComputeProgress(1500, 60, 1200)
	assert.Equal(t, 100.0, capped.Percentage)
	assert.Equal(t, 25.0, capped.HoursDone)
}

func TestReached(t *testing.T) {
	assert.False(t, Reached(1199, 1200))
	assert.True(t, Reached(1200, 1200))
	assert.True(t, Reached(1200, 0))
}

func TestStreak(t *testing.T) {
	today := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return today.AddDate(0, 0, offset)
	}

	cases := []struct {
		name     string
		activity []time.Time
		want     int
	}{
		{"nothing", nil, 0},
		{"today only", []time.Time{day(0)}, 1},
		{"through yesterday, nothing yet today", []time.Time{day(-1), day(-2), day(-3)}, 3},
		{"gap breaks", []time.Time{day(0), day(-1), day(-3)}, 2},
		{"last activity two days ago", []time.Time{day(-2), day(-3)}, 0},
		{"duplicates on one day", []time.Time{day(0), day(0).Add(-time.Hour), day(-1)}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Streak(tc.activity, today))
		})
	}
}

func TestHasDay(t *testing.T) {
	d := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.True(t, HasDay([]time.Time{d.Add(23 * time.Hour)}, d))
	assert.False(t, HasDay([]time.Time{d.Add(24 * time.Hour)}, d))
}
