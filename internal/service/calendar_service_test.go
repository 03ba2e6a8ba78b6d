package service

import (
	"context"
	"first20_backend/internal/model"
	"first20_backend/internal/testutil"
	"first20_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarFilename(t *testing.T) {
	cases := map[string]string{
		"Guitar":             "guitar_schedule.ics",
		"Touch Typing":       "touch_typing_schedule.ics",
		"Go  Lang":           "go__lang_schedule.ics",
		" Spanish\tGrammar ": "_spanish_grammar__schedule.ics",
	}
	for name, want := range cases {
		assert.Equal(t, want, CalendarFilename(name), name)
	}
}

func TestBuildICS(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	skill := &model.Skill{Name: "Cooking, French; basics"}
	plans := []model.DailyPlan{
		{BaseModel: model.BaseModel{ID: 11}, DayNumber: 1, ActionTask: "Knife skills", ScheduledDate: &d1},
		{BaseModel: model.BaseModel{ID: 12}, DayNumber: 2, ScheduledDate: &d2},
		{BaseModel: model.BaseModel{ID: 13}, DayNumber: 3},
	}

	ics := string(BuildICS(skill, plans))

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//First20Hours//App//EN\r\n"))
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	assert.NotContains(t, strings.ReplaceAll(ics, "\r\n", ""), "\n")

	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "UID:20hours-plan-11-20250310\r\n")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250311\r\n")
	assert.Contains(t, ics, `SUMMARY:Cooking\, French\; basics - Day 1`+"\r\n")
	assert.Contains(t, ics, "DESCRIPTION:Knife skills\r\n")
	assert.Contains(t, ics, "DESCRIPTION:Practice Session\r\n")
	assert.NotContains(t, ics, "plan-13")
}

func TestFoldLine(t *testing.T) {
	short := "SUMMARY:short"
	assert.Equal(t, short, foldLine(short))

	long := "DESCRIPTION:" + strings.Repeat("é", 60)
	folded := foldLine(long)
	parts := strings.Split(folded, "\r\n")
	require.Greater(t, len(parts), 1)
	for i, p := range parts {
		assert.LessOrEqual(t, len(p), icsLineLimit, "part %d", i)
		if i > 0 {
			assert.True(t, strings.HasPrefix(p, " "))
		}
	}

	var unfolded strings.Builder
	for i, p := range parts {
		if i > 0 {
			p = p[1:]
		}
		unfolded.WriteString(p)
	}
	assert.Equal(t, long, unfolded.String())
}

func TestCalendarService_Export(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	user := testutil.NewUser(t, e.db, "ann@example.com")
	intruder := testutil.NewUser(t, e.db, "bob@example.com")
	skill, err := e.skill.Create(ctx, user.ID, CreateSkillInput{Name: "Touch Typing", DailyMinutes: 120})
	require.NoError(t, err)

	filename, data, err := e.calendar.Export(user.ID, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, "touch_typing_schedule.ics", filename)
	assert.Equal(t, 10, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Contains(t, string(data), "SUMMARY:Touch Typing - Day 10\r\n")

	_, _, err = e.calendar.Export(intruder.ID, skill.ID)
	assert.ErrorIs(t, err, util.ErrSkillNotFound)
}

func TestCalendarService_PublishLocal(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnvWithStorage(t, localStorage(dir))
	ctx := context.Background()
	user := testutil.NewUser(t, e.db, "ann@example.com")
	skill, err := e.skill.Create(ctx, user.ID, CreateSkillInput{Name: "Guitar", DailyMinutes: 600})
	require.NoError(t, err)

	url, err := e.calendar.Publish(ctx, user.ID, skill.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://files.test/uploads/calendars/"), url)
	assert.True(t, strings.HasSuffix(url, "/guitar_schedule.ics"))

	key := strings.TrimPrefix(url, "http://files.test/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "BEGIN:VEVENT"))

	// stable key: republishing overwrites
	again, err := e.calendar.Publish(ctx, user.ID, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, url, again)
}
