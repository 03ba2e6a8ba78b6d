package service

import (
	"context"
	"first20_backend/internal/model"
	"first20_backend/internal/planner"
	"first20_backend/internal/testutil"
	"first20_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillService_CreateActiveGeneratesPlan(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	user := testutil.NewUser(t, e.db, "ann@example.com")

	skill, err := e.skill.Create(ctx, user.ID, CreateSkillInput{
		Name:             "Guitar",
		TargetDefinition: "Play three songs",
		DailyMinutes:     60,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SkillActive, skill.Status)

	plans, err := e.plans.FindBySkillID(skill.ID)
	require.NoError(t, err)
	require.Len(t, plans, 20)

	first := plans[0]
	assert.Equal(t, 1, first.DayNumber)
	assert.Equal(t, planner.PhaseBasics, first.FocusTopic)
	require.NotNil(t, first.ScheduledDate)
	assert.Equal(t, "2025-03-10", first.ScheduledDate.UTC().Format(util.DateFormat))
	assert.Equal(t, "2025-03-29", plans[19].ScheduledDate.UTC().Format(util.DateFormat))
	assert.Contains(t, e.cache.invalidated, user.ID)
}

func TestSkillService_CreateFutureHasNoPlan(t *testing.T) {
	e := newTestEnv(t)
	user := testutil.NewUser(t, e.db, "ann@example.com")

	skill, err := e.skill.Create(context.Background(), user.ID, CreateSkillInput{
		Name:         "Chess",
		DailyMinutes: 30,
		Status:       model.SkillFuture,
	})
	require.NoError(t, err)

	count, err := e.plans.CountBySkillID(skill.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSkillService_CreateRejectsNonPositiveMinutes(t *testing.T) {
	e := newTestEnv(t)
	user := testutil.NewUser(t, e.db, "ann@example.com")

	_, err := e.skill.Create(context.Background(), user.ID, CreateSkillInput{Name: "Chess"})
	assert.ErrorIs(t, err, util.ErrInvalidDailyMinutes)
}

func TestSkillService_ListGroupsWithProgress(t *testing.T) {
	e := newTestEnv(t)
	user := testutil.NewUser(t, e.db, "ann@example.com")
	other := testutil.NewUser(t, e.db, "bob@example.com")

	active := testutil.NewSkill(t, e.db, user.ID, "Guitar")
	testutil.NewSkill(t, e.db, user.ID, "Chess", testutil.WithStatus(model.SkillFuture))
	testutil.NewSkill(t, e.db, user.ID, "Knots", testutil.WithStatus(model.SkillCompleted))
	testutil.NewSkill(t, e.db, other.ID, "Piano")
	testutil.NewSession(t, e.db, active.ID, 90, day(0))

	groups, err := e.skill.List(user.ID)
	require.NoError(t, err)
	require.Len(t, groups.Active, 1)
	assert.Len(t, groups.Future, 1)
	assert.Len(t, groups.Completed, 1)

	assert.Equal(t, 90, groups.Active[0].TotalMinutes)
	assert.Equal(t, 1.5, groups.Active[0].HoursDone)
	assert.Equal(t, 7.5, groups.Active[0].Percentage)
}

func TestSkillService_ActiveIsLatest(t *testing.T) {
	e := newTestEnv(t)
	user := testutil.NewUser(t, e.db, "ann@example.com")

	none, err := e.skill.Active(user.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	testutil.NewSkill(t, e.db, user.ID, "Guitar")
	latest := testutil.NewSkill(t, e.db, user.ID, "Chess")

	got, err := e.skill.Active(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, latest.ID, got.ID)
}

func TestSkillService_Start(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	user := testutil.NewUser(t, e.db, "ann@example.com")
	future := testutil.NewSkill(t, e.db, user.ID, "Chess", testutil.WithStatus(model.SkillFuture), testutil.WithDailyMinutes(120))

	started, err := e.skill.Start(ctx, user.ID, future.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SkillActive, started.Status)

	count, err := e.plans.CountBySkillID(future.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)

	// already active: unchanged, no second plan
	_, err = e.skill.Start(ctx, user.ID, future.ID)
	require.NoError(t, err)
	count, err = e.plans.CountBySkillID(future.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)
}

func TestSkillService_StartCompletedConflicts(t *testing.T) {
	e := newTestEnv(t)
	user := testutil.NewUser(t, e.db, "ann@example.com")
	done := testutil.NewSkill(t, e.db, user.ID, "Knots", testutil.WithStatus(model.SkillCompleted))

	_, err := e.skill.Start(context.Background(), user.ID, done.ID)
	assert.ErrorIs(t, err, util.ErrSkillCompleted)
}

func TestSkillService_ForeignSkillNotFound(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.NewUser(t, e.db, "ann@example.com")
	intruder := testutil.NewUser(t, e.db, "bob@example.com")
	skill := testutil.NewSkill(t, e.db, owner.ID, "Guitar")

	_, err := e.skill.Start(ctx, intruder.ID, skill.ID)
	assert.ErrorIs(t, err, util.ErrSkillNotFound)
	assert.ErrorIs(t, e.skill.Delete(ctx, intruder.ID, skill.ID), util.ErrSkillNotFound)
}

func TestSkillService_DeleteCascades(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	user := testutil.NewUser(t, e.db, "ann@example.com")

	skill, err := e.skill.Create(ctx, user.ID, CreateSkillInput{Name: "Guitar", DailyMinutes: 60})
	require.NoError(t, err)
	result, err := e.session.Log(ctx, user.ID, skill.ID, 30)
	require.NoError(t, err)
	_, err = e.session.AddReflection(user.ID, ReflectionInput{SessionID: result.Session.ID, Difficulty: model.DifficultyEasy})
	require.NoError(t, err)
	_, err = e.freeze.Freeze(ctx, user.ID, skill.ID, nil)
	require.NoError(t, err)

	require.NoError(t, e.skill.Delete(ctx, user.ID, skill.ID))

	for _, m := range []interface{}{&model.DailyPlan{}, &model.Session{}, &model.Reflection{}, &model.SkillFreeze{}} {
		var n int64
		require.NoError(t, e.db.Unscoped().Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T left behind", m)
	}
	_, err = e.skill.Get(user.ID, skill.ID)
	assert.ErrorIs(t, err, util.ErrSkillNotFound)
}

func TestBuildPlanSchedulesConsecutiveDays(t *testing.T) {
	skill := &model.Skill{BaseModel: model.BaseModel{ID: 7}, Name: "Go", DailyMinutes: 500}
	plans, err := buildPlan(skill, 1200, time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "2026-01-02", plans[2].ScheduledDate.Format(util.DateFormat))
	assert.Equal(t, 200, plans[2].SuggestedDurationMinutes)
	assert.Equal(t, uint(7), plans[2].SkillID)
}
