package service

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/planner"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// streakLookback bounds how far back activity is loaded for a streak.
const streakLookback = 366

type FreezeService struct {
	DB          *gorm.DB
	UserRepo    *repository.UserRepository
	SkillRepo   *repository.SkillRepository
	SessionRepo *repository.SessionRepository
	FreezeRepo  *repository.FreezeRepository
	Cache       DashboardCache
	Now         func() time.Time
}

func NewFreezeService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	skillRepo *repository.SkillRepository,
	sessionRepo *repository.SessionRepository,
	freezeRepo *repository.FreezeRepository,
	cache DashboardCache,
) *FreezeService {
	return &FreezeService{
		DB:          db,
		UserRepo:    userRepo,
		SkillRepo:   skillRepo,
		SessionRepo: sessionRepo,
		FreezeRepo:  freezeRepo,
		Cache:       cache,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// activity returns session and freeze days for the skill within the
// lookback window.
func (s *FreezeService) activity(skillID uint) ([]time.Time, error) {
	since := today(s.Now()).AddDate(0, 0, -streakLookback)
	sessions, err := s.SessionRepo.DatesSince(skillID, since)
	if err != nil {
		return nil, err
	}
	freezes, err := s.FreezeRepo.DatesSince(skillID, since)
	if err != nil {
		return nil, err
	}
	return append(sessions, freezes...), nil
}

// Streak is the skill's current run of days with a session or a freeze.
func (s *FreezeService) Streak(skillID uint) (int, error) {
	days, err := s.activity(skillID)
	if err != nil {
		return 0, err
	}
	return planner.Streak(days, s.Now()), nil
}

// apply consumes one of the user's freezes for day. A concurrent freeze of
// the same day hits the unique index and is reported as ErrAlreadyFrozen.
func (s *FreezeService) apply(userID, skillID uint, day time.Time) (*model.SkillFreeze, error) {
	freeze := &model.SkillFreeze{SkillID: skillID, Date: day}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.UserRepo.WithTx(tx).ConsumeFreeze(userID)
		if err != nil {
			return err
		}
		if !ok {
			return util.ErrNoFreezesLeft
		}
		return s.FreezeRepo.WithTx(tx).Create(freeze)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrAlreadyFrozen
	}
	if err != nil {
		return nil, err
	}
	return freeze, nil
}

// Freeze spends a freeze on day (today when nil) for one of the user's
// skills.
func (s *FreezeService) Freeze(ctx context.Context, userID, skillID uint, day *time.Time) (*model.SkillFreeze, error) {
	skill, err := s.SkillRepo.FindByIDAndUserID(skillID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	target := today(s.Now())
	if day != nil {
		target = today(*day)
	}

	frozen, err := s.FreezeRepo.DatesSince(skill.ID, target)
	if err != nil {
		return nil, err
	}
	if planner.HasDay(frozen, target) {
		return nil, util.ErrAlreadyFrozen
	}

	freeze, err := s.apply(userID, skill.ID, target)
	if err != nil {
		if errors.Is(err, util.ErrNoFreezesLeft) || errors.Is(err, util.ErrAlreadyFrozen) {
			return nil, err
		}
		return nil, fmt.Errorf("freeze day: %w", err)
	}

	monitoring.FreezesApplied.WithLabelValues("manual").Inc()
	s.Cache.Invalidate(ctx, userID)
	return freeze, nil
}

// AutoFreeze covers yesterday for every active skill that missed it while
// its streak was still alive, as long as the owner has freezes left. It
// returns how many freezes were applied.
func (s *FreezeService) AutoFreeze(ctx context.Context) (int, error) {
	skills, err := s.SkillRepo.FindAllActive()
	if err != nil {
		return 0, err
	}

	yesterday := today(s.Now()).AddDate(0, 0, -1)
	applied := 0
	for _, skill := range skills {
		days, err := s.activity(skill.ID)
		if err != nil {
			return applied, err
		}
		if planner.HasDay(days, yesterday) {
			continue
		}
		// counted from yesterday, which is empty, so this is the run that
		// ended the day before
		if planner.Streak(days, yesterday) == 0 {
			continue
		}

		if _, err := s.apply(skill.UserID, skill.ID, yesterday); err != nil {
			if errors.Is(err, util.ErrNoFreezesLeft) || errors.Is(err, util.ErrAlreadyFrozen) {
				continue
			}
			return applied, fmt.Errorf("auto freeze skill %d: %w", skill.ID, err)
		}
		applied++
		monitoring.FreezesApplied.WithLabelValues("auto").Inc()
		logger.Log.Info("streak freeze applied",
			zap.Uint("user_id", skill.UserID),
			zap.Uint("skill_id", skill.ID),
			zap.String("date", yesterday.Format(util.DateFormat)),
		)
		s.Cache.Invalidate(ctx, skill.UserID)
	}
	return applied, nil
}
