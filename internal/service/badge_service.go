package service

import (
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type BadgeService struct {
	BadgeRepo   *repository.BadgeRepository
	SessionRepo *repository.SessionRepository
	Now         func() time.Time
}

func NewBadgeService(badgeRepo *repository.BadgeRepository, sessionRepo *repository.SessionRepository) *BadgeService {
	return &BadgeService{
		BadgeRepo:   badgeRepo,
		SessionRepo: sessionRepo,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

func qualifies(b model.Badge, sessions int64, minutes int) bool {
	switch b.CriteriaType {
	case model.CriteriaSessions:
		return sessions >= int64(b.Threshold)
	case model.CriteriaMinutes:
		return minutes >= b.Threshold
	}
	return false
}

// Evaluate awards every catalog badge the user now qualifies for and does
// not hold yet. Counts span all of the user's skills. It returns the names
// of newly awarded badges.
func (s *BadgeService) Evaluate(userID uint) ([]string, error) {
	sessions, minutes, err := s.SessionRepo.UserStats(userID)
	if err != nil {
		return nil, fmt.Errorf("badge stats: %w", err)
	}
	catalog, err := s.BadgeRepo.Catalog()
	if err != nil {
		return nil, err
	}
	earned, err := s.BadgeRepo.EarnedIDs(userID)
	if err != nil {
		return nil, err
	}

	awarded := []string{}
	for _, b := range catalog {
		if earned[b.ID] || !qualifies(b, sessions, minutes) {
			continue
		}
		ok, err := s.BadgeRepo.Award(&model.UserBadge{
			UserID:   userID,
			BadgeID:  b.ID,
			EarnedAt: s.Now(),
		})
		if err != nil {
			return awarded, fmt.Errorf("award %s: %w", b.Name, err)
		}
		if ok {
			awarded = append(awarded, b.Name)
			monitoring.BadgesAwarded.WithLabelValues(b.Name).Inc()
			logger.Log.Info("badge awarded", zap.Uint("user_id", userID), zap.String("badge", b.Name))
		}
	}
	return awarded, nil
}

func (s *BadgeService) UserBadges(userID uint) ([]model.UserBadge, error) {
	return s.BadgeRepo.FindByUserID(userID)
}
