package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("incorrect email or password")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillCompleted      = errors.New("skill already completed")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidDailyMinutes = errors.New("daily minutes must be positive")
	ErrInvalidShift        = errors.New("shift days must be between 1 and 365")
	ErrNoFreezesLeft       = errors.New("no streak freezes left")
	ErrAlreadyFrozen       = errors.New("day already frozen")
)
