package controller

import (
	"errors"
	"first20_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto HTTP status codes; anything unknown is
// logged and reported as 500.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSkillNotFound),
		errors.Is(err, util.ErrPlanNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrSkillCompleted),
		errors.Is(err, util.ErrNoFreezesLeft),
		errors.Is(err, util.ErrAlreadyFrozen):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrInvalidDailyMinutes),
		errors.Is(err, util.ErrInvalidShift):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// pathID reads a numeric path parameter, writing 400 when it is malformed.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return user.UserID, true
}
