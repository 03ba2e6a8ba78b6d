package controller

import (
	"first20_backend/internal/service"
	"first20_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	BadgeService     *service.BadgeService
}

func NewDashboardController(dashboardService *service.DashboardService, badgeService *service.BadgeService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService, BadgeService: badgeService}
}

// @Summary 获取仪表盘数据
// @Description 当前计划、进度、连续天数与徽章；不指定 skill_id 时取最近的进行中技能
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Param skill_id query int false "技能ID"
// @Success 200 {object} service.Dashboard
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var skillID *uint
	if raw := ctx.Query("skill_id"); raw != "" {
		id := util.MustParseUint(raw)
		if id == 0 {
			util.BadRequest(ctx, "invalid skill_id")
			return
		}
		skillID = &id
	}

	dashboard, err := c.DashboardService.Get(ctx.Request.Context(), userID, skillID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if !dashboard.HasActiveSkill {
		util.Success(ctx, gin.H{"has_active_skill": false})
		return
	}
	util.Success(ctx, dashboard)
}

// @Summary 我的徽章
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.UserBadge
// @Router /badges [get]
func (c *DashboardController) GetBadges(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	badges, err := c.BadgeService.UserBadges(userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}
