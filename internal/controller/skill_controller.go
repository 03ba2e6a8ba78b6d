package controller

import (
	"first20_backend/internal/model"
	"first20_backend/internal/service"
	"first20_backend/internal/util"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
	PlanService  *service.PlanService
}

func NewSkillController(skillService *service.SkillService, planService *service.PlanService) *SkillController {
	return &SkillController{SkillService: skillService, PlanService: planService}
}

type CreateSkillRequest struct {
	Name             string `json:"name" binding:"required,max=200"`
	TargetDefinition string `json:"target_definition" binding:"max=500"`
	DailyMinutes     int    `json:"daily_minutes" binding:"required,min=1,max=1200"`
	Status           string `json:"status" binding:"omitempty,oneof=active future"`
}

// CreateSkill godoc
// @Summary 创建技能
// @Description 状态为 active 时同时生成并排期学习计划
// @Tags 技能
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateSkillRequest true "技能信息"
// @Success 201 {object} model.Skill
// @Failure 400 {object} util.ErrorResponse
// @Router /skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.Create(ctx.Request.Context(), userID, service.CreateSkillInput{
		Name:             req.Name,
		TargetDefinition: req.TargetDefinition,
		DailyMinutes:     req.DailyMinutes,
		Status:           model.SkillStatus(req.Status),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	util.Created(ctx, skill)
}

// ListSkills godoc
// @Summary 技能列表
// @Description 按状态分组，附带进度
// @Tags 技能
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} service.SkillGroups
// @Router /skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	groups, err := c.SkillService.List(userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// ActiveSkill godoc
// @Summary 当前进行中的技能
// @Tags 技能
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} model.Skill
// @Router /skills/active [get]
func (c *SkillController) ActiveSkill(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	skill, err := c.SkillService.Active(userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if skill == nil {
		// 客户端以 null 判断没有进行中的技能
		ctx.JSON(http.StatusOK, nil)
		return
	}
	util.Success(ctx, skill)
}

// StartSkill godoc
// @Summary 开始一个未来技能
// @Tags 技能
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} model.Skill
// @Failure 404 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse "技能已完成"
// @Router /skills/{id}/start [post]
func (c *SkillController) StartSkill(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	skill, err := c.SkillService.Start(ctx.Request.Context(), userID, skillID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

// ShiftSchedule godoc
// @Summary 顺延剩余计划
// @Tags 技能
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Param days query int false "顺延天数 (1-365)" default(1)
// @Success 200 {object} object
// @Failure 400 {object} util.ErrorResponse
// @Router /skills/{id}/shift [post]
func (c *SkillController) ShiftSchedule(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	days, err := strconv.Atoi(ctx.DefaultQuery("days", "1"))
	if err != nil {
		util.BadRequest(ctx, "days must be an integer")
		return
	}

	shifted, err := c.PlanService.Shift(ctx.Request.Context(), userID, skillID, days)
	if err != nil {
		writeError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message": fmt.Sprintf("Schedule shifted by %d days", days),
		"shifted": shifted,
	})
}

// ListPlans godoc
// @Summary 技能的每日计划
// @Tags 技能
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {array} model.DailyPlan
// @Router /skills/{id}/plans [get]
func (c *SkillController) ListPlans(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	plans, err := c.PlanService.List(userID, skillID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// DeleteSkill godoc
// @Summary 删除技能
// @Description 同时删除计划、会话、反思和冻结记录
// @Tags 技能
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} object
// @Failure 404 {object} util.ErrorResponse
// @Router /skills/{id} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.SkillService.Delete(ctx.Request.Context(), userID, skillID); err != nil {
		writeError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Skill deleted"})
}

type AddResourceRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	URL   string `json:"url" binding:"required,url"`
	Type  string `json:"type" binding:"omitempty,max=30"`
}

// AddResource godoc
// @Summary 为计划添加学习资源
// @Tags 计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "计划ID"
// @Param body body AddResourceRequest true "资源"
// @Success 200 {array} model.Resource
// @Failure 404 {object} util.ErrorResponse
// @Router /plans/{id}/resources [post]
func (c *SkillController) AddResource(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	planID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req AddResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resources, err := c.PlanService.AddResource(ctx.Request.Context(), userID, planID, model.Resource{
		Title: req.Title,
		URL:   req.URL,
		Type:  req.Type,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}
