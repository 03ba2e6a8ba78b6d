package controller

import (
	"first20_backend/internal/model"
	"first20_backend/internal/service"
	"first20_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

type LogSessionRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"required,min=1,max=1440"`
}

type ReflectionRequest struct {
	SessionID   uint   `json:"session_id" binding:"required"`
	Content     string `json:"content"`
	Difficulty  string `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	KeyTakeaway string `json:"key_takeaway" binding:"max=500"`
}

// LogSession godoc
// @Summary 记录一次专注练习
// @Description 写入后评估徽章，累计达到目标时技能标记为完成
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param skill_id query int true "技能ID"
// @Param body body LogSessionRequest true "时长"
// @Success 201 {object} service.LogResult
// @Failure 404 {object} util.ErrorResponse
// @Router /sessions [post]
func (c *SessionController) LogSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID := util.MustParseUint(ctx.Query("skill_id"))
	if skillID == 0 {
		util.BadRequest(ctx, "skill_id is required")
		return
	}

	var req LogSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SessionService.Log(ctx.Request.Context(), userID, skillID, req.DurationMinutes)
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListSessions godoc
// @Summary 技能的练习记录
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {array} model.Session
// @Router /skills/{id}/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	sessions, err := c.SessionService.List(userID, skillID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// AddReflection godoc
// @Summary 提交练习反思
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body ReflectionRequest true "反思内容"
// @Success 201 {object} model.Reflection
// @Failure 404 {object} util.ErrorResponse "会话不存在"
// @Router /reflections [post]
func (c *SessionController) AddReflection(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req ReflectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reflection, err := c.SessionService.AddReflection(userID, service.ReflectionInput{
		SessionID:   req.SessionID,
		Content:     req.Content,
		Difficulty:  model.Difficulty(req.Difficulty),
		KeyTakeaway: req.KeyTakeaway,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Created(ctx, reflection)
}
