package controller

import (
	"first20_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary 欢迎信息
// @Tags 系统
// @Produce json
// @Success 200 {object} object
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Welcome to First 20 Hours API"})
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Envelope(ctx, http.StatusServiceUnavailable, "Database unavailable", nil)
		return
	}

	util.Envelope(ctx, http.StatusOK, "success", gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
		},
	})
}
