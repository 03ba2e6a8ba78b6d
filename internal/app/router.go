package app

import (
	"first20_backend/docs"
	"first20_backend/internal/config"
	"first20_backend/internal/middleware"
	"first20_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/", c.health.Root)
	router.GET("/health", c.health.HealthCheck)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", c.auth.Signup)
		auth.POST("/token", c.auth.Token)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.ActivityMiddleware(repos.user, lastSeenInterval))
	{
		authGroup.GET("/auth/me", c.auth.Me)
		authGroup.GET("/dashboard", c.dashboard.GetDashboard)
		authGroup.GET("/badges", c.dashboard.GetBadges)

		a.registerSkillRoutes(authGroup, c)

		authGroup.POST("/sessions", c.session.LogSession)
		authGroup.POST("/reflections", c.session.AddReflection)
		authGroup.POST("/plans/:id/resources", c.skill.AddResource)
	}
}

func (a *App) registerSkillRoutes(rg *gin.RouterGroup, c *controllers) {
	skills := rg.Group("/skills")
	{
		skills.POST("", c.skill.CreateSkill)
		skills.GET("", c.skill.ListSkills)
		skills.GET("/active", c.skill.ActiveSkill)
		skills.DELETE("/:id", c.skill.DeleteSkill)
		skills.POST("/:id/start", c.skill.StartSkill)
		skills.POST("/:id/shift", c.skill.ShiftSchedule)
		skills.GET("/:id/plans", c.skill.ListPlans)
		skills.GET("/:id/sessions", c.session.ListSessions)

		// 日历、冻结与导出
		skills.GET("/:id/calendar", c.schedule.DownloadCalendar)
		skills.POST("/:id/calendar/publish", c.schedule.PublishCalendar)
		skills.POST("/:id/freeze", c.schedule.FreezeDay)
		skills.GET("/:id/export", c.schedule.ExportProgress)
	}
}
