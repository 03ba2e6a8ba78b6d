package app

import (
	"context"
	"errors"
	"first20_backend/internal/config"
	"first20_backend/internal/controller"
	"first20_backend/internal/jobs"
	"first20_backend/internal/repository"
	"first20_backend/internal/service"
	"first20_backend/pkg/configwatcher"
	"first20_backend/pkg/database"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"first20_backend/pkg/security"
	"first20_backend/pkg/tracing"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	shutdownTimeout  = 5 * time.Second
	lastSeenInterval = time.Minute
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Scheduler *jobs.Scheduler

	repos           *repositories
	services        *services
	cors            *security.CORSPolicy
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	skill      *repository.SkillRepository
	plan       *repository.PlanRepository
	session    *repository.SessionRepository
	reflection *repository.ReflectionRepository
	badge      *repository.BadgeRepository
	freeze     *repository.FreezeRepository
}

type services struct {
	auth      *service.AuthService
	skill     *service.SkillService
	plan      *service.PlanService
	session   *service.SessionService
	badge     *service.BadgeService
	freeze    *service.FreezeService
	dashboard *service.DashboardService
	calendar  *service.CalendarService
	export    *service.ExportService
	storage   *service.StorageService
}

type controllers struct {
	health    *controller.HealthController
	auth      *controller.AuthController
	skill     *controller.SkillController
	session   *controller.SessionController
	dashboard *controller.DashboardController
	schedule  *controller.ScheduleController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		skill:      repository.NewSkillRepository(db),
		plan:       repository.NewPlanRepository(db),
		session:    repository.NewSessionRepository(db),
		reflection: repository.NewReflectionRepository(db),
		badge:      repository.NewBadgeRepository(db),
		freeze:     repository.NewFreezeRepository(db),
	}
}

func initServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client, repos *repositories) *services {
	target := cfg.Program.TargetMinutes
	cache := service.NewDashboardCache(rdb, time.Duration(cfg.Redis.DashboardTTLSeconds)*time.Second)

	s := &services{}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.badge = service.NewBadgeService(repos.badge, repos.session)
	s.skill = service.NewSkillService(db, repos.skill, repos.plan, repos.session, cache, target)
	s.plan = service.NewPlanService(db, repos.skill, repos.plan, repos.session, cache)
	s.session = service.NewSessionService(db, repos.skill, repos.session, repos.reflection, s.badge, cache, target)
	s.freeze = service.NewFreezeService(db, repos.user, repos.skill, repos.session, repos.freeze, cache)
	s.dashboard = service.NewDashboardService(repos.user, repos.skill, repos.plan, repos.session, s.badge, s.freeze, cache, target)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.calendar = service.NewCalendarService(repos.skill, repos.plan, s.storage)
	s.export = service.NewExportService(repos.skill, repos.plan, repos.session, target)
	return s
}

func initControllers(db *gorm.DB, s *services) *controllers {
	return &controllers{
		health:    controller.NewHealthController(db),
		auth:      controller.NewAuthController(s.auth),
		skill:     controller.NewSkillController(s.skill, s.plan),
		session:   controller.NewSessionController(s.session),
		dashboard: controller.NewDashboardController(s.dashboard, s.badge),
		schedule:  controller.NewScheduleController(s.calendar, s.freeze, s.export),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(a.cors.Middleware())
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires an App around an already opened database. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	if cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		cors:   security.NewCORSPolicy(cfg.CORS.AllowedOrigins),
	}

	app.repos = initRepositories(db)
	app.services = initServices(cfg, db, rdb, app.repos)
	controllers := initControllers(db, app.services)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, app.repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.cors.SetOrigins(newCfg.CORS.AllowedOrigins)
	})

	app.Scheduler = jobs.New(app.services.freeze)
	return app
}

// NewApp opens the logger, database, redis and tracer from cfg.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	// release 模式下默认不自动迁移
	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	return app, nil
}

func (a *App) reload(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run(configFile string) error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.Config.Jobs.Enabled {
		if err := a.Scheduler.Start(a.Config.Jobs.FreezeCron); err != nil {
			return err
		}
	}

	go func() {
		if err := configwatcher.WatchConfig(ctx, configFile, a.reload); err != nil {
			logger.Log.Warn("config watcher disabled", zap.Error(err))
		}
	}()

	serveErr := make(chan error, 1)
	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		a.Close()
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

// Close stops background jobs and releases the database, redis and tracer.
func (a *App) Close() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = logger.Log.Sync()
}
