package app

import (
	"caseforge_backend/internal/config"
	"caseforge_backend/internal/controller"
	"caseforge_backend/internal/middleware"
	"caseforge_backend/internal/repository"
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/session"
	"caseforge_backend/internal/view"
	"caseforge_backend/pkg/configwatcher"
	"caseforge_backend/pkg/database"
	"caseforge_backend/pkg/logger"
	"caseforge_backend/pkg/monitoring"
	"caseforge_backend/pkg/security"
	"caseforge_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfigDir 配置文件所在目录，热更新时从这里重新读取
const ConfigDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	rateLimiter     *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)

	// ctx 在关闭时取消，后台 goroutine 都挂在它上面
	ctx    context.Context
	cancel context.CancelFunc
}

type repositories struct {
	user           *repository.UserRepository
	profile        *repository.ProfileRepository
	stats          *repository.StatsRepository
	cases          *repository.CaseRepository
	submission     *repository.SubmissionRepository
	streak         *repository.StreakRepository
	dailyChallenge *repository.DailyChallengeRepository
	achievement    *repository.AchievementRepository
	caseProgress   *repository.CaseProgressRepository
}

type services struct {
	auth           *service.AuthService
	storage        *service.StorageService
	cases          *service.CaseService
	submission     *service.SubmissionService
	recommendation *service.RecommendationService
	dailyChallenge *service.DailyChallengeService
	achievement    *service.AchievementService
	leaderboard    *service.LeaderboardService
	profile        *service.ProfileService
	analytics      *service.AnalyticsService
	dashboard      *service.DashboardService
	onboarding     *service.OnboardingService
	scheduler      *service.Scheduler
	hub            *session.Hub
}

type controllers struct {
	auth        *controller.AuthController
	cases       *controller.CaseController
	dashboard   *controller.DashboardController
	achievement *controller.AchievementController
	profile     *controller.ProfileController
	analytics   *controller.AnalyticsController
	admin       *controller.AdminController
	page        *controller.PageController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		profile:        repository.NewProfileRepository(db),
		stats:          repository.NewStatsRepository(db),
		cases:          repository.NewCaseRepository(db),
		submission:     repository.NewSubmissionRepository(db),
		streak:         repository.NewStreakRepository(db),
		dailyChallenge: repository.NewDailyChallengeRepository(db),
		achievement:    repository.NewAchievementRepository(db),
		caseProgress:   repository.NewCaseProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	s.hub = session.NewHub(32)
	s.hub.OnDrop(func(e session.Event) {
		logger.Log.Warn("Session event dropped", zap.String("type", string(e.Type)), zap.String("user_id", e.Session.UserID))
	})

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, s.hub, cfg)
	s.cases = service.NewCaseService(repos.cases, s.storage)
	s.leaderboard = service.NewLeaderboardService(repos.stats, rdb)
	s.submission = service.NewSubmissionService(
		repos.cases,
		repos.submission,
		repos.stats,
		repos.streak,
		repos.caseProgress,
		s.leaderboard,
	)
	s.recommendation = service.NewRecommendationService(repos.cases, repos.submission)
	s.dailyChallenge = service.NewDailyChallengeService(repos.dailyChallenge, repos.cases, repos.streak, &cfg.DailyChallenge)
	s.achievement = service.NewAchievementService(repos.achievement)
	s.profile = service.NewProfileService(repos.profile, repos.stats, repos.submission, s.achievement, s.storage)
	s.analytics = service.NewAnalyticsService(repos.submission)
	s.dashboard = service.NewDashboardService(s.profile, s.dailyChallenge, s.recommendation, s.achievement, repos.caseProgress)
	s.onboarding = service.NewOnboardingService(repos.profile, repos.stats, s.achievement)
	s.auth.Onboarding = s.onboarding

	scheduler, err := service.NewScheduler(&cfg.DailyChallenge, s.dailyChallenge)
	if err != nil {
		return nil, err
	}
	s.scheduler = scheduler

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, a.Config.JWT),
		cases:       controller.NewCaseController(s.cases, s.submission),
		dashboard:   controller.NewDashboardController(s.dashboard, s.dailyChallenge, s.recommendation),
		achievement: controller.NewAchievementController(s.achievement, s.leaderboard),
		profile:     controller.NewProfileController(s.profile),
		analytics:   controller.NewAnalyticsController(s.analytics),
		admin:       controller.NewAdminController(s.cases),
		page: controller.NewPageController(
			s.cases,
			s.submission,
			s.dashboard,
			s.leaderboard,
			s.profile,
			s.analytics,
		),
		health: controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config, s *services) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.rateLimiter = security.NewRateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.LoadSession(s.auth, cfg.JWT.CookieName))
}

// startBackgroundTasks 会话事件订阅、每日挑战定时任务和配置热更新
func (a *App) startBackgroundTasks(s *services) {
	events, _ := s.hub.Subscribe()
	go s.onboarding.Run(events)

	s.scheduler.Start()

	a.RegisterConfigCallback(func(c *config.Config) {
		s.auth.SetAdminEmail(c.Admin.Email)
	})
	a.RegisterConfigCallback(func(c *config.Config) {
		logger.SetMode(c.Server.Mode)
	})
	a.RegisterConfigCallback(func(c *config.Config) {
		a.rateLimiter.Update(c.RateLimit.MaxRequests, time.Duration(c.RateLimit.WindowMinutes)*time.Minute)
	})

	configFile := filepath.Join(ConfigDir, "config.yaml")
	if _, err := os.Stat(configFile); err != nil {
		logger.Log.Info("Config file not found, hot reload disabled", zap.String("file", configFile))
		return
	}
	go func() {
		err := configwatcher.Watch(a.ctx, configFile, config.LoadConfig, func(c *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(c)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	debug := cfg.Server.Mode == "debug"
	db, err := database.InitDB(&cfg.Database, debug, cfg.ForceMigrate || debug)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		ctx:    ctx,
		cancel: cancel,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 排行榜缓存可选，连接失败时直接查库
		logger.Log.Warn("Failed to initialize redis, leaderboard cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	router.SetHTMLTemplate(view.MustTemplates())
	router.StaticFS("/static", view.Static())
	app.Router = router

	app.setupMiddlewares(router, cfg, services)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 停止后台任务并释放连接
func (a *App) Close(ctx context.Context) {
	a.cancel()

	if a.services != nil {
		if err := a.services.scheduler.Stop(); err != nil {
			logger.Log.Warn("Failed to stop scheduler", zap.Error(err))
		}
		a.services.hub.Close()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
