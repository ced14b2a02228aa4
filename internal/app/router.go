package app

import (
	"caseforge_backend/docs"
	"caseforge_backend/internal/middleware"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/monitoring"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 登录回调与公共接口
	a.registerPublicRoutes(router, c)

	// 2. 页面
	a.registerPageRoutes(router, c)

	// 3. 需要登录的 JSON 接口
	authGroup := router.Group("/api")
	authGroup.Use(middleware.RequireAuth())
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 4. 管理员接口
	a.registerAdminRoutes(router, c)

	// 接口返回 JSON，页面回到首页
	router.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			util.NotFound(ctx)
			return
		}
		ctx.Redirect(http.StatusFound, "/")
	})
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	auth := router.Group("/auth")
	{
		auth.GET("/google/login", c.auth.GoogleLogin)
		auth.GET("/google/callback", c.auth.GoogleCallback)
		auth.POST("/logout", c.auth.Logout)
	}
}

func (a *App) registerPageRoutes(router *gin.Engine, c *controllers) {
	router.GET("/", middleware.RootRedirect)
	router.GET("/landing", c.page.Landing)
	router.GET("/login", middleware.RedirectIfSignedIn(), c.page.Login)
	router.GET("/admin/login", c.page.AdminLogin)

	pages := router.Group("/")
	pages.Use(middleware.GuardPage())
	{
		pages.GET("/dashboard", c.page.Dashboard)
		pages.GET("/cases", c.page.Cases)
		pages.GET("/cases/start/:id", c.page.StartCase)
		pages.POST("/cases/start/:id", c.page.SubmitCase)
		pages.GET("/leaderboard", c.page.Leaderboard)
		pages.GET("/profile", c.page.Profile)
		pages.POST("/profile", c.page.UpdateProfile)
		pages.GET("/analytics", c.page.Analytics)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.GuardAdminPage())
	{
		admin.GET("/panel", c.page.AdminPanel)
		admin.POST("/panel", c.page.AdminCreateCase)
	}
}

func (a *App) registerUserRoutes(r *gin.RouterGroup, c *controllers) {
	r.GET("/auth/session", c.auth.CurrentSession)

	cases := r.Group("/cases")
	{
		cases.GET("", c.cases.ListCases)
		cases.GET("/domains", c.cases.ListDomains)
		cases.GET("/:id", c.cases.GetCase)
		cases.POST("/:id/start", c.cases.StartCase)
		cases.PUT("/:id/draft", c.cases.SaveDraft)
	}
	r.POST("/submissions", c.cases.Submit)

	r.GET("/dashboard", c.dashboard.GetDashboard)
	r.GET("/daily-challenge", c.dashboard.GetDailyChallenge)
	r.GET("/recommendations", c.dashboard.GetRecommendations)

	r.GET("/achievements", c.achievement.GetAchievements)
	r.GET("/leaderboard", c.achievement.GetLeaderboard)

	profile := r.Group("/profile")
	{
		profile.GET("", c.profile.GetProfile)
		profile.PUT("", c.profile.UpdateProfile)
		profile.POST("/avatar", c.profile.UploadAvatar)
	}

	r.GET("/analytics", c.analytics.GetOverview)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.POST("/cases", c.admin.CreateCase)
	}
}
