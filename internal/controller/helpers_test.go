package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"caseforge_backend/internal/config"
	"caseforge_backend/internal/middleware"
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/repository"
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/session"
	"caseforge_backend/internal/testutil"
	"caseforge_backend/internal/util"
	"caseforge_backend/internal/view"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	headerUser  = "X-Test-User"
	headerAdmin = "X-Test-Admin"
)

type env struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *service.AuthService
}

// fakeSession 用请求头模拟登录状态
func fakeSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(headerUser); id != "" {
			util.SetSession(c, &session.Session{
				UserID:   id,
				Email:    id + "@example.com",
				Metadata: model.UserMetadata{FullName: "Ada Lovelace"},
				IsAdmin:  c.GetHeader(headerAdmin) == "1",
			})
		}
		c.Next()
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	cfg := &config.Config{
		Server:  config.ServerConfig{BaseURL: "http://localhost:8080"},
		JWT:     config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour, CookieName: "caseforge_session"},
		OAuth:   config.OAuthConfig{GoogleClientID: "cid", GoogleClientSecret: "secret", RedirectPath: "/auth/google/callback"},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		DailyChallenge: config.DailyChallengeConfig{
			LazySelection:      "latest",
			ScheduledSelection: "random",
		},
	}

	cases := repository.NewCaseRepository(db)
	submissions := repository.NewSubmissionRepository(db)
	stats := repository.NewStatsRepository(db)
	profiles := repository.NewProfileRepository(db)
	streaks := repository.NewStreakRepository(db)
	progress := repository.NewCaseProgressRepository(db)

	storage := service.NewStorageService(cfg)
	leaderboard := service.NewLeaderboardService(stats, nil)
	achievements := service.NewAchievementService(repository.NewAchievementRepository(db))
	caseSvc := service.NewCaseService(cases, storage)
	submissionSvc := service.NewSubmissionService(cases, submissions, stats, streaks, progress, leaderboard)
	daily := service.NewDailyChallengeService(repository.NewDailyChallengeRepository(db), cases, streaks, &cfg.DailyChallenge)
	recommendations := service.NewRecommendationService(cases, submissions)
	profileSvc := service.NewProfileService(profiles, stats, submissions, achievements, storage)
	dashboard := service.NewDashboardService(profileSvc, daily, recommendations, achievements, progress)
	analytics := service.NewAnalyticsService(submissions)
	auth := service.NewAuthService(repository.NewUserRepository(db), nil, cfg)

	caseCtl := NewCaseController(caseSvc, submissionSvc)
	dashCtl := NewDashboardController(dashboard, daily, recommendations)
	achievementCtl := NewAchievementController(achievements, leaderboard)
	profileCtl := NewProfileController(profileSvc)
	adminCtl := NewAdminController(caseSvc)
	authCtl := NewAuthController(auth, cfg.JWT)
	pages := NewPageController(caseSvc, submissionSvc, dashboard, leaderboard, profileSvc, analytics)

	r := gin.New()
	r.SetHTMLTemplate(view.MustTemplates())
	r.Use(fakeSession())

	r.GET("/api/health", NewHealthController(db, nil).HealthCheck)
	r.GET("/auth/google/login", authCtl.GoogleLogin)
	r.GET("/auth/google/callback", authCtl.GoogleCallback)

	api := r.Group("/api", middleware.RequireAuth())
	api.GET("/auth/session", authCtl.CurrentSession)
	api.GET("/cases", caseCtl.ListCases)
	api.GET("/cases/:id", caseCtl.GetCase)
	api.POST("/cases/:id/start", caseCtl.StartCase)
	api.PUT("/cases/:id/draft", caseCtl.SaveDraft)
	api.POST("/submissions", caseCtl.Submit)
	api.GET("/dashboard", dashCtl.GetDashboard)
	api.GET("/recommendations", dashCtl.GetRecommendations)
	api.GET("/achievements", achievementCtl.GetAchievements)
	api.GET("/leaderboard", achievementCtl.GetLeaderboard)
	api.GET("/profile", profileCtl.GetProfile)
	api.PUT("/profile", profileCtl.UpdateProfile)
	api.POST("/profile/avatar", profileCtl.UploadAvatar)
	api.GET("/analytics", NewAnalyticsController(analytics).GetOverview)
	api.POST("/admin/cases", middleware.RequireAdmin(), adminCtl.CreateCase)

	r.GET("/admin/login", pages.AdminLogin)
	guarded := r.Group("/", middleware.GuardPage())
	guarded.GET("/dashboard", pages.Dashboard)
	guarded.GET("/cases", pages.Cases)
	guarded.GET("/cases/start/:id", pages.StartCase)
	guarded.POST("/cases/start/:id", pages.SubmitCase)
	guarded.POST("/profile", pages.UpdateProfile)
	admin := r.Group("/admin", middleware.GuardAdminPage())
	admin.GET("/panel", pages.AdminPanel)
	admin.POST("/panel", pages.AdminCreateCase)

	return &env{db: db, router: r, auth: auth}
}

func (e *env) seedCase(t *testing.T, title, domain string, difficulty int) model.Case {
	t.Helper()
	c := model.Case{
		Title:              title,
		Slug:               strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Domain:             domain,
		Brief:              "brief",
		EvaluationCriteria: "criteria",
		Difficulty:         difficulty,
		IsActive:           true,
	}
	if err := e.db.Create(&c).Error; err != nil {
		t.Fatalf("seed case: %v", err)
	}
	return c
}

func (e *env) do(req *http.Request, userID string, admin bool) *httptest.ResponseRecorder {
	if userID != "" {
		req.Header.Set(headerUser, userID)
	}
	if admin {
		req.Header.Set(headerAdmin, "1")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest files 的键为字段名，值为文件名
func multipartRequest(t *testing.T, target string, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	for field, name := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte("content"))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}
