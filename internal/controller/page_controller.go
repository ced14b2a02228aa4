package controller

import (
	"caseforge_backend/internal/middleware"
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const noticeAdminDenied = "admin_denied"

var notices = map[string]string{
	noticeAdminDenied: "You're not authorized to access the admin panel.",
	"profile_saved":   "Profile updated.",
}

// PageController 服务端渲染的页面，数据与 /api 接口共用同一套服务
type PageController struct {
	CaseService        *service.CaseService
	SubmissionService  *service.SubmissionService
	DashboardService   *service.DashboardService
	LeaderboardService *service.LeaderboardService
	ProfileService     *service.ProfileService
	AnalyticsService   *service.AnalyticsService
}

func NewPageController(
	caseService *service.CaseService,
	submissionService *service.SubmissionService,
	dashboardService *service.DashboardService,
	leaderboardService *service.LeaderboardService,
	profileService *service.ProfileService,
	analyticsService *service.AnalyticsService,
) *PageController {
	return &PageController{
		CaseService:        caseService,
		SubmissionService:  submissionService,
		DashboardService:   dashboardService,
		LeaderboardService: leaderboardService,
		ProfileService:     profileService,
		AnalyticsService:   analyticsService,
	}
}

func render(ctx *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if sess := util.GetSession(ctx); sess != nil {
		data["Session"] = sess
	}
	if _, ok := data["Notice"]; !ok {
		if msg, ok := notices[ctx.Query("notice")]; ok {
			data["Notice"] = msg
		}
	}
	ctx.HTML(status, name, data)
}

func (c *PageController) Landing(ctx *gin.Context) {
	render(ctx, http.StatusOK, "landing.html", "Welcome", nil)
}

func (c *PageController) Login(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", "Sign in", gin.H{"Next": safeNext(ctx.Query("next"))})
}

// AdminLogin 管理员已登录直接进入面板，普通用户退回仪表盘
func (c *PageController) AdminLogin(ctx *gin.Context) {
	if sess := util.GetSession(ctx); sess != nil {
		if sess.IsAdmin {
			ctx.Redirect(http.StatusFound, "/admin/panel")
			return
		}
		ctx.Redirect(http.StatusFound, middleware.DashboardPath+"?notice="+noticeAdminDenied)
		return
	}
	render(ctx, http.StatusOK, "admin_login.html", "Admin Login", nil)
}

func (c *PageController) Dashboard(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	dashboard := c.DashboardService.GetUserDashboard(ctx.Request.Context(), sess.UserID, sess.DisplayName())
	render(ctx, http.StatusOK, "dashboard.html", "Dashboard", gin.H{"Dashboard": dashboard})
}

func (c *PageController) Cases(ctx *gin.Context) {
	q := caseQuery(ctx)
	render(ctx, http.StatusOK, "cases.html", "Cases", gin.H{
		"Query":   q,
		"Cases":   c.CaseService.ListCases(ctx.Request.Context(), q),
		"Domains": c.CaseService.Domains(ctx.Request.Context()),
	})
}

// StartCase 作答页：载入案例并开始计时
func (c *PageController) StartCase(ctx *gin.Context) {
	attempt, err := c.SubmissionService.StartCase(ctx.Request.Context(), util.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		render(ctx, caseErrorStatus(err), "case_start.html", "Case", gin.H{"Error": caseErrorMessage(err)})
		return
	}
	render(ctx, http.StatusOK, "case_start.html", attempt.Case.Title, gin.H{
		"Attempt":  attempt,
		"Response": attempt.Draft,
	})
}

// SubmitCase 表单提交。成功后显示提示并在两秒后回到仪表盘，失败时保留作答内容
func (c *PageController) SubmitCase(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	req := &service.SubmitRequest{
		CaseID:   ctx.Param("id"),
		Response: ctx.PostForm("response"),
	}

	result, err := c.SubmissionService.Submit(ctx.Request.Context(), sess, req)
	if err == nil {
		render(ctx, http.StatusOK, "case_start.html", "Submitted", gin.H{
			"Notice":     "Submission successful! Your response has been recorded.",
			"RedirectTo": middleware.DashboardPath,
		})
		return
	}

	data := gin.H{"Response": req.Response}
	var stepErr *service.StepError
	status := http.StatusBadRequest
	if errors.As(err, &stepErr) {
		status = http.StatusInternalServerError
		data["Error"] = "Error submitting your response. Please try again."
	} else {
		data["Error"] = result.Message
	}

	attempt, startErr := c.SubmissionService.StartCase(ctx.Request.Context(), sess, req.CaseID)
	if startErr != nil {
		render(ctx, caseErrorStatus(startErr), "case_start.html", "Case", gin.H{"Error": caseErrorMessage(startErr)})
		return
	}
	data["Attempt"] = attempt
	render(ctx, status, "case_start.html", attempt.Case.Title, data)
}

func caseErrorStatus(err error) int {
	switch {
	case errors.Is(err, util.ErrCaseNotFound):
		return http.StatusNotFound
	case errors.Is(err, util.ErrCaseInactive):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func caseErrorMessage(err error) string {
	switch {
	case errors.Is(err, util.ErrCaseNotFound), errors.Is(err, util.ErrCaseInactive):
		return "Case not found or inactive."
	default:
		return "Failed to load the case. Please try again."
	}
}

func (c *PageController) Leaderboard(ctx *gin.Context) {
	render(ctx, http.StatusOK, "leaderboard.html", "Leaderboard", gin.H{
		"Entries": c.LeaderboardService.Top(ctx.Request.Context(), service.DefaultLeaderboardLimit),
	})
}

func (c *PageController) Profile(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	render(ctx, http.StatusOK, "profile.html", "Profile", gin.H{
		"View": c.ProfileService.View(ctx.Request.Context(), sess.UserID),
	})
}

func (c *PageController) UpdateProfile(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	req := &service.UpdateProfileRequest{
		DisplayName: ctx.PostForm("display_name"),
		Bio:         ctx.PostForm("bio"),
	}

	if _, err := c.ProfileService.Update(ctx.Request.Context(), sess.UserID, req); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, util.ErrDisplayNameEmpty) {
			status = http.StatusBadRequest
		}
		render(ctx, status, "profile.html", "Profile", gin.H{
			"Error": err.Error(),
			"View":  c.ProfileService.View(ctx.Request.Context(), sess.UserID),
		})
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/profile?notice=profile_saved")
}

func (c *PageController) Analytics(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	overview, err := c.AnalyticsService.Overview(ctx.Request.Context(), sess.UserID, ctx.Query("period"))
	if err != nil {
		render(ctx, http.StatusBadRequest, "analytics.html", "Analytics", gin.H{"Error": err.Error()})
		return
	}
	render(ctx, http.StatusOK, "analytics.html", "Analytics", gin.H{"Overview": overview})
}

func (c *PageController) AdminPanel(ctx *gin.Context) {
	render(ctx, http.StatusOK, "admin_panel.html", "Admin", gin.H{"Form": &service.CreateCaseRequest{}})
}

// AdminCreateCase 上传成功后清空表单，失败时保留已填写的内容
func (c *PageController) AdminCreateCase(ctx *gin.Context) {
	req, exhibit, closeFn, err := bindCaseForm(ctx)
	if err != nil {
		render(ctx, http.StatusBadRequest, "admin_panel.html", "Admin", gin.H{
			"Form":  &service.CreateCaseRequest{},
			"Error": util.ErrMissingCaseFields.Error(),
		})
		return
	}
	defer closeFn()

	if _, err := c.CaseService.CreateCase(ctx.Request.Context(), req, exhibit); err != nil {
		status := http.StatusInternalServerError
		msg := "Error: " + err.Error()
		if errors.Is(err, util.ErrMissingCaseFields) || errors.Is(err, util.ErrInvalidDifficulty) || errors.Is(err, util.ErrUnsupportedFile) {
			status = http.StatusBadRequest
			msg = err.Error()
		}
		render(ctx, status, "admin_panel.html", "Admin", gin.H{"Form": req, "Error": msg})
		return
	}

	render(ctx, http.StatusOK, "admin_panel.html", "Admin", gin.H{
		"Form":   &service.CreateCaseRequest{},
		"Notice": "Case uploaded successfully!",
	})
}
