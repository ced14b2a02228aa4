package controller

import (
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService      *service.DashboardService
	DailyChallengeService *service.DailyChallengeService
	RecommendationService *service.RecommendationService
}

func NewDashboardController(
	dashboardService *service.DashboardService,
	dailyChallengeService *service.DailyChallengeService,
	recommendationService *service.RecommendationService,
) *DashboardController {
	return &DashboardController{
		DashboardService:      dashboardService,
		DailyChallengeService: dailyChallengeService,
		RecommendationService: recommendationService,
	}
}

// @Summary 获取仪表盘数据
// @Description 等级进度、每日挑战、推荐案例、成就与可继续的案例
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.DashboardService.GetUserDashboard(ctx.Request.Context(), sess.UserID, sess.DisplayName()))
}

// @Summary 今日挑战
// @Description 当天没有挑战时即时生成，附带完成状态和重置倒计时
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DailyChallengeView}
// @Router /api/daily-challenge [get]
func (c *DashboardController) GetDailyChallenge(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.DailyChallengeService.View(ctx.Request.Context(), sess.UserID))
}

// @Summary 推荐案例
// @Description 根据历史平均分推荐未做过的案例
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param limit query int false "数量" default(4)
// @Success 200 {object} util.Response{data=[]model.Case}
// @Router /api/recommendations [get]
func (c *DashboardController) GetRecommendations(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := util.ClampLimit(util.IntOrDefault(ctx.Query("limit"), service.DefaultRecommendationLimit), service.DefaultRecommendationLimit, 20)
	util.Success(ctx, c.RecommendationService.Recommend(ctx.Request.Context(), sess.UserID, limit))
}
