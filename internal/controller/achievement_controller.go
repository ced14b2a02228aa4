package controller

import (
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
	LeaderboardService *service.LeaderboardService
}

func NewAchievementController(achievementService *service.AchievementService, leaderboardService *service.LeaderboardService) *AchievementController {
	return &AchievementController{
		AchievementService: achievementService,
		LeaderboardService: leaderboardService,
	}
}

// @Summary 成就墙
// @Description 全部成就及当前用户的获得状态
// @Tags 成就
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.AchievementBadge}
// @Router /api/achievements [get]
func (c *AchievementController) GetAchievements(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.AchievementService.Badges(ctx.Request.Context(), sess.UserID))
}

// @Summary 排行榜
// @Description 按总分排序，排名从 1 开始
// @Tags 成就
// @Produce json
// @Param limit query int false "数量，最大100" default(50)
// @Success 200 {object} util.Response{data=[]model.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (c *AchievementController) GetLeaderboard(ctx *gin.Context) {
	limit := util.IntOrDefault(ctx.Query("limit"), service.DefaultLeaderboardLimit)
	util.Success(ctx, c.LeaderboardService.Top(ctx.Request.Context(), limit))
}
