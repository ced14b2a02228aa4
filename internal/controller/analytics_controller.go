package controller

import (
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 学习分析
// @Description 统计区间内的作答数、平均分、领域分布、每周进度以及强弱项
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param period query string false "统计区间" Enums(week, month, year) default(month)
// @Success 200 {object} util.Response{data=service.AnalyticsOverview}
// @Failure 400 {object} util.Response
// @Router /api/analytics [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.AnalyticsService.Overview(ctx.Request.Context(), sess.UserID, ctx.Query("period"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
