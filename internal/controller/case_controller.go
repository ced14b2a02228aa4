package controller

import (
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type CaseController struct {
	CaseService       *service.CaseService
	SubmissionService *service.SubmissionService
}

func NewCaseController(caseService *service.CaseService, submissionService *service.SubmissionService) *CaseController {
	return &CaseController{
		CaseService:       caseService,
		SubmissionService: submissionService,
	}
}

// caseQuery 从查询参数读取筛选条件，tags 支持逗号分隔或重复参数
func caseQuery(ctx *gin.Context) service.CaseQuery {
	var tags []string
	for _, raw := range ctx.QueryArray("tags") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	difficulty, _ := strconv.Atoi(ctx.Query("difficulty"))
	domain := ctx.Query("domain")
	if domain == "all" {
		domain = ""
	}
	return service.CaseQuery{
		Domain:     domain,
		Difficulty: difficulty,
		Tags:       tags,
		Search:     ctx.Query("search"),
	}
}

// @Summary 案例列表
// @Description 按领域、难度、标签和关键字筛选启用的案例
// @Tags 案例
// @Produce json
// @Security BearerAuth
// @Param domain query string false "领域，all 表示不限"
// @Param difficulty query int false "难度 1-3"
// @Param tags query string false "标签，逗号分隔，需全部命中"
// @Param search query string false "关键字"
// @Success 200 {object} util.Response{data=[]model.Case}
// @Router /api/cases [get]
func (c *CaseController) ListCases(ctx *gin.Context) {
	util.Success(ctx, c.CaseService.ListCases(ctx.Request.Context(), caseQuery(ctx)))
}

// @Summary 领域列表
// @Description 用于筛选下拉框
// @Tags 案例
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/cases/domains [get]
func (c *CaseController) ListDomains(ctx *gin.Context) {
	util.Success(ctx, c.CaseService.Domains(ctx.Request.Context()))
}

// @Summary 案例详情
// @Tags 案例
// @Produce json
// @Security BearerAuth
// @Param id path string true "案例ID或slug"
// @Success 200 {object} util.Response{data=model.Case}
// @Failure 404 {object} util.Response
// @Router /api/cases/{id} [get]
func (c *CaseController) GetCase(ctx *gin.Context) {
	cs, err := c.CaseService.GetCase(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, cs)
}

// @Summary 开始作答
// @Description 记录开始时间，已有进度时返回草稿
// @Tags 案例
// @Produce json
// @Security BearerAuth
// @Param id path string true "案例ID"
// @Success 200 {object} util.Response{data=service.CaseAttempt}
// @Router /api/cases/{id}/start [post]
func (c *CaseController) StartCase(ctx *gin.Context) {
	attempt, err := c.SubmissionService.StartCase(ctx.Request.Context(), util.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

type draftRequest struct {
	Draft string `json:"draft"`
}

// @Summary 保存草稿
// @Tags 案例
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "案例ID"
// @Param request body draftRequest true "草稿内容"
// @Success 200 {object} util.Response
// @Router /api/cases/{id}/draft [put]
func (c *CaseController) SaveDraft(ctx *gin.Context) {
	var req draftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SubmissionService.SaveDraft(ctx.Request.Context(), util.GetSession(ctx), ctx.Param("id"), req.Draft); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 提交作答
// @Description 写入提交记录、更新统计与连续打卡。中途失败时已写入的部分不会回滚
// @Tags 案例
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SubmitRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response{data=service.SubmitResult}
// @Router /api/submissions [post]
func (c *CaseController) Submit(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubmissionService.Submit(ctx.Request.Context(), util.GetSession(ctx), &req)
	if err != nil {
		var stepErr *service.StepError
		if errors.As(err, &stepErr) {
			ctx.JSON(http.StatusInternalServerError, util.Response{
				Code:    http.StatusInternalServerError,
				Message: result.Message,
				Data:    result,
			})
			return
		}
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
