package controller

import (
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminController struct {
	CaseService *service.CaseService
}

func NewAdminController(caseService *service.CaseService) *AdminController {
	return &AdminController{CaseService: caseService}
}

// bindCaseForm 读取上传表单，附件可选
func bindCaseForm(ctx *gin.Context) (*service.CreateCaseRequest, *service.FileUpload, func() error, error) {
	var req service.CreateCaseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return nil, nil, nil, err
	}
	// 表单里留空的预计用时会被绑定成 0
	if req.EstimatedTime != nil && *req.EstimatedTime <= 0 {
		req.EstimatedTime = nil
	}

	fh, err := ctx.FormFile("exhibit")
	if errors.Is(err, http.ErrMissingFile) {
		return &req, nil, func() error { return nil }, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}

	upload, closeFn, err := openUpload(fh)
	if err != nil {
		return nil, nil, nil, err
	}
	return &req, upload, closeFn, nil
}

// @Summary 上传案例
// @Description 仅管理员可用。标题、领域、简介、评估标准和难度必填
// @Tags 管理
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param domain formData string true "领域"
// @Param brief formData string true "案例简介"
// @Param evaluation_criteria formData string true "评估标准"
// @Param difficulty formData int true "难度 1-3"
// @Param estimated_time formData int false "预计用时（分钟）"
// @Param tags formData string false "标签，逗号分隔"
// @Param exhibit formData file false "附件"
// @Success 201 {object} util.Response{data=model.Case}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/cases [post]
func (c *AdminController) CreateCase(ctx *gin.Context) {
	req, exhibit, closeFn, err := bindCaseForm(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	defer closeFn()

	created, err := c.CaseService.CreateCase(ctx.Request.Context(), req, exhibit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	logger.Log.Info("Case created",
		zap.String("case_id", created.ID),
		zap.String("slug", created.Slug),
		zap.String("admin", util.GetSession(ctx).Email))
	util.Created(ctx, created)
}
