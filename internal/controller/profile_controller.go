package controller

import (
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// @Summary 个人资料
// @Description 资料、统计、等级进度、提交记录和已获得成就
// @Tags 个人
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.ProfileService.View(ctx.Request.Context(), sess.UserID))
}

// @Summary 更新个人资料
// @Tags 个人
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UpdateProfileRequest true "显示名称与简介"
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Failure 400 {object} util.Response
// @Router /api/profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.ProfileService.Update(ctx.Request.Context(), sess.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// @Summary 上传头像
// @Tags 个人
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "头像图片"
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Failure 400 {object} util.Response
// @Router /api/profile/avatar [post]
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	upload, closeFn, err := openUpload(fh)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer closeFn()

	profile, err := c.ProfileService.UploadAvatar(ctx.Request.Context(), sess.UserID, upload)
	if err != nil {
		respondError(ctx, err)
		return
	}

	logger.Log.Info("Avatar updated", zap.String("user_id", sess.UserID))
	util.Success(ctx, profile)
}
