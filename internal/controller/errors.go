package controller

import (
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层的哨兵错误映射为 HTTP 状态码
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnauthenticated):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrCaseNotFound),
		errors.Is(err, util.ErrProfileNotFound),
		errors.Is(err, util.ErrStatsNotFound),
		errors.Is(err, util.ErrAchievementUnknown):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrAlreadyAwarded):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrEmptyResponse),
		errors.Is(err, util.ErrCaseInactive),
		errors.Is(err, util.ErrInvalidDifficulty),
		errors.Is(err, util.ErrMissingCaseFields),
		errors.Is(err, util.ErrInvalidPeriod),
		errors.Is(err, util.ErrUnsupportedFile),
		errors.Is(err, util.ErrDisplayNameEmpty):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// openUpload 打开表单中的文件，调用方负责关闭
func openUpload(fh *multipart.FileHeader) (*service.FileUpload, func() error, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}, f.Close, nil
}
