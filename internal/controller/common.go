package controller

import (
	"errors"
	"net/http"

	"classhub_backend/internal/model"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser 读取中间件注入的身份信息
func currentUser(ctx *gin.Context) (uint, model.UserRole) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return 0, ""
	}
	return claims.UserID, claims.Role
}

// handleServiceError 将 service 层错误映射为 HTTP 响应
func handleServiceError(ctx *gin.Context, err error) {
	var exhausted *util.AttemptsExhaustedError
	switch {
	case errors.As(err, &exhausted):
		util.ErrorWithData(ctx, http.StatusBadRequest, exhausted.Error(), gin.H{
			"attemptsUsed": exhausted.AttemptsUsed,
			"maxAttempts":  exhausted.MaxAttempts,
		})
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrClassNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrAssignmentNotFound),
		errors.Is(err, util.ErrProblemNotFound),
		errors.Is(err, util.ErrProblemHidden),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrEventNotFound),
		errors.Is(err, util.ErrFileNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, http.StatusConflict, "该邮箱已被注册")
	case errors.Is(err, util.ErrCannotDeleteSelf):
		util.BadRequest(ctx, "不能删除自己的账号")
	case errors.Is(err, util.ErrNotTeacher):
		util.BadRequest(ctx, "所选用户不是教师")
	default:
		util.LogInternalError(ctx, err)
	}
}
