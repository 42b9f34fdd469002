package controller

import (
	"errors"

	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary 注册新用户
// @Description 注册学生或教师账号并返回登录令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterInput true "注册信息"
// @Success 201 {object} util.Response{data=service.AuthResult} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var input service.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Register(input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// Login godoc
// @Summary 用户登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.LoginInput true "登录凭据"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var input service.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(input)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Error(ctx, 401, "邮箱或密码错误")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Profile godoc
// @Summary 获取当前用户信息（含学习统计）
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Router /api/auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	userID, _ := currentUser(ctx)
	user, err := c.AuthService.GetProfile(userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// Verify godoc
// @Summary 校验当前 Token 是否有效
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/verify [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, gin.H{
		"userId": claims.UserID,
		"role":   claims.Role,
		"email":  claims.Email,
	})
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Tags 认证
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.UpdateProfileInput true "资料字段"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/auth/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var input service.UpdateProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, _ := currentUser(ctx)
	user, err := c.AuthService.UpdateProfile(userID, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ChangePassword godoc
// @Summary 修改密码
// @Tags 认证
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ChangePasswordInput true "新旧密码"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "旧密码错误"
// @Router /api/auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var input service.ChangePasswordInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, _ := currentUser(ctx)
	if err := c.AuthService.ChangePassword(userID, input); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "密码已更新"})
}
