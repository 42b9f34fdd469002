package controller

import (
	"strconv"

	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 平台管理端：用户运营与全局统计
type AdminController struct {
	UserService  *service.UserService
	ClassService *service.ClassService
}

func NewAdminController(userService *service.UserService, classService *service.ClassService) *AdminController {
	return &AdminController{UserService: userService, ClassService: classService}
}

// ListUsers godoc
// @Summary 用户列表
// @Tags 管理端
// @Produce  json
// @Security BearerAuth
// @Param   role   query string false "按角色过滤"
// @Param   search query string false "按姓名或邮箱搜索"
// @Param   page   query int    false "页码"
// @Param   limit  query int    false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.UserService.ListUsers(ctx.Query("role"), ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// CreateUser godoc
// @Summary 创建用户
// @Description 管理员创建账号，未指定密码时返回一次性初始密码
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateUserInput true "用户信息"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var input service.CreateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, initialPassword, err := c.UserService.CreateUser(input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	resp := gin.H{"user": user}
	if initialPassword != "" {
		resp["initialPassword"] = initialPassword
	}
	util.Created(ctx, resp)
}

// UpdateUser godoc
// @Summary 更新用户
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "用户 ID"
// @Param   body body service.UpdateUserInput true "更新字段"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	var input service.UpdateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// DeleteUser godoc
// @Summary 删除用户
// @Tags 管理端
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户 ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "不能删除自己"
// @Router /api/admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	operatorID, _ := currentUser(ctx)
	if err := c.UserService.DeleteUser(util.MustParseUint(ctx.Param("id")), operatorID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "用户已删除"})
}

// ResetPassword godoc
// @Summary 重置用户密码
// @Tags 管理端
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/reset-password [post]
func (c *AdminController) ResetPassword(ctx *gin.Context) {
	newPassword, err := c.UserService.ResetPassword(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"newPassword": newPassword})
}

// ListClasses godoc
// @Summary 全部班级列表
// @Tags 管理端
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/classes [get]
func (c *AdminController) ListClasses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	classes, total, err := c.ClassService.ListAllClasses(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: classes, Total: total, Page: page, Limit: limit})
}

type assignStudentsRequest struct {
	UserIDs []uint `json:"userIds" binding:"required,min=1"`
}

// AssignStudents godoc
// @Summary 批量把学生加入班级
// @Description 非学生账号与已在班的成员会被跳过
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string                 true "班级 ID"
// @Param   body body assignStudentsRequest true "学生 ID 列表"
// @Success 200 {object} util.Response
// @Router /api/admin/classes/{id}/students [post]
func (c *AdminController) AssignStudents(ctx *gin.Context) {
	var req assignStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	added, err := c.ClassService.AssignStudents(ctx.Param("id"), req.UserIDs)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"added": added})
}

// Stats godoc
// @Summary 平台统计
// @Tags 管理端
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PlatformStats}
// @Router /api/admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.UserService.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
