package controller

import (
	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

// Create godoc
// @Summary 创建班级
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateClassInput true "班级信息"
// @Success 201 {object} util.Response{data=model.Class}
// @Router /api/classes [post]
func (c *ClassController) Create(ctx *gin.Context) {
	var input service.CreateClassInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, _ := currentUser(ctx)
	class, err := c.ClassService.CreateClass(userID, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, class)
}

// List godoc
// @Summary 我的班级列表
// @Description 教师返回创建的班级，学生返回加入的班级
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/classes [get]
func (c *ClassController) List(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	classes, err := c.ClassService.ListClasses(userID, role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, classes)
}

// Get godoc
// @Summary 班级详情
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Success 200 {object} util.Response{data=service.ClassDetail}
// @Failure 403 {object} util.Response "非班级成员"
// @Failure 404 {object} util.Response "班级不存在"
// @Router /api/classes/{id} [get]
func (c *ClassController) Get(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	detail, err := c.ClassService.GetClass(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// Update godoc
// @Summary 更新班级
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "班级 ID"
// @Param   body body service.UpdateClassInput true "更新字段"
// @Success 200 {object} util.Response{data=model.Class}
// @Router /api/classes/{id} [put]
func (c *ClassController) Update(ctx *gin.Context) {
	var input service.UpdateClassInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	class, err := c.ClassService.UpdateClass(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, class)
}

// Delete godoc
// @Summary 删除班级
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Success 200 {object} util.Response
// @Router /api/classes/{id} [delete]
func (c *ClassController) Delete(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	if err := c.ClassService.DeleteClass(ctx.Param("id"), userID, role); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "班级已删除"})
}

type joinClassRequest struct {
	Code string `json:"code" binding:"required"`
}

// Join godoc
// @Summary 凭邀请码加入班级
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body joinClassRequest true "邀请码"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 404 {object} util.Response "邀请码无效"
// @Router /api/classes/join [post]
func (c *ClassController) Join(ctx *gin.Context) {
	var req joinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, _ := currentUser(ctx)
	class, err := c.ClassService.JoinByCode(req.Code, userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, class)
}

// Leave godoc
// @Summary 退出班级
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Success 200 {object} util.Response
// @Router /api/classes/{id}/leave [post]
func (c *ClassController) Leave(ctx *gin.Context) {
	userID, _ := currentUser(ctx)
	if err := c.ClassService.LeaveClass(ctx.Param("id"), userID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "已退出班级"})
}

// RemoveStudent godoc
// @Summary 移除班级学生
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Param   id        path string true "班级 ID"
// @Param   studentId path int    true "学生 ID"
// @Success 200 {object} util.Response
// @Router /api/classes/{id}/students/{studentId} [delete]
func (c *ClassController) RemoveStudent(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	studentID := util.MustParseUint(ctx.Param("studentId"))
	if err := c.ClassService.RemoveStudent(ctx.Param("id"), studentID, userID, role); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "学生已移出班级"})
}
