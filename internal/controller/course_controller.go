package controller

import (
	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// Create godoc
// @Summary 在班级内创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Param   body    body service.CreateCourseInput true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/classes/{id}/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var input service.CreateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	course, err := c.CourseService.CreateCourse(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// List godoc
// @Summary 班级课程列表
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/classes/{id}/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	courses, err := c.CourseService.ListCourses(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	course, err := c.CourseService.GetCourse(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Update godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "课程 ID"
// @Param   body body service.UpdateCourseInput true "更新字段"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var input service.UpdateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	course, err := c.CourseService.UpdateCourse(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	if err := c.CourseService.DeleteCourse(ctx.Param("id"), userID, role); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "课程已删除"})
}

// AddModule godoc
// @Summary 添加课程模块
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "课程 ID"
// @Param   body body service.ModuleInput true "模块信息"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Router /api/courses/{id}/modules [post]
func (c *CourseController) AddModule(ctx *gin.Context) {
	var input service.ModuleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	mod, err := c.CourseService.AddModule(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, mod)
}

// UpdateModule godoc
// @Summary 更新课程模块
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path string true "模块 ID"
// @Param   body     body service.UpdateModuleInput true "更新字段"
// @Success 200 {object} util.Response{data=model.CourseModule}
// @Router /api/modules/{moduleId} [put]
func (c *CourseController) UpdateModule(ctx *gin.Context) {
	var input service.UpdateModuleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	mod, err := c.CourseService.UpdateModule(ctx.Param("moduleId"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, mod)
}

// DeleteModule godoc
// @Summary 删除课程模块
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path string true "模块 ID"
// @Success 200 {object} util.Response
// @Router /api/modules/{moduleId} [delete]
func (c *CourseController) DeleteModule(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	if err := c.CourseService.DeleteModule(ctx.Param("moduleId"), userID, role); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "模块已删除"})
}
