package controller

import (
	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// Create godoc
// @Summary 布置作业
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Param   body    body service.CreateAssignmentInput true "作业信息"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Router /api/classes/{id}/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	var input service.CreateAssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	a, err := c.AssignmentService.CreateAssignment(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// Upcoming godoc
// @Summary 跨班级查询即将截止的作业
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/assignments/upcoming [get]
func (c *AssignmentController) Upcoming(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	list, err := c.AssignmentService.ListUpcoming(userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// List godoc
// @Summary 班级作业列表
// @Description 教师附带提交数量，学生附带自己的提交状态
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Success 200 {object} util.Response{data=[]service.AssignmentView}
// @Router /api/classes/{id}/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	list, err := c.AssignmentService.ListAssignments(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Get godoc
// @Summary 作业详情
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业 ID"
// @Success 200 {object} util.Response{data=service.AssignmentView}
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	view, err := c.AssignmentService.GetAssignment(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Update godoc
// @Summary 更新作业
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "作业 ID"
// @Param   body body service.UpdateAssignmentInput true "更新字段"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	var input service.UpdateAssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	a, err := c.AssignmentService.UpdateAssignment(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// Delete godoc
// @Summary 删除作业
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业 ID"
// @Success 200 {object} util.Response
// @Router /api/assignments/{id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	if err := c.AssignmentService.DeleteAssignment(ctx.Param("id"), userID, role); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "作业已删除"})
}

// Submit godoc
// @Summary 提交作业
// @Description 重复提交会覆盖之前的内容并重置评分
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "作业 ID"
// @Param   body body service.SubmitAssignmentInput true "提交内容"
// @Success 201 {object} util.Response{data=model.AssignmentSubmission}
// @Router /api/assignments/{id}/submit [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	var input service.SubmitAssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	sub, err := c.AssignmentService.Submit(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// Submissions godoc
// @Summary 作业全部提交记录
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业 ID"
// @Success 200 {object} util.Response{data=[]model.AssignmentSubmission}
// @Failure 403 {object} util.Response "仅任课教师可见"
// @Router /api/assignments/{id}/submissions [get]
func (c *AssignmentController) Submissions(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	list, err := c.AssignmentService.ListSubmissions(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Grade godoc
// @Summary 批改作业
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   submissionId path string true "提交记录 ID"
// @Param   body         body service.GradeInput true "分数与评语"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Router /api/submissions/{submissionId}/grade [post]
func (c *AssignmentController) Grade(ctx *gin.Context) {
	var input service.GradeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	sub, err := c.AssignmentService.Grade(ctx.Param("submissionId"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}
