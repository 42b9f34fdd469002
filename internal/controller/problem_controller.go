package controller

import (
	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProblemController 开放式练习题与 AI 自动评分
type ProblemController struct {
	ProblemService *service.ProblemService
}

func NewProblemController(problemService *service.ProblemService) *ProblemController {
	return &ProblemController{ProblemService: problemService}
}

// Create godoc
// @Summary 创建练习题
// @Tags 练习题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateProblemInput true "题目信息"
// @Success 201 {object} util.Response{data=model.Problem}
// @Router /api/problems [post]
func (c *ProblemController) Create(ctx *gin.Context) {
	var input service.CreateProblemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, _ := currentUser(ctx)
	p, err := c.ProblemService.CreateProblem(userID, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, p)
}

// List godoc
// @Summary 练习题列表
// @Description 学生视图不包含评分标准与未发布题目
// @Tags 练习题
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Problem}
// @Router /api/problems [get]
func (c *ProblemController) List(ctx *gin.Context) {
	_, role := currentUser(ctx)
	problems, err := c.ProblemService.ListProblems(role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, problems)
}

// Get godoc
// @Summary 练习题详情
// @Tags 练习题
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目 ID"
// @Success 200 {object} util.Response{data=service.ProblemDetail}
// @Router /api/problems/{id} [get]
func (c *ProblemController) Get(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	detail, err := c.ProblemService.GetProblem(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// Update godoc
// @Summary 更新练习题
// @Tags 练习题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "题目 ID"
// @Param   body body service.UpdateProblemInput true "更新字段"
// @Success 200 {object} util.Response{data=model.Problem}
// @Router /api/problems/{id} [put]
func (c *ProblemController) Update(ctx *gin.Context) {
	var input service.UpdateProblemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.ProblemService.UpdateProblem(ctx.Param("id"), input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Delete godoc
// @Summary 删除练习题
// @Tags 练习题
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目 ID"
// @Success 200 {object} util.Response
// @Router /api/problems/{id} [delete]
func (c *ProblemController) Delete(ctx *gin.Context) {
	if err := c.ProblemService.DeleteProblem(ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "题目已删除"})
}

// Submit godoc
// @Summary 提交答案
// @Description 触发后台 AI 评分，评分完成前状态为 grading
// @Tags 练习题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "题目 ID"
// @Param   body body service.SubmitProblemInput true "答案内容"
// @Success 201 {object} util.Response{data=model.ProblemSubmission}
// @Router /api/problems/{id}/submit [post]
func (c *ProblemController) Submit(ctx *gin.Context) {
	var input service.SubmitProblemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, _ := currentUser(ctx)
	sub, err := c.ProblemService.Submit(ctx.Param("id"), userID, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// MySubmission godoc
// @Summary 我的提交与评分结果
// @Tags 练习题
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目 ID"
// @Success 200 {object} util.Response{data=model.ProblemSubmission}
// @Router /api/problems/{id}/my-submission [get]
func (c *ProblemController) MySubmission(ctx *gin.Context) {
	userID, _ := currentUser(ctx)
	sub, err := c.ProblemService.GetMySubmission(ctx.Param("id"), userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// Submissions godoc
// @Summary 题目全部提交记录
// @Tags 练习题
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目 ID"
// @Success 200 {object} util.Response{data=[]model.ProblemSubmission}
// @Router /api/problems/{id}/submissions [get]
func (c *ProblemController) Submissions(ctx *gin.Context) {
	list, err := c.ProblemService.ListSubmissions(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, list)
}
