package controller

import (
	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Create godoc
// @Summary 创建测验
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Param   body    body service.CreateQuizInput true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/classes/{id}/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var input service.CreateQuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	quiz, err := c.QuizService.CreateQuiz(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// List godoc
// @Summary 班级测验列表
// @Description 教师返回完整测验，学生返回不含题目的摘要列表
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "班级 ID"
// @Success 200 {object} util.Response
// @Router /api/classes/{id}/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	quizzes, err := c.QuizService.ListQuizzes(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary 测验详情
// @Description 学生获取答题视图，不包含正确答案
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "测验不存在或未发布"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	quiz, err := c.QuizService.GetQuiz(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Update godoc
// @Summary 更新测验
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "测验 ID"
// @Param   body body service.UpdateQuizInput true "更新字段"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	var input service.UpdateQuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	quiz, err := c.QuizService.UpdateQuiz(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary 删除测验
// @Description 同时删除题目与全部提交记录
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验 ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	if err := c.QuizService.DeleteQuiz(ctx.Param("id"), userID, role); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "测验已删除"})
}

// Submit godoc
// @Summary 提交测验作答
// @Description 校验剩余次数后判分，返回本次提交结果
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "测验 ID"
// @Param   body body service.SubmitQuizInput true "答案下标数组"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Failure 400 {object} util.Response "提交次数已用尽"
// @Failure 403 {object} util.Response "非班级成员"
// @Failure 404 {object} util.Response "测验不存在或未发布"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var input service.SubmitQuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, role := currentUser(ctx)
	attempt, err := c.QuizService.SubmitAttempt(ctx.Param("id"), userID, role, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// MyAttempts godoc
// @Summary 我的提交历史
// @Description 按分数从高到低返回，附带剩余次数与最好成绩
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验 ID"
// @Success 200 {object} util.Response{data=service.MyAttemptsResult}
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) MyAttempts(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	result, err := c.QuizService.GetMyAttempts(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Results godoc
// @Summary 测验全部成绩
// @Description 教师查看全班提交记录，按提交先后排列
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验 ID"
// @Success 200 {object} util.Response{data=[]service.AttemptResultView}
// @Failure 403 {object} util.Response "仅任课教师可见"
// @Router /api/quizzes/{id}/results [get]
func (c *QuizController) Results(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	results, err := c.QuizService.GetQuizResults(ctx.Param("id"), userID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
