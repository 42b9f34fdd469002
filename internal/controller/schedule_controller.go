package controller

import (
	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	ScheduleService *service.ScheduleService
}

func NewScheduleController(scheduleService *service.ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

// Create godoc
// @Summary 创建日程事件
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.EventInput true "事件信息"
// @Success 201 {object} util.Response{data=model.ScheduleEvent}
// @Router /api/schedule [post]
func (c *ScheduleController) Create(ctx *gin.Context) {
	var input service.EventInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, _ := currentUser(ctx)
	e, err := c.ScheduleService.CreateEvent(userID, input)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, e)
}

// List godoc
// @Summary 日程列表
// @Tags 日程
// @Produce  json
// @Security BearerAuth
// @Param   from query string false "开始日期 YYYY-MM-DD"
// @Param   to   query string false "结束日期 YYYY-MM-DD（含当天）"
// @Success 200 {object} util.Response{data=[]model.ScheduleEvent}
// @Router /api/schedule [get]
func (c *ScheduleController) List(ctx *gin.Context) {
	userID, _ := currentUser(ctx)
	events, err := c.ScheduleService.ListEvents(userID, ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, events)
}

// Today godoc
// @Summary 今日日程
// @Tags 日程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ScheduleEvent}
// @Router /api/schedule/today [get]
func (c *ScheduleController) Today(ctx *gin.Context) {
	userID, _ := currentUser(ctx)
	events, err := c.ScheduleService.TodayEvents(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// Week godoc
// @Summary 本周日程
// @Tags 日程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ScheduleEvent}
// @Router /api/schedule/week [get]
func (c *ScheduleController) Week(ctx *gin.Context) {
	userID, _ := currentUser(ctx)
	events, err := c.ScheduleService.WeekEvents(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// Update godoc
// @Summary 更新日程事件
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "事件 ID"
// @Param   body body service.EventInput true "更新字段"
// @Success 200 {object} util.Response{data=model.ScheduleEvent}
// @Router /api/schedule/{id} [put]
func (c *ScheduleController) Update(ctx *gin.Context) {
	var input service.EventInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, _ := currentUser(ctx)
	e, err := c.ScheduleService.UpdateEvent(ctx.Param("id"), userID, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, e)
}

// Delete godoc
// @Summary 删除日程事件
// @Tags 日程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "事件 ID"
// @Success 200 {object} util.Response
// @Router /api/schedule/{id} [delete]
func (c *ScheduleController) Delete(ctx *gin.Context) {
	userID, _ := currentUser(ctx)
	if err := c.ScheduleService.DeleteEvent(ctx.Param("id"), userID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "事件已删除"})
}
