package controller

import (
	"classhub_backend/internal/service"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	MediaService *service.MediaService
}

func NewUploadController(mediaService *service.MediaService) *UploadController {
	return &UploadController{MediaService: mediaService}
}

// Upload godoc
// @Summary 上传文件
// @Description 支持图片、视频与文档，视频自动探测时长与分辨率
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file   formData file   true  "文件"
// @Param   folder formData string false "目标目录"
// @Success 201 {object} util.Response{data=model.MediaFile}
// @Failure 400 {object} util.Response "文件类型或大小不合法"
// @Router /api/upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	userID, _ := currentUser(ctx)
	record, err := c.MediaService.Upload(ctx.Request.Context(), userID, fileHeader, ctx.PostForm("folder"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, record)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description 仅支持图片，上传成功后同步更新个人资料头像
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "图片文件"
// @Success 201 {object} util.Response{data=model.MediaFile}
// @Failure 400 {object} util.Response "不是图片文件"
// @Router /api/upload/avatar [post]
func (c *UploadController) UploadAvatar(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	userID, _ := currentUser(ctx)
	record, err := c.MediaService.UploadAvatar(ctx.Request.Context(), userID, fileHeader)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, record)
}

// ListFiles godoc
// @Summary 我的文件列表
// @Tags 上传
// @Produce  json
// @Security BearerAuth
// @Param   type query string false "按类型过滤 image/video/document"
// @Success 200 {object} util.Response{data=[]model.MediaFile}
// @Router /api/upload/files [get]
func (c *UploadController) ListFiles(ctx *gin.Context) {
	userID, _ := currentUser(ctx)
	files, err := c.MediaService.ListFiles(userID, ctx.Query("type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, files)
}

// DeleteFile godoc
// @Summary 删除文件
// @Tags 上传
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "文件 ID"
// @Success 200 {object} util.Response
// @Router /api/upload/files/{id} [delete]
func (c *UploadController) DeleteFile(ctx *gin.Context) {
	userID, role := currentUser(ctx)
	if err := c.MediaService.DeleteFile(ctx.Request.Context(), ctx.Param("id"), userID, role); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "文件已删除"})
}
