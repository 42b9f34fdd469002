package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaService 处理文件上传与媒体库管理
type MediaService struct {
	mediaRepo *repository.MediaFileRepository
	userRepo  *repository.UserRepository
	storage   *StorageService
}

func NewMediaService(mediaRepo *repository.MediaFileRepository, userRepo *repository.UserRepository, storage *StorageService) *MediaService {
	return &MediaService{mediaRepo: mediaRepo, userRepo: userRepo, storage: storage}
}

const maxUploadSize = 100 << 20 // 100MB

var allowedMimePrefixes = []string{
	util.MimeImage,
	util.MimeVideo,
	util.MimePDF,
	"application/msword",
	"application/vnd.openxmlformats-officedocument",
	"text/plain",
}

// Upload 校验并保存上传文件，视频文件会探测时长与分辨率
func (s *MediaService) Upload(ctx context.Context, userID uint, fileHeader *multipart.FileHeader, folder string) (*model.MediaFile, error) {
	if fileHeader.Size > maxUploadSize {
		return nil, fmt.Errorf("文件大小超出限制（最大 100MB）")
	}
	if folder == "" {
		folder = "general"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, allowedMimePrefixes)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}

	ext := filepath.Ext(fileHeader.Filename)
	objectKey := fmt.Sprintf("%s/%s/%s%s", folder, time.Now().Format("200601"), uuid.New().String(), ext)

	record := &model.MediaFile{
		UserID:   userID,
		Filename: fileHeader.Filename,
		FileType: util.DetectFileType(mimeType),
		MimeType: mimeType,
		Size:     fileHeader.Size,
		Folder:   folder,
	}

	// 视频先落临时文件以便 ffmpeg 探测元数据
	if record.FileType == util.FileTypeVideo {
		url, err := s.uploadVideo(ctx, objectKey, file, record, mimeType)
		if err != nil {
			return nil, err
		}
		record.URL = url
	} else {
		url, err := s.storage.Upload(ctx, objectKey, file, fileHeader.Size, mimeType)
		if err != nil {
			return nil, err
		}
		record.URL = url
	}
	record.ObjectKey = objectKey

	if err := s.mediaRepo.Create(record); err != nil {
		return nil, err
	}

	zap.L().Info("file uploaded",
		zap.Uint("userID", userID),
		zap.String("objectKey", objectKey),
		zap.String("type", record.FileType),
		zap.Int64("size", record.Size))
	return record, nil
}

// UploadAvatar 上传头像（仅限图片）并同步到用户资料
func (s *MediaService) UploadAvatar(ctx context.Context, userID uint, fileHeader *multipart.FileHeader) (*model.MediaFile, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	file.Close()
	if err != nil {
		return nil, err
	}
	if !util.IsImage(mimeType) {
		return nil, fmt.Errorf("头像必须是图片文件")
	}

	record, err := s.Upload(ctx, userID, fileHeader, "avatars")
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"avatar_url": record.URL}); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *MediaService) uploadVideo(ctx context.Context, objectKey string, file multipart.File, record *model.MediaFile, mimeType string) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(objectKey))
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.ReadFrom(file); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	if info, err := util.ProbeVideo(tmp.Name()); err != nil {
		zap.L().Warn("video probe failed", zap.String("objectKey", objectKey), zap.Error(err))
	} else {
		record.Duration = int(info.Duration)
		record.Width = info.Width
		record.Height = info.Height
	}

	return s.storage.UploadFile(ctx, objectKey, tmp.Name(), mimeType)
}

func (s *MediaService) ListFiles(userID uint, fileType string) ([]model.MediaFile, error) {
	return s.mediaRepo.ListByUser(userID, fileType)
}

// DeleteFile 删除文件记录与存储对象，仅允许上传者本人或管理员
func (s *MediaService) DeleteFile(ctx context.Context, fileID string, userID uint, role model.UserRole) error {
	f, err := s.mediaRepo.FindByID(fileID)
	if err != nil {
		return err
	}
	if f == nil {
		return util.ErrFileNotFound
	}
	if role != model.Admin && f.UserID != userID {
		return util.ErrPermissionDenied
	}

	if err := s.storage.Delete(ctx, f.ObjectKey); err != nil {
		zap.L().Warn("failed to delete storage object", zap.String("objectKey", f.ObjectKey), zap.Error(err))
	}
	return s.mediaRepo.Delete(fileID)
}
