package repository

import (
	"errors"

	"classhub_backend/internal/model"

	"gorm.io/gorm"
)

type MediaFileRepository struct {
	DB *gorm.DB
}

func NewMediaFileRepository(db *gorm.DB) *MediaFileRepository {
	return &MediaFileRepository{DB: db}
}

func (r *MediaFileRepository) Create(f *model.MediaFile) error {
	return r.DB.Create(f).Error
}

func (r *MediaFileRepository) FindByID(id string) (*model.MediaFile, error) {
	var f model.MediaFile
	err := r.DB.First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &f, err
}

func (r *MediaFileRepository) ListByUser(userID uint, fileType string) ([]model.MediaFile, error) {
	var files []model.MediaFile
	query := r.DB.Where("user_id = ?", userID)
	if fileType != "" {
		query = query.Where("file_type = ?", fileType)
	}
	err := query.Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *MediaFileRepository) Delete(id string) error {
	return r.DB.Delete(&model.MediaFile{}, "id = ?", id).Error
}
