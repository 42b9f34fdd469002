package repository

import (
	"errors"
	"time"

	"classhub_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(a *model.Assignment) error {
	return r.DB.Create(a).Error
}

func (r *AssignmentRepository) FindByID(id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *AssignmentRepository) ListByClass(classID string, publishedOnly bool) ([]model.Assignment, error) {
	var list []model.Assignment
	query := r.DB.Where("class_id = ?", classID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Order("due_date ASC, created_at DESC").Find(&list).Error
	return list, err
}

func (r *AssignmentRepository) Update(a *model.Assignment) error {
	return r.DB.Save(a).Error
}

func (r *AssignmentRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assignment{}, "id = ?", id).Error
	})
}

func (r *AssignmentRepository) CreateSubmission(s *model.AssignmentSubmission) error {
	return r.DB.Create(s).Error
}

func (r *AssignmentRepository) FindSubmission(assignmentID string, userID uint) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	err := r.DB.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *AssignmentRepository) FindSubmissionByID(id string) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	err := r.DB.Preload("User").First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *AssignmentRepository) ListSubmissions(assignmentID string) ([]model.AssignmentSubmission, error) {
	var list []model.AssignmentSubmission
	err := r.DB.Where("assignment_id = ?", assignmentID).Preload("User").
		Order("submitted_at ASC").Find(&list).Error
	return list, err
}

func (r *AssignmentRepository) UpdateSubmission(s *model.AssignmentSubmission) error {
	return r.DB.Save(s).Error
}

func (r *AssignmentRepository) CountSubmissions(assignmentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AssignmentSubmission{}).
		Where("assignment_id = ?", assignmentID).Count(&count).Error
	return count, err
}

// ListUpcomingByClassIDs 查询多个班级中截止时间在 after 之后的已发布作业
func (r *AssignmentRepository) ListUpcomingByClassIDs(classIDs []string, after time.Time) ([]model.Assignment, error) {
	if len(classIDs) == 0 {
		return []model.Assignment{}, nil
	}
	var list []model.Assignment
	err := r.DB.Where("class_id IN ? AND is_published = ? AND due_date > ?", classIDs, true, after).
		Order("due_date ASC").Find(&list).Error
	return list, err
}

func (r *AssignmentRepository) CountSubmissionsByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AssignmentSubmission{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *AssignmentRepository) DeleteSubmissionsByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.AssignmentSubmission{}).Error
}
