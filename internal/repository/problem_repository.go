package repository

import (
	"errors"

	"classhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProblemRepository struct {
	DB *gorm.DB
}

func NewProblemRepository(db *gorm.DB) *ProblemRepository {
	return &ProblemRepository{DB: db}
}

func (r *ProblemRepository) Create(p *model.Problem) error {
	return r.DB.Create(p).Error
}

func (r *ProblemRepository) FindByID(id string) (*model.Problem, error) {
	var p model.Problem
	err := r.DB.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *ProblemRepository) List(publishedOnly bool) ([]model.Problem, error) {
	var list []model.Problem
	query := r.DB.Model(&model.Problem{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ProblemRepository) Update(p *model.Problem) error {
	return r.DB.Save(p).Error
}

func (r *ProblemRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("problem_id = ?", id).Delete(&model.ProblemSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Problem{}, "id = ?", id).Error
	})
}

// FindSubmission 每个学生在每道题上至多一条提交记录
func (r *ProblemRepository) FindSubmission(problemID string, userID uint) (*model.ProblemSubmission, error) {
	var s model.ProblemSubmission
	err := r.DB.Where("problem_id = ? AND user_id = ?", problemID, userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *ProblemRepository) SaveSubmission(s *model.ProblemSubmission) error {
	return r.DB.Save(s).Error
}

func (r *ProblemRepository) ListSubmissions(problemID string) ([]model.ProblemSubmission, error) {
	var list []model.ProblemSubmission
	err := r.DB.Where("problem_id = ?", problemID).Preload("User").
		Order("submitted_at DESC").Find(&list).Error
	return list, err
}

func (r *ProblemRepository) ListSubmissionsByUser(userID uint) ([]model.ProblemSubmission, error) {
	var list []model.ProblemSubmission
	err := r.DB.Where("user_id = ?", userID).Order("submitted_at DESC").Find(&list).Error
	return list, err
}
