package repository

import (
	"errors"

	"classhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// FindByID 加载测验及按序排列的题目
func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.position ASC, quiz_questions.created_at ASC")
	}).First(&quiz, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quiz, err
}

func (r *QuizRepository) ListByClass(classID string, publishedOnly bool) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Where("class_id = ?", classID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.position ASC, quiz_questions.created_at ASC")
	}).Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

// ReplaceQuestions 整体替换题目列表（编辑测验时使用）
func (r *QuizRepository) ReplaceQuestions(quizID string, questions []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].QuizID = quizID
		}
		return tx.Create(&questions).Error
	})
}

// Delete 删除测验及其题目与全部提交记录
func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

func (r *QuizRepository) CountByClass(classID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}
