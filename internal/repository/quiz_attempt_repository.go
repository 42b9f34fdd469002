package repository

import (
	"classhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

// CountByQuizAndUser 统计某学生在某测验上已提交的次数
func (r *QuizAttemptRepository) CountByQuizAndUser(quizID string, userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).Count(&count).Error
	return count, err
}

// ListByQuizAndUser 返回学生的全部提交，按分数降序
func (r *QuizAttemptRepository) ListByQuizAndUser(quizID string, userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("score DESC").Find(&attempts).Error
	return attempts, err
}

// ListByQuiz 返回测验的全部提交，按插入顺序，附带提交人信息
func (r *QuizAttemptRepository) ListByQuiz(quizID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("quiz_id = ?", quizID).Preload("User").
		Order("created_at ASC, id ASC").Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *QuizAttemptRepository) DeleteByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.QuizAttempt{}).Error
}
