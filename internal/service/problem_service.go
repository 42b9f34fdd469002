package service

import (
	"context"
	"encoding/json"
	"time"

	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"

	"go.uber.org/zap"
)

type ProblemService struct {
	problemRepo *repository.ProblemRepository
	userRepo    *repository.UserRepository
	aiService   *AIService
}

func NewProblemService(problemRepo *repository.ProblemRepository, userRepo *repository.UserRepository, aiService *AIService) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, userRepo: userRepo, aiService: aiService}
}

type CreateProblemInput struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	GradingCriteria string   `json:"gradingCriteria"`
	MaxScore        int      `json:"maxScore"`
	Difficulty      string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Tags            []string `json:"tags"`
	IsPublished     *bool    `json:"isPublished"`
}

func (s *ProblemService) CreateProblem(userID uint, input CreateProblemInput) (*model.Problem, error) {
	tags, _ := json.Marshal(input.Tags)
	p := &model.Problem{
		Title:           input.Title,
		Description:     input.Description,
		GradingCriteria: input.GradingCriteria,
		MaxScore:        input.MaxScore,
		Difficulty:      input.Difficulty,
		Tags:            tags,
		IsPublished:     true,
		CreatedBy:       userID,
	}
	if p.MaxScore <= 0 {
		p.MaxScore = 100
	}
	if p.Difficulty == "" {
		p.Difficulty = "medium"
	}
	if input.IsPublished != nil {
		p.IsPublished = *input.IsPublished
	}

	if err := s.problemRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// sanitizeForStudent 学生视图不暴露评分标准
func sanitizeForStudent(p *model.Problem) *model.Problem {
	out := *p
	out.GradingCriteria = ""
	return &out
}

func (s *ProblemService) ListProblems(role model.UserRole) ([]model.Problem, error) {
	isStaff := role == model.Teacher || role == model.Admin
	problems, err := s.problemRepo.List(!isStaff)
	if err != nil {
		return nil, err
	}
	if isStaff {
		return problems, nil
	}
	out := make([]model.Problem, 0, len(problems))
	for i := range problems {
		out = append(out, *sanitizeForStudent(&problems[i]))
	}
	return out, nil
}

// ProblemDetail 题目详情，学生附带自己的提交记录
type ProblemDetail struct {
	*model.Problem
	MySubmission *model.ProblemSubmission `json:"mySubmission,omitempty"`
}

func (s *ProblemService) GetProblem(id string, userID uint, role model.UserRole) (*ProblemDetail, error) {
	p, err := s.problemRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, util.ErrProblemNotFound
	}

	isStaff := role == model.Teacher || role == model.Admin
	if !isStaff {
		if !p.IsPublished {
			return nil, util.ErrProblemHidden
		}
		sub, err := s.problemRepo.FindSubmission(id, userID)
		if err != nil {
			return nil, err
		}
		return &ProblemDetail{Problem: sanitizeForStudent(p), MySubmission: sub}, nil
	}
	return &ProblemDetail{Problem: p}, nil
}

type UpdateProblemInput struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	GradingCriteria string   `json:"gradingCriteria"`
	MaxScore        *int     `json:"maxScore"`
	Difficulty      string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Tags            []string `json:"tags"`
	IsPublished     *bool    `json:"isPublished"`
}

func (s *ProblemService) UpdateProblem(id string, input UpdateProblemInput) (*model.Problem, error) {
	p, err := s.problemRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, util.ErrProblemNotFound
	}

	if input.Title != "" {
		p.Title = input.Title
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if input.GradingCriteria != "" {
		p.GradingCriteria = input.GradingCriteria
	}
	if input.MaxScore != nil && *input.MaxScore > 0 {
		p.MaxScore = *input.MaxScore
	}
	if input.Difficulty != "" {
		p.Difficulty = input.Difficulty
	}
	if input.Tags != nil {
		tags, _ := json.Marshal(input.Tags)
		p.Tags = tags
	}
	if input.IsPublished != nil {
		p.IsPublished = *input.IsPublished
	}

	if err := s.problemRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProblemService) DeleteProblem(id string) error {
	p, err := s.problemRepo.FindByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return util.ErrProblemNotFound
	}
	return s.problemRepo.Delete(id)
}

type SubmitProblemInput struct {
	SubmissionText string `json:"submissionText" binding:"required"`
	Language       string `json:"language"`
}

// Submit 学生提交答案并触发异步 AI 评分。
// 同一学生重复提交会覆盖旧记录并重新评分。
func (s *ProblemService) Submit(problemID string, userID uint, input SubmitProblemInput) (*model.ProblemSubmission, error) {
	p, err := s.problemRepo.FindByID(problemID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, util.ErrProblemNotFound
	}
	if !p.IsPublished {
		return nil, util.ErrProblemHidden
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}

	sub, err := s.problemRepo.FindSubmission(problemID, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		sub = &model.ProblemSubmission{
			ProblemID: problemID,
			UserID:    userID,
		}
	}

	sub.StudentName = user.Name
	sub.SubmissionText = input.SubmissionText
	sub.Language = input.Language
	if sub.Language == "" {
		sub.Language = "none"
	}
	sub.Status = model.ProblemStatusGrading
	sub.Score = nil
	sub.Feedback = ""
	sub.SubmittedAt = time.Now()
	sub.GradedAt = nil

	if err := s.problemRepo.SaveSubmission(sub); err != nil {
		return nil, err
	}

	go s.gradeAsync(p, sub.ID, input.SubmissionText)

	return sub, nil
}

// gradeAsync 后台调用 AI 评分并写回结果，失败时标记 error 状态
func (s *ProblemService) gradeAsync(p *model.Problem, submissionID, text string) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("panic in AI grading", zap.Any("recover", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	result, err := s.aiService.GradeSubmission(ctx, p.Description, p.GradingCriteria, text, p.MaxScore)

	var sub model.ProblemSubmission
	if dbErr := s.problemRepo.DB.First(&sub, "id = ?", submissionID).Error; dbErr != nil {
		zap.L().Error("grading target submission missing", zap.String("submissionID", submissionID), zap.Error(dbErr))
		return
	}

	now := time.Now()
	if err != nil {
		zap.L().Warn("AI grading failed", zap.String("submissionID", submissionID), zap.Error(err))
		sub.Status = model.ProblemStatusError
		sub.Feedback = "自动评分暂时不可用，请稍后重新提交"
	} else {
		sub.Status = model.ProblemStatusGraded
		sub.Score = &result.Score
		sub.Feedback = result.Feedback
		sub.GradedAt = &now
	}

	if dbErr := s.problemRepo.SaveSubmission(&sub); dbErr != nil {
		zap.L().Error("failed to persist grading result", zap.String("submissionID", submissionID), zap.Error(dbErr))
	}
}

func (s *ProblemService) ListSubmissions(problemID string) ([]model.ProblemSubmission, error) {
	p, err := s.problemRepo.FindByID(problemID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, util.ErrProblemNotFound
	}
	return s.problemRepo.ListSubmissions(problemID)
}

func (s *ProblemService) GetMySubmission(problemID string, userID uint) (*model.ProblemSubmission, error) {
	sub, err := s.problemRepo.FindSubmission(problemID, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, util.ErrSubmissionNotFound
	}
	return sub, nil
}
