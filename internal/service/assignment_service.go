package service

import (
	"encoding/json"
	"time"

	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"

	"go.uber.org/zap"
)

type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	classService   *ClassService
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, classService *ClassService) *AssignmentService {
	return &AssignmentService{assignmentRepo: assignmentRepo, classService: classService}
}

type CreateAssignmentInput struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Instructions   string     `json:"instructions"`
	DueDate        *time.Time `json:"dueDate"`
	Points         int        `json:"points"`
	SubmissionType string     `json:"submissionType" binding:"omitempty,oneof=file text link"`
	Attachments    []string   `json:"attachments"`
	CourseID       string     `json:"courseId"`
	IsPublished    bool       `json:"isPublished"`
}

func (s *AssignmentService) CreateAssignment(classID string, userID uint, role model.UserRole, input CreateAssignmentInput) (*model.Assignment, error) {
	if _, err := s.classService.AuthorizeOwner(classID, userID, role); err != nil {
		return nil, err
	}

	attachments, _ := json.Marshal(input.Attachments)
	a := &model.Assignment{
		ClassID:        classID,
		CourseID:       input.CourseID,
		Title:          input.Title,
		Description:    input.Description,
		Instructions:   input.Instructions,
		DueDate:        input.DueDate,
		Points:         input.Points,
		SubmissionType: input.SubmissionType,
		Attachments:    attachments,
		IsPublished:    input.IsPublished,
		CreatedBy:      userID,
	}
	if a.Points <= 0 {
		a.Points = 100
	}
	if a.SubmissionType == "" {
		a.SubmissionType = "file"
	}

	if err := s.assignmentRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// AssignmentView 附带提交状态的作业视图
type AssignmentView struct {
	model.Assignment
	SubmissionCount int64                       `json:"submissionCount,omitempty"`
	MySubmission    *model.AssignmentSubmission `json:"mySubmission,omitempty"`
}

func (s *AssignmentService) ListAssignments(classID string, userID uint, role model.UserRole) ([]AssignmentView, error) {
	class, err := s.classService.AuthorizeMember(classID, userID, role)
	if err != nil {
		return nil, err
	}

	isOwner := role == model.Admin || class.TeacherID == userID
	assignments, err := s.assignmentRepo.ListByClass(classID, !isOwner)
	if err != nil {
		return nil, err
	}

	views := make([]AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		view := AssignmentView{Assignment: a}
		if isOwner {
			count, err := s.assignmentRepo.CountSubmissions(a.ID)
			if err != nil {
				return nil, err
			}
			view.SubmissionCount = count
		} else {
			sub, err := s.assignmentRepo.FindSubmission(a.ID, userID)
			if err != nil {
				return nil, err
			}
			view.MySubmission = sub
		}
		views = append(views, view)
	}
	return views, nil
}

// ListUpcoming 跨班级查询尚未截止的已发布作业，按截止时间升序
func (s *AssignmentService) ListUpcoming(userID uint, role model.UserRole) ([]model.Assignment, error) {
	classIDs, err := s.classService.ClassIDsForUser(userID, role)
	if err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListUpcomingByClassIDs(classIDs, time.Now())
}

func (s *AssignmentService) GetAssignment(id string, userID uint, role model.UserRole) (*AssignmentView, error) {
	a, err := s.assignmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, util.ErrAssignmentNotFound
	}

	class, err := s.classService.AuthorizeMember(a.ClassID, userID, role)
	if err != nil {
		return nil, err
	}

	isOwner := role == model.Admin || class.TeacherID == userID
	if !isOwner && !a.IsPublished {
		return nil, util.ErrAssignmentNotFound
	}

	view := &AssignmentView{Assignment: *a}
	if isOwner {
		count, err := s.assignmentRepo.CountSubmissions(id)
		if err != nil {
			return nil, err
		}
		view.SubmissionCount = count
	} else {
		sub, err := s.assignmentRepo.FindSubmission(id, userID)
		if err != nil {
			return nil, err
		}
		view.MySubmission = sub
	}
	return view, nil
}

type UpdateAssignmentInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Instructions string     `json:"instructions"`
	DueDate      *time.Time `json:"dueDate"`
	Points       *int       `json:"points"`
	IsPublished  *bool      `json:"isPublished"`
}

func (s *AssignmentService) UpdateAssignment(id string, userID uint, role model.UserRole, input UpdateAssignmentInput) (*model.Assignment, error) {
	a, err := s.assignmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, util.ErrAssignmentNotFound
	}
	if _, err := s.classService.AuthorizeOwner(a.ClassID, userID, role); err != nil {
		return nil, err
	}

	if input.Title != "" {
		a.Title = input.Title
	}
	if input.Description != "" {
		a.Description = input.Description
	}
	if input.Instructions != "" {
		a.Instructions = input.Instructions
	}
	if input.DueDate != nil {
		a.DueDate = input.DueDate
	}
	if input.Points != nil && *input.Points > 0 {
		a.Points = *input.Points
	}
	if input.IsPublished != nil {
		a.IsPublished = *input.IsPublished
	}

	if err := s.assignmentRepo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) DeleteAssignment(id string, userID uint, role model.UserRole) error {
	a, err := s.assignmentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if a == nil {
		return util.ErrAssignmentNotFound
	}
	if _, err := s.classService.AuthorizeOwner(a.ClassID, userID, role); err != nil {
		return err
	}
	return s.assignmentRepo.Delete(id)
}

type SubmitAssignmentInput struct {
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

// Submit 学生提交作业。已提交过则覆盖内容并重置评分状态。
func (s *AssignmentService) Submit(assignmentID string, userID uint, role model.UserRole, input SubmitAssignmentInput) (*model.AssignmentSubmission, error) {
	a, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil || !a.IsPublished {
		return nil, util.ErrAssignmentNotFound
	}

	class, err := s.classService.AuthorizeMember(a.ClassID, userID, role)
	if err != nil {
		return nil, err
	}
	if class.TeacherID == userID {
		return nil, util.ErrPermissionDenied
	}

	now := time.Now()
	isLate := a.DueDate != nil && now.After(*a.DueDate)
	attachments, _ := json.Marshal(input.Attachments)

	existing, err := s.assignmentRepo.FindSubmission(assignmentID, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Content = input.Content
		existing.Attachments = attachments
		existing.SubmittedAt = now
		existing.IsLate = isLate
		existing.Status = model.SubmissionStatusSubmitted
		existing.Grade = nil
		existing.Feedback = ""
		if err := s.assignmentRepo.UpdateSubmission(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	sub := &model.AssignmentSubmission{
		AssignmentID: assignmentID,
		UserID:       userID,
		Content:      input.Content,
		Attachments:  attachments,
		SubmittedAt:  now,
		Status:       model.SubmissionStatusSubmitted,
		IsLate:       isLate,
	}
	if err := s.assignmentRepo.CreateSubmission(sub); err != nil {
		return nil, err
	}
	zap.L().Info("assignment submitted",
		zap.String("assignmentID", assignmentID), zap.Uint("userID", userID), zap.Bool("late", isLate))
	return sub, nil
}

func (s *AssignmentService) ListSubmissions(assignmentID string, userID uint, role model.UserRole) ([]model.AssignmentSubmission, error) {
	a, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, util.ErrAssignmentNotFound
	}
	if _, err := s.classService.AuthorizeOwner(a.ClassID, userID, role); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListSubmissions(assignmentID)
}

type GradeInput struct {
	Grade    int    `json:"grade" binding:"min=0"`
	Feedback string `json:"feedback"`
}

// Grade 老师批改作业，分数不能超过作业总分
func (s *AssignmentService) Grade(submissionID string, userID uint, role model.UserRole, input GradeInput) (*model.AssignmentSubmission, error) {
	sub, err := s.assignmentRepo.FindSubmissionByID(submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, util.ErrSubmissionNotFound
	}

	a, err := s.assignmentRepo.FindByID(sub.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, util.ErrAssignmentNotFound
	}
	if _, err := s.classService.AuthorizeOwner(a.ClassID, userID, role); err != nil {
		return nil, err
	}

	grade := input.Grade
	if grade > a.Points {
		grade = a.Points
	}
	now := time.Now()
	sub.Grade = &grade
	sub.Feedback = input.Feedback
	sub.GradedBy = userID
	sub.GradedAt = &now
	sub.Status = model.SubmissionStatusGraded

	if err := s.assignmentRepo.UpdateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}
