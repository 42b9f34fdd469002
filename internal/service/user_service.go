package service

import (
	"time"

	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService 管理端的用户运营能力
type UserService struct {
	userRepo       *repository.UserRepository
	classRepo      *repository.ClassRepository
	attemptRepo    *repository.QuizAttemptRepository
	assignmentRepo *repository.AssignmentRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	classRepo *repository.ClassRepository,
	attemptRepo *repository.QuizAttemptRepository,
	assignmentRepo *repository.AssignmentRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		classRepo:      classRepo,
		attemptRepo:    attemptRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *UserService) ListUsers(role, search string, page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.userRepo.List(role, search, (page-1)*limit, limit)
}

type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required,oneof=student teacher admin"`
}

// CreateUser 管理员创建账号。未提供密码时生成随机初始密码并随结果返回一次。
func (s *UserService) CreateUser(input CreateUserInput) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", util.ErrEmailRegistered
	}

	initialPassword := input.Password
	if initialPassword == "" {
		initialPassword = util.RandomPassword(12)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     model.UserRole(input.Role),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	zap.L().Info("admin created user", zap.Uint("userID", user.ID), zap.String("role", input.Role))
	if input.Password != "" {
		return user, "", nil
	}
	return user, initialPassword, nil
}

type UpdateUserInput struct {
	Name     string `json:"name"`
	Role     string `json:"role" binding:"omitempty,oneof=student teacher admin"`
	Disabled *bool  `json:"disabled"`
}

func (s *UserService) UpdateUser(id uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Role != "" {
		user.Role = model.UserRole(input.Role)
	}
	if input.Disabled != nil {
		user.Disabled = *input.Disabled
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 删除用户并清理其班级成员关系、测验记录与作业提交
func (s *UserService) DeleteUser(id uint, operatorID uint) error {
	if id == operatorID {
		return util.ErrCannotDeleteSelf
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return util.ErrUserNotFound
	}

	if err := s.classRepo.RemoveStudentEverywhere(id); err != nil {
		return err
	}
	if err := s.attemptRepo.DeleteByUser(id); err != nil {
		return err
	}
	if err := s.assignmentRepo.DeleteSubmissionsByUser(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

// ResetPassword 管理员重置密码，返回新的随机密码
func (s *UserService) ResetPassword(id uint) (string, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", util.ErrUserNotFound
	}

	newPassword := util.RandomPassword(12)
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdateFields(id, map[string]interface{}{"password": string(hashed)}); err != nil {
		return "", err
	}
	return newPassword, nil
}

func (s *UserService) UpdateLastSeen(userID uint, at time.Time) {
	if err := s.userRepo.UpdateLastSeen(userID, at); err != nil {
		zap.L().Debug("failed to update last seen", zap.Uint("userID", userID), zap.Error(err))
	}
}

// PlatformStats 管理端仪表盘的汇总数字
type PlatformStats struct {
	TotalStudents   int64 `json:"totalStudents"`
	TotalTeachers   int64 `json:"totalTeachers"`
	TotalClasses    int64 `json:"totalClasses"`
	ActiveLast7Days int64 `json:"activeLast7Days"`
}

func (s *UserService) Stats() (*PlatformStats, error) {
	students, err := s.userRepo.CountByRole(model.Student)
	if err != nil {
		return nil, err
	}
	teachers, err := s.userRepo.CountByRole(model.Teacher)
	if err != nil {
		return nil, err
	}
	classes, err := s.classRepo.CountAll()
	if err != nil {
		return nil, err
	}
	active, err := s.userRepo.CountActiveSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalStudents:   students,
		TotalTeachers:   teachers,
		TotalClasses:    classes,
		ActiveLast7Days: active,
	}, nil
}
