package service

import (
	"time"

	"classhub_backend/internal/config"
	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo       *repository.UserRepository
	classRepo      *repository.ClassRepository
	assignmentRepo *repository.AssignmentRepository
	attemptRepo    *repository.QuizAttemptRepository
	cfg            *config.Config
}

func NewAuthService(
	userRepo *repository.UserRepository,
	classRepo *repository.ClassRepository,
	assignmentRepo *repository.AssignmentRepository,
	attemptRepo *repository.QuizAttemptRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		classRepo:      classRepo,
		assignmentRepo: assignmentRepo,
		attemptRepo:    attemptRepo,
		cfg:            cfg,
	}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=student teacher"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register 注册新用户。角色只允许 student / teacher，管理员由后台创建。
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	existing, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.Student
	if input.Role == string(model.Teacher) {
		role = model.Teacher
	}

	user := &model.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      role,
		LastLogin: time.Now(),
		LastSeen:  time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	zap.L().Info("user registered", zap.Uint("userID", user.ID), zap.String("role", string(user.Role)))
	return &AuthResult{Token: token, User: user}, nil
}

// Login 校验凭据并签发令牌
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled {
		return nil, util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, util.ErrUserNotFound
	}

	_ = s.userRepo.UpdateFields(user.ID, map[string]interface{}{"last_login": time.Now()})

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

// ProfileView 个人资料，附带学习统计
type ProfileView struct {
	model.User
	ClassCount           int64 `json:"classCount"`
	AssignmentsSubmitted int64 `json:"assignmentsSubmitted"`
	QuizAttempts         int64 `json:"quizAttempts"`
}

func (s *AuthService) GetProfile(userID uint) (*ProfileView, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}

	view := &ProfileView{User: *user}

	if user.Role == model.Teacher || user.Role == model.Admin {
		classes, err := s.classRepo.ListByTeacher(userID)
		if err != nil {
			return nil, err
		}
		view.ClassCount = int64(len(classes))
	} else {
		ids, err := s.classRepo.ClassIDsOfStudent(userID)
		if err != nil {
			return nil, err
		}
		view.ClassCount = int64(len(ids))
	}

	if view.AssignmentsSubmitted, err = s.assignmentRepo.CountSubmissionsByUser(userID); err != nil {
		return nil, err
	}
	if view.QuizAttempts, err = s.attemptRepo.CountByUser(userID); err != nil {
		return nil, err
	}
	return view, nil
}

type UpdateProfileInput struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
}

func (s *AuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (s *AuthService) ChangePassword(userID uint, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return util.ErrPermissionDenied
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateFields(userID, map[string]interface{}{"password": string(hashed)})
}
