package service

import (
	"context"
	"fmt"
	"time"

	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type ClassService struct {
	classRepo *repository.ClassRepository
	userRepo  *repository.UserRepository
	rdb       *redis.Client // 可为 nil，此时不启用成员关系缓存
}

func NewClassService(classRepo *repository.ClassRepository, userRepo *repository.UserRepository, rdb *redis.Client) *ClassService {
	return &ClassService{classRepo: classRepo, userRepo: userRepo, rdb: rdb}
}

const memberCacheTTL = 5 * time.Minute

func memberCacheKey(classID string, userID uint) string {
	return fmt.Sprintf("classhub:member:%s:%d", classID, userID)
}

// isStudentCached 成员关系查询，Redis 可用时带短期缓存，成员变动时主动失效
func (s *ClassService) isStudentCached(classID string, userID uint) (bool, error) {
	if s.rdb != nil {
		if val, err := s.rdb.Get(context.Background(), memberCacheKey(classID, userID)).Result(); err == nil {
			return val == "1", nil
		}
	}

	joined, err := s.classRepo.IsStudent(classID, userID)
	if err != nil {
		return false, err
	}

	if s.rdb != nil {
		val := "0"
		if joined {
			val = "1"
		}
		s.rdb.Set(context.Background(), memberCacheKey(classID, userID), val, memberCacheTTL)
	}
	return joined, nil
}

func (s *ClassService) invalidateMemberCache(classID string, userID uint) {
	if s.rdb != nil {
		s.rdb.Del(context.Background(), memberCacheKey(classID, userID))
	}
}

type CreateClassInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	Color       string `json:"color"`
}

// CreateClass 创建班级并生成唯一邀请码
func (s *ClassService) CreateClass(teacherID uint, input CreateClassInput) (*model.Class, error) {
	code, err := s.uniqueCode()
	if err != nil {
		return nil, err
	}

	class := &model.Class{
		Name:        input.Name,
		Code:        code,
		Description: input.Description,
		CoverImage:  input.CoverImage,
		Color:       input.Color,
		TeacherID:   teacherID,
		CreatedBy:   teacherID,
		IsActive:    true,
	}
	if class.Color == "" {
		class.Color = "#6366f1"
	}

	if err := s.classRepo.Create(class); err != nil {
		return nil, err
	}
	zap.L().Info("class created", zap.String("classID", class.ID), zap.Uint("teacherID", teacherID))
	return class, nil
}

// ClassIDsForUser 返回用户关联的班级 ID 集合（老师为创建的，学生为加入的）
func (s *ClassService) ClassIDsForUser(userID uint, role model.UserRole) ([]string, error) {
	if role == model.Teacher || role == model.Admin {
		classes, err := s.classRepo.ListByTeacher(userID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(classes))
		for _, c := range classes {
			ids = append(ids, c.ID)
		}
		return ids, nil
	}
	return s.classRepo.ClassIDsOfStudent(userID)
}

// uniqueCode 生成未被占用的邀请码，碰撞时重试
func (s *ClassService) uniqueCode() (string, error) {
	for i := 0; i < 5; i++ {
		code := util.RandomCode(util.ClassCodeLength)
		existing, err := s.classRepo.FindByCode(code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	// 连续碰撞的概率可以忽略，加长一位再试一次
	return util.RandomCode(util.ClassCodeLength + 1), nil
}

// ClassView 附带成员数量的班级视图
type ClassView struct {
	model.Class
	StudentCount int64 `json:"studentCount"`
}

// ListClasses 老师看自己创建的班级，学生看自己加入的班级
func (s *ClassService) ListClasses(userID uint, role model.UserRole) ([]ClassView, error) {
	var classes []model.Class
	var err error

	switch role {
	case model.Teacher, model.Admin:
		classes, err = s.classRepo.ListByTeacher(userID)
	default:
		classes, err = s.classRepo.ListByStudent(userID)
	}
	if err != nil {
		return nil, err
	}

	views := make([]ClassView, 0, len(classes))
	for _, class := range classes {
		count, err := s.classRepo.CountStudents(class.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, ClassView{Class: class, StudentCount: count})
	}
	return views, nil
}

func (s *ClassService) ListAllClasses(page, limit int) ([]model.Class, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.classRepo.ListAll((page-1)*limit, limit)
}

// ClassDetail 班级详情，含老师与成员列表
type ClassDetail struct {
	model.Class
	Students []model.UserBrief `json:"students"`
}

// GetClass 获取班级详情。学生必须已加入班级才能查看。
func (s *ClassService) GetClass(classID string, userID uint, role model.UserRole) (*ClassDetail, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, util.ErrClassNotFound
	}

	if err := s.authorizeMember(class, userID, role); err != nil {
		return nil, err
	}

	ids, err := s.classRepo.StudentIDs(classID)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	students := make([]model.UserBrief, 0, len(users))
	for i := range users {
		students = append(students, users[i].Brief())
	}

	return &ClassDetail{Class: *class, Students: students}, nil
}

// authorizeMember 班级访问控制：老师本人、管理员或已加入的学生
func (s *ClassService) authorizeMember(class *model.Class, userID uint, role model.UserRole) error {
	if role == model.Admin || class.TeacherID == userID {
		return nil
	}
	joined, err := s.isStudentCached(class.ID, userID)
	if err != nil {
		return err
	}
	if !joined {
		return util.ErrPermissionDenied
	}
	return nil
}

// AuthorizeMember 供其他 service 复用的班级成员校验
func (s *ClassService) AuthorizeMember(classID string, userID uint, role model.UserRole) (*model.Class, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, util.ErrClassNotFound
	}
	if err := s.authorizeMember(class, userID, role); err != nil {
		return nil, err
	}
	return class, nil
}

// AuthorizeOwner 仅班级老师本人或管理员
func (s *ClassService) AuthorizeOwner(classID string, userID uint, role model.UserRole) (*model.Class, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, util.ErrClassNotFound
	}
	if role != model.Admin && class.TeacherID != userID {
		return nil, util.ErrPermissionDenied
	}
	return class, nil
}

type UpdateClassInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	Color       string `json:"color"`
	TeacherID   *uint  `json:"teacherId"` // 仅管理员可转移班级归属
}

func (s *ClassService) UpdateClass(classID string, userID uint, role model.UserRole, input UpdateClassInput) (*model.Class, error) {
	class, err := s.AuthorizeOwner(classID, userID, role)
	if err != nil {
		return nil, err
	}

	if input.TeacherID != nil && *input.TeacherID != class.TeacherID {
		if role != model.Admin {
			return nil, util.ErrPermissionDenied
		}
		newTeacher, err := s.userRepo.FindByID(*input.TeacherID)
		if err != nil {
			return nil, err
		}
		if newTeacher == nil || newTeacher.Role != model.Teacher {
			return nil, util.ErrNotTeacher
		}
		class.TeacherID = *input.TeacherID
	}

	if input.Name != "" {
		class.Name = input.Name
	}
	if input.Description != "" {
		class.Description = input.Description
	}
	if input.CoverImage != "" {
		class.CoverImage = input.CoverImage
	}
	if input.Color != "" {
		class.Color = input.Color
	}

	if err := s.classRepo.Update(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) DeleteClass(classID string, userID uint, role model.UserRole) error {
	if _, err := s.AuthorizeOwner(classID, userID, role); err != nil {
		return err
	}
	return s.classRepo.Delete(classID)
}

// AssignStudents 管理员批量把学生加入班级。非学生账号与已在班的成员会被跳过，
// 返回实际加入的人数。
func (s *ClassService) AssignStudents(classID string, userIDs []uint) (int, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		return 0, err
	}
	if class == nil {
		return 0, util.ErrClassNotFound
	}

	added := 0
	for _, uid := range userIDs {
		user, err := s.userRepo.FindByID(uid)
		if err != nil {
			return added, err
		}
		if user == nil || user.Role != model.Student {
			continue
		}
		joined, err := s.classRepo.IsStudent(classID, uid)
		if err != nil {
			return added, err
		}
		if joined {
			continue
		}
		if err := s.classRepo.AddStudent(classID, uid); err != nil {
			return added, err
		}
		s.invalidateMemberCache(classID, uid)
		added++
	}
	zap.L().Info("students assigned to class",
		zap.String("classID", classID), zap.Int("added", added))
	return added, nil
}

// JoinByCode 学生凭邀请码加入班级，重复加入视为成功
func (s *ClassService) JoinByCode(code string, userID uint) (*model.Class, error) {
	class, err := s.classRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, util.ErrClassNotFound
	}

	joined, err := s.classRepo.IsStudent(class.ID, userID)
	if err != nil {
		return nil, err
	}
	if joined {
		return class, nil
	}

	if err := s.classRepo.AddStudent(class.ID, userID); err != nil {
		return nil, err
	}
	s.invalidateMemberCache(class.ID, userID)
	zap.L().Info("student joined class", zap.String("classID", class.ID), zap.Uint("userID", userID))
	return class, nil
}

// RemoveStudent 老师将学生移出班级
func (s *ClassService) RemoveStudent(classID string, studentID uint, operatorID uint, role model.UserRole) error {
	if _, err := s.AuthorizeOwner(classID, operatorID, role); err != nil {
		return err
	}
	if err := s.classRepo.RemoveStudent(classID, studentID); err != nil {
		return err
	}
	s.invalidateMemberCache(classID, studentID)
	return nil
}

// LeaveClass 学生自行退出班级
func (s *ClassService) LeaveClass(classID string, userID uint) error {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		return err
	}
	if class == nil {
		return util.ErrClassNotFound
	}
	if err := s.classRepo.RemoveStudent(classID, userID); err != nil {
		return err
	}
	s.invalidateMemberCache(classID, userID)
	return nil
}
