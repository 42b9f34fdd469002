package service

import (
	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"
)

type CourseService struct {
	courseRepo   *repository.CourseRepository
	classService *ClassService
}

func NewCourseService(courseRepo *repository.CourseRepository, classService *ClassService) *CourseService {
	return &CourseService{courseRepo: courseRepo, classService: classService}
}

type CreateCourseInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsPublished bool   `json:"isPublished"`
}

func (s *CourseService) CreateCourse(classID string, userID uint, role model.UserRole, input CreateCourseInput) (*model.Course, error) {
	if _, err := s.classService.AuthorizeOwner(classID, userID, role); err != nil {
		return nil, err
	}

	course := &model.Course{
		ClassID:     classID,
		Title:       input.Title,
		Description: input.Description,
		Order:       input.Order,
		IsPublished: input.IsPublished,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses 学生只能看到已发布的课程与模块
func (s *CourseService) ListCourses(classID string, userID uint, role model.UserRole) ([]model.Course, error) {
	class, err := s.classService.AuthorizeMember(classID, userID, role)
	if err != nil {
		return nil, err
	}

	isOwner := role == model.Admin || class.TeacherID == userID
	courses, err := s.courseRepo.ListByClass(classID, !isOwner)
	if err != nil {
		return nil, err
	}

	if !isOwner {
		for i := range courses {
			courses[i].Modules = filterPublishedModules(courses[i].Modules)
		}
	}
	return courses, nil
}

func filterPublishedModules(modules []model.CourseModule) []model.CourseModule {
	out := make([]model.CourseModule, 0, len(modules))
	for _, m := range modules {
		if m.IsPublished {
			out = append(out, m)
		}
	}
	return out
}

func (s *CourseService) GetCourse(courseID string, userID uint, role model.UserRole) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	class, err := s.classService.AuthorizeMember(course.ClassID, userID, role)
	if err != nil {
		return nil, err
	}

	isOwner := role == model.Admin || class.TeacherID == userID
	if !isOwner {
		if !course.IsPublished {
			return nil, util.ErrCourseNotFound
		}
		course.Modules = filterPublishedModules(course.Modules)
	}
	return course, nil
}

type UpdateCourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       *int   `json:"order"`
	IsPublished *bool  `json:"isPublished"`
}

func (s *CourseService) UpdateCourse(courseID string, userID uint, role model.UserRole, input UpdateCourseInput) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}
	if _, err := s.classService.AuthorizeOwner(course.ClassID, userID, role); err != nil {
		return nil, err
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Order != nil {
		course.Order = *input.Order
	}
	if input.IsPublished != nil {
		course.IsPublished = *input.IsPublished
	}

	course.Modules = nil
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	return s.courseRepo.FindByID(courseID)
}

func (s *CourseService) DeleteCourse(courseID string, userID uint, role model.UserRole) error {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return util.ErrCourseNotFound
	}
	if _, err := s.classService.AuthorizeOwner(course.ClassID, userID, role); err != nil {
		return err
	}
	return s.courseRepo.Delete(courseID)
}

type ModuleInput struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	ContentType string `json:"contentType" binding:"omitempty,oneof=text video file document quiz"`
	MediaURL    string `json:"mediaUrl"`
	QuizID      string `json:"quizId"`
	Duration    int    `json:"duration"`
	Order       int    `json:"order"`
	IsPublished bool   `json:"isPublished"`
}

func (s *CourseService) AddModule(courseID string, userID uint, role model.UserRole, input ModuleInput) (*model.CourseModule, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}
	if _, err := s.classService.AuthorizeOwner(course.ClassID, userID, role); err != nil {
		return nil, err
	}

	mod := &model.CourseModule{
		CourseID:    courseID,
		Title:       input.Title,
		Content:     input.Content,
		ContentType: input.ContentType,
		MediaURL:    input.MediaURL,
		QuizID:      input.QuizID,
		Duration:    input.Duration,
		Order:       input.Order,
		IsPublished: input.IsPublished,
	}
	if mod.ContentType == "" {
		mod.ContentType = "text"
	}
	if err := s.courseRepo.CreateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

type UpdateModuleInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"contentType" binding:"omitempty,oneof=text video file document quiz"`
	MediaURL    string `json:"mediaUrl"`
	QuizID      string `json:"quizId"`
	Duration    *int   `json:"duration"`
	Order       *int   `json:"order"`
	IsPublished *bool  `json:"isPublished"`
}

func (s *CourseService) UpdateModule(moduleID string, userID uint, role model.UserRole, input UpdateModuleInput) (*model.CourseModule, error) {
	mod, course, err := s.findModuleWithCourse(moduleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.classService.AuthorizeOwner(course.ClassID, userID, role); err != nil {
		return nil, err
	}

	if input.Title != "" {
		mod.Title = input.Title
	}
	if input.Content != "" {
		mod.Content = input.Content
	}
	if input.ContentType != "" {
		mod.ContentType = input.ContentType
	}
	if input.MediaURL != "" {
		mod.MediaURL = input.MediaURL
	}
	if input.QuizID != "" {
		mod.QuizID = input.QuizID
	}
	if input.Duration != nil {
		mod.Duration = *input.Duration
	}
	if input.Order != nil {
		mod.Order = *input.Order
	}
	if input.IsPublished != nil {
		mod.IsPublished = *input.IsPublished
	}

	if err := s.courseRepo.UpdateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *CourseService) DeleteModule(moduleID string, userID uint, role model.UserRole) error {
	_, course, err := s.findModuleWithCourse(moduleID)
	if err != nil {
		return err
	}
	if _, err := s.classService.AuthorizeOwner(course.ClassID, userID, role); err != nil {
		return err
	}
	return s.courseRepo.DeleteModule(moduleID)
}

func (s *CourseService) findModuleWithCourse(moduleID string) (*model.CourseModule, *model.Course, error) {
	mod, err := s.courseRepo.FindModuleByID(moduleID)
	if err != nil {
		return nil, nil, err
	}
	if mod == nil {
		return nil, nil, util.ErrModuleNotFound
	}
	course, err := s.courseRepo.FindByID(mod.CourseID)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, util.ErrCourseNotFound
	}
	return mod, course, nil
}
