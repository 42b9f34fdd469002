package repository

import (
	"errors"

	"classhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("course_modules.order ASC, course_modules.created_at ASC")
	}).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &course, err
}

func (r *CourseRepository) ListByClass(classID string, publishedOnly bool) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Where("class_id = ?", classID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("course_modules.order ASC, course_modules.created_at ASC")
	}).Order("courses.order ASC, courses.created_at ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseModule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

func (r *CourseRepository) CreateModule(mod *model.CourseModule) error {
	return r.DB.Create(mod).Error
}

func (r *CourseRepository) FindModuleByID(id string) (*model.CourseModule, error) {
	var mod model.CourseModule
	err := r.DB.First(&mod, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &mod, err
}

func (r *CourseRepository) UpdateModule(mod *model.CourseModule) error {
	return r.DB.Save(mod).Error
}

func (r *CourseRepository) DeleteModule(id string) error {
	return r.DB.Delete(&model.CourseModule{}, "id = ?", id).Error
}
