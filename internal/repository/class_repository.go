package repository

import (
	"errors"

	"classhub_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) FindByID(id string) (*model.Class, error) {
	var class model.Class
	err := r.DB.Preload("Teacher").First(&class, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &class, err
}

func (r *ClassRepository) FindByCode(code string) (*model.Class, error) {
	var class model.Class
	err := r.DB.Where("code = ? AND is_active = ?", code, true).First(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &class, err
}

func (r *ClassRepository) ListByTeacher(teacherID uint) ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.Where("teacher_id = ? AND is_active = ?", teacherID, true).
		Order("created_at DESC").Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) ListByStudent(userID uint) ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.Joins("JOIN class_students ON class_students.class_id = classes.id").
		Where("class_students.user_id = ? AND classes.is_active = ?", userID, true).
		Preload("Teacher").
		Order("classes.created_at DESC").Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) ListAll(offset, limit int) ([]model.Class, int64, error) {
	var classes []model.Class
	var total int64
	query := r.DB.Model(&model.Class{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Teacher").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&classes).Error
	return classes, total, err
}

func (r *ClassRepository) Update(class *model.Class) error {
	return r.DB.Save(class).Error
}

func (r *ClassRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&model.ClassStudent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Class{}, "id = ?", id).Error
	})
}

// IsStudent 判断用户是否已加入班级
func (r *ClassRepository) IsStudent(classID string, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassStudent{}).
		Where("class_id = ? AND user_id = ?", classID, userID).Count(&count).Error
	return count > 0, err
}

func (r *ClassRepository) AddStudent(classID string, userID uint) error {
	return r.DB.Create(&model.ClassStudent{ClassID: classID, UserID: userID}).Error
}

func (r *ClassRepository) RemoveStudent(classID string, userID uint) error {
	return r.DB.Where("class_id = ? AND user_id = ?", classID, userID).
		Delete(&model.ClassStudent{}).Error
}

func (r *ClassRepository) StudentIDs(classID string) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.ClassStudent{}).
		Where("class_id = ?", classID).Order("created_at").Pluck("user_id", &ids).Error
	return ids, err
}

func (r *ClassRepository) CountStudents(classID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ClassStudent{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}

func (r *ClassRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Class{}).Count(&count).Error
	return count, err
}

// ClassIDsOfStudent 返回学生加入的全部班级 ID
func (r *ClassRepository) ClassIDsOfStudent(userID uint) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.ClassStudent{}).
		Where("user_id = ?", userID).Pluck("class_id", &ids).Error
	return ids, err
}

// RemoveStudentEverywhere 将学生从全部班级中移除，用于注销账号
func (r *ClassRepository) RemoveStudentEverywhere(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.ClassStudent{}).Error
}
