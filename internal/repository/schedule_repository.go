package repository

import (
	"errors"
	"time"

	"classhub_backend/internal/model"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func (r *ScheduleRepository) Create(e *model.ScheduleEvent) error {
	return r.DB.Create(e).Error
}

func (r *ScheduleRepository) FindByID(id string) (*model.ScheduleEvent, error) {
	var e model.ScheduleEvent
	err := r.DB.First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

// ListByUserBetween 查询用户在时间窗口内的日程，按日期与开始时间排序
func (r *ScheduleRepository) ListByUserBetween(userID uint, from, to time.Time) ([]model.ScheduleEvent, error) {
	var events []model.ScheduleEvent
	err := r.DB.Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, start_time ASC").Find(&events).Error
	return events, err
}

func (r *ScheduleRepository) ListByUser(userID uint) ([]model.ScheduleEvent, error) {
	var events []model.ScheduleEvent
	err := r.DB.Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").Find(&events).Error
	return events, err
}

func (r *ScheduleRepository) Update(e *model.ScheduleEvent) error {
	return r.DB.Save(e).Error
}

func (r *ScheduleRepository) Delete(id string) error {
	return r.DB.Delete(&model.ScheduleEvent{}, "id = ?", id).Error
}
