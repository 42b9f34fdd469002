package service

import (
	"time"

	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"
)

type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	classRepo    *repository.ClassRepository
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepository, classRepo *repository.ClassRepository) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo, classRepo: classRepo}
}

type EventInput struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	Date              string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	EventType         string `json:"eventType" binding:"omitempty,oneof=class assignment exam meeting other"`
	Location          string `json:"location"`
	ClassID           string `json:"classId"`
	IsRecurring       bool   `json:"isRecurring"`
	RecurrencePattern string `json:"recurrencePattern" binding:"omitempty,oneof=daily weekly monthly"`
	Color             string `json:"color"`
	Reminder          *bool  `json:"reminder"`
}

func (s *ScheduleService) CreateEvent(userID uint, input EventInput) (*model.ScheduleEvent, error) {
	date, err := time.ParseInLocation(util.DateFormat, input.Date, time.Local)
	if err != nil {
		return nil, err
	}

	e := &model.ScheduleEvent{
		UserID:            userID,
		ClassID:           input.ClassID,
		Title:             input.Title,
		Description:       input.Description,
		Date:              date,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		EventType:         input.EventType,
		Location:          input.Location,
		IsRecurring:       input.IsRecurring,
		RecurrencePattern: input.RecurrencePattern,
		Color:             input.Color,
		Reminder:          true,
	}
	if e.StartTime == "" {
		e.StartTime = "09:00"
	}
	if e.EndTime == "" {
		e.EndTime = "10:00"
	}
	if e.EventType == "" {
		e.EventType = "other"
	}
	if e.Color == "" {
		e.Color = "#6366f1"
	}
	if input.Reminder != nil {
		e.Reminder = *input.Reminder
	}

	if err := s.scheduleRepo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListEvents 查询用户日程。from / to 为空时返回全部。
func (s *ScheduleService) ListEvents(userID uint, from, to string) ([]model.ScheduleEvent, error) {
	var events []model.ScheduleEvent
	var err error

	if from != "" && to != "" {
		fromT, perr := time.ParseInLocation(util.DateFormat, from, time.Local)
		if perr != nil {
			return nil, perr
		}
		toT, perr := time.ParseInLocation(util.DateFormat, to, time.Local)
		if perr != nil {
			return nil, perr
		}
		// to 为闭区间日期，窗口右边界取次日零点
		events, err = s.scheduleRepo.ListByUserBetween(userID, fromT, toT.AddDate(0, 0, 1))
	} else {
		events, err = s.scheduleRepo.ListByUser(userID)
	}
	if err != nil {
		return nil, err
	}

	s.attachClassInfo(events)
	return events, nil
}

// TodayEvents 今天的日程
func (s *ScheduleService) TodayEvents(userID uint) ([]model.ScheduleEvent, error) {
	from, to := DayWindow(time.Now())
	events, err := s.scheduleRepo.ListByUserBetween(userID, from, to)
	if err != nil {
		return nil, err
	}
	s.attachClassInfo(events)
	return events, nil
}

// WeekEvents 本周（周一到周日）的日程
func (s *ScheduleService) WeekEvents(userID uint) ([]model.ScheduleEvent, error) {
	from, to := WeekWindow(time.Now())
	events, err := s.scheduleRepo.ListByUserBetween(userID, from, to)
	if err != nil {
		return nil, err
	}
	s.attachClassInfo(events)
	return events, nil
}

// DayWindow 返回 t 所在自然日的 [当日零点, 次日零点) 窗口
func DayWindow(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}

// WeekWindow 返回 t 所在周的 [周一, 下周一) 窗口
func WeekWindow(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日算本周最后一天
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	from := day.AddDate(0, 0, -(weekday - 1))
	return from, from.AddDate(0, 0, 7)
}

// attachClassInfo 补充事件关联班级的名称与颜色
func (s *ScheduleService) attachClassInfo(events []model.ScheduleEvent) {
	cache := map[string]*model.Class{}
	for i := range events {
		if events[i].ClassID == "" {
			continue
		}
		class, ok := cache[events[i].ClassID]
		if !ok {
			class, _ = s.classRepo.FindByID(events[i].ClassID)
			cache[events[i].ClassID] = class
		}
		if class != nil {
			events[i].ClassName = class.Name
			events[i].ClassColor = class.Color
		}
	}
}

func (s *ScheduleService) UpdateEvent(eventID string, userID uint, input EventInput) (*model.ScheduleEvent, error) {
	e, err := s.scheduleRepo.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	if e == nil || e.UserID != userID {
		return nil, util.ErrEventNotFound
	}

	if input.Title != "" {
		e.Title = input.Title
	}
	if input.Description != "" {
		e.Description = input.Description
	}
	if input.Date != "" {
		date, perr := time.ParseInLocation(util.DateFormat, input.Date, time.Local)
		if perr != nil {
			return nil, perr
		}
		e.Date = date
	}
	if input.StartTime != "" {
		e.StartTime = input.StartTime
	}
	if input.EndTime != "" {
		e.EndTime = input.EndTime
	}
	if input.EventType != "" {
		e.EventType = input.EventType
	}
	if input.Location != "" {
		e.Location = input.Location
	}
	if input.Color != "" {
		e.Color = input.Color
	}
	if input.Reminder != nil {
		e.Reminder = *input.Reminder
	}

	if err := s.scheduleRepo.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ScheduleService) DeleteEvent(eventID string, userID uint) error {
	e, err := s.scheduleRepo.FindByID(eventID)
	if err != nil {
		return err
	}
	if e == nil || e.UserID != userID {
		return util.ErrEventNotFound
	}
	return s.scheduleRepo.Delete(eventID)
}
