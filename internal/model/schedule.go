package model

import "time"

// swagger:model ScheduleEvent
type ScheduleEvent struct {
	UUIDBase
	UserID            uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	ClassID           string    `gorm:"size:36" json:"classId,omitempty"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Description       string    `gorm:"type:text" json:"description"`
	Date              time.Time `gorm:"index" json:"date"`
	StartTime         string    `gorm:"size:5;default:'09:00'" json:"startTime"`
	EndTime           string    `gorm:"size:5;default:'10:00'" json:"endTime"`
	EventType         string    `gorm:"size:20;default:'other'" json:"eventType"` // class, assignment, exam, meeting, other
	Location          string    `gorm:"size:255" json:"location"`
	IsRecurring       bool      `gorm:"default:false" json:"isRecurring"`
	RecurrencePattern string    `gorm:"size:20" json:"recurrencePattern,omitempty"`
	Color             string    `gorm:"size:20;default:'#6366f1'" json:"color"`
	Reminder          bool      `gorm:"default:true" json:"reminder"`

	// 查询时补充的班级信息，不落库
	ClassName  string `gorm:"-" json:"className,omitempty"`
	ClassColor string `gorm:"-" json:"classColor,omitempty"`
}

func (ScheduleEvent) TableName() string {
	return "schedule_events"
}
