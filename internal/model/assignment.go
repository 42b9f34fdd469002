package model

import (
	"encoding/json"
	"time"
)

// swagger:model Assignment
type Assignment struct {
	UUIDBase
	ClassID        string          `gorm:"index;type:varchar(36)" json:"classId"`
	CourseID       string          `gorm:"size:36" json:"courseId,omitempty"`
	Title          string          `gorm:"size:255;not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	Instructions   string          `gorm:"type:text" json:"instructions"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	Points         int             `gorm:"default:100" json:"points"`
	SubmissionType string          `gorm:"size:20;default:'file'" json:"submissionType"` // file, text, link
	Attachments    json.RawMessage `gorm:"type:json" json:"attachments"`
	IsPublished    bool            `gorm:"default:false" json:"isPublished"`
	CreatedBy      uint            `gorm:"type:bigint unsigned" json:"createdBy"`
}

func (Assignment) TableName() string {
	return "assignments"
}

const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// swagger:model AssignmentSubmission
type AssignmentSubmission struct {
	UUIDBase
	AssignmentID string          `gorm:"index;type:varchar(36)" json:"assignmentId"`
	UserID       uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content      string          `gorm:"type:text" json:"content"`
	Attachments  json.RawMessage `gorm:"type:json" json:"attachments"`
	SubmittedAt  time.Time       `json:"submittedAt"`
	Grade        *int            `json:"grade,omitempty"`
	Feedback     string          `gorm:"type:text" json:"feedback"`
	GradedBy     uint            `gorm:"type:bigint unsigned" json:"gradedBy,omitempty"`
	GradedAt     *time.Time      `json:"gradedAt,omitempty"`
	Status       string          `gorm:"size:20;default:'submitted'" json:"status"`
	IsLate       bool            `gorm:"default:false" json:"isLate"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}
