package model

import (
	"encoding/json"
	"time"
)

// Problem 开放式编程题，提交后由 AI 按评分标准打分
// swagger:model Problem
type Problem struct {
	UUIDBase
	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	GradingCriteria string          `gorm:"type:text" json:"gradingCriteria,omitempty"` // 学生端不可见
	MaxScore        int             `gorm:"default:100" json:"maxScore"`
	Difficulty      string          `gorm:"size:20;default:'medium'" json:"difficulty"` // easy, medium, hard
	Tags            json.RawMessage `gorm:"type:json" json:"tags"`
	IsPublished     bool            `gorm:"default:true" json:"isPublished"`
	CreatedBy       uint            `gorm:"type:bigint unsigned" json:"createdBy"`
}

func (Problem) TableName() string {
	return "problems"
}

const (
	ProblemStatusPending = "pending"
	ProblemStatusGrading = "grading"
	ProblemStatusGraded  = "graded"
	ProblemStatusError   = "error"
)

// ProblemSubmission 每个 (problem, user) 只保留一条记录，重交覆盖。
// 评分完成前 status 为 grading，AI 调用失败时标记 error 但保留提交。
// swagger:model ProblemSubmission
type ProblemSubmission struct {
	UUIDBase
	ProblemID      string     `gorm:"index;type:varchar(36)" json:"problemId"`
	UserID         uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StudentName    string     `gorm:"size:100" json:"studentName"`
	SubmissionText string     `gorm:"type:mediumtext" json:"submissionText"`
	Language       string     `gorm:"size:30;default:'none'" json:"language"`
	Status         string     `gorm:"size:20;default:'pending'" json:"status"`
	Score          *int       `json:"score,omitempty"`
	Feedback       string     `gorm:"type:text" json:"feedback"`
	SubmittedAt    time.Time  `json:"submittedAt"`
	GradedAt       *time.Time `json:"gradedAt,omitempty"`
}

func (ProblemSubmission) TableName() string {
	return "problem_submissions"
}
