package model

import (
	"encoding/json"
	"time"
)

// QuizAttempt 一次测验提交的不可变记录。写入后不再更新，
// 删除只随所属测验级联发生。
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	QuizID         string          `gorm:"index;type:varchar(36)" json:"quizId"`
	UserID         uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	User           *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Answers        json.RawMessage `gorm:"type:json" json:"answers"` // []int，按题目顺序对齐
	CorrectCount   int             `gorm:"default:0" json:"correctCount"`
	TotalQuestions int             `gorm:"default:0" json:"totalQuestions"`
	Score          int             `gorm:"default:0" json:"score"` // 取整后的百分比
	Passed         bool            `gorm:"default:false" json:"passed"`
	AttemptNumber  int             `gorm:"default:1" json:"attemptNumber"`
	CompletedAt    time.Time       `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// AnswerList 解析 Answers 字段
func (a *QuizAttempt) AnswerList() []int {
	var answers []int
	if len(a.Answers) > 0 {
		_ = json.Unmarshal(a.Answers, &answers)
	}
	return answers
}
