package model

import "encoding/json"

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	ClassID      string         `gorm:"index;type:varchar(36)" json:"classId"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	TimeLimit    int            `gorm:"default:0" json:"timeLimit"`      // 分钟，0 表示不限时
	PassingScore int            `gorm:"default:60" json:"passingScore"`  // 百分比阈值
	MaxAttempts  int            `gorm:"default:1" json:"maxAttempts"`    // 每人最多提交次数
	IsPublished  bool           `gorm:"default:false" json:"isPublished"`
	CreatedBy    uint           `gorm:"type:bigint unsigned" json:"createdBy"`
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion 测验题目。Position 决定展示与判分顺序，答案按下标对齐。
// CorrectAnswer 永远不直接序列化给学生端，见 service 层的视图构造。
type QuizQuestion struct {
	UUIDBase
	QuizID        string          `gorm:"index;type:varchar(36)" json:"quizId"`
	Text          string          `gorm:"type:text;not null" json:"text"`
	Options       json.RawMessage `gorm:"type:json" json:"options"` // []string
	CorrectAnswer int             `gorm:"default:0" json:"correctAnswer"`
	Position      int             `gorm:"default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// OptionList 解析 Options 字段，解析失败时返回空列表
func (q *QuizQuestion) OptionList() []string {
	var opts []string
	if len(q.Options) > 0 {
		_ = json.Unmarshal(q.Options, &opts)
	}
	return opts
}
