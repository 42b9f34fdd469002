package model

// swagger:model Course
type Course struct {
	UUIDBase
	ClassID     string         `gorm:"index;type:varchar(36)" json:"classId"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Order       int            `gorm:"default:0" json:"order"`
	IsPublished bool           `gorm:"default:false" json:"isPublished"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID" json:"modules"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule 课程下的教学单元，content_type 决定 content/media_url 的含义
type CourseModule struct {
	UUIDBase
	CourseID    string `gorm:"index;type:varchar(36)" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Content     string `gorm:"type:text" json:"content"`
	ContentType string `gorm:"size:20;default:'text'" json:"contentType"` // text, video, file, document, quiz
	MediaURL    string `gorm:"size:500" json:"mediaUrl"`
	QuizID      string `gorm:"size:36" json:"quizId,omitempty"`
	Duration    int    `gorm:"default:0" json:"duration"` // 秒
	Order       int    `gorm:"default:0" json:"order"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
