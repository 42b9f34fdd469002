package model

// swagger:model Class
type Class struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	Code        string `gorm:"size:10;unique;not null" json:"code"`
	Description string `gorm:"type:text" json:"description"`
	CoverImage  string `gorm:"size:255" json:"coverImage"`
	Color       string `gorm:"size:20;default:'#6366f1'" json:"color"`
	TeacherID   uint   `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Teacher     *User  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	CreatedBy   uint   `gorm:"type:bigint unsigned" json:"createdBy"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (Class) TableName() string {
	return "classes"
}

// ClassStudent 班级与学生的关联记录，(class_id, user_id) 唯一
type ClassStudent struct {
	BaseModel
	ClassID string `gorm:"index;uniqueIndex:idx_class_user;type:varchar(36)" json:"classId"`
	UserID  uint   `gorm:"uniqueIndex:idx_class_user;type:bigint unsigned" json:"userId"`
}

func (ClassStudent) TableName() string {
	return "class_students"
}
