package model

// MediaFile 上传文件的元数据记录，实际内容存放在对象存储
// swagger:model MediaFile
type MediaFile struct {
	UUIDBase
	UserID    uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	URL       string `gorm:"size:500;not null" json:"url"`
	ObjectKey string `gorm:"size:255;index;not null" json:"objectKey"`
	Filename  string `gorm:"size:255" json:"filename"`
	FileType  string `gorm:"size:20;default:'image'" json:"fileType"` // image, video, document
	MimeType  string `gorm:"size:100" json:"mimeType"`
	Size      int64  `gorm:"default:0" json:"size"`
	Width     int    `gorm:"default:0" json:"width,omitempty"`
	Height    int    `gorm:"default:0" json:"height,omitempty"`
	Duration  int    `gorm:"default:0" json:"duration,omitempty"` // 视频时长（秒）
	Folder    string `gorm:"size:100;default:'general'" json:"folder"`
}

func (MediaFile) TableName() string {
	return "media_files"
}
