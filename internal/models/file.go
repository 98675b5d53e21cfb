package models

import "time"

// File is an uploaded asset, currently only field images.
type File struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Path        string    `gorm:"column:path;not null" json:"-"`
	URL         string    `gorm:"column:url;not null" json:"url"`
	Size        int64     `gorm:"column:size" json:"size"`
	ContentType string    `gorm:"column:content_type" json:"content_type"`
	UploadedBy  uint      `gorm:"column:uploaded_by" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (File) TableName() string {
	return "files"
}
