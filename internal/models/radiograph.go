package models

import "time"

type Radiograph struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           uint   `gorm:"not null;index"`
	Filename         string `gorm:"not null;uniqueIndex"`
	OriginalFilename string `gorm:"not null"`
	FilePath         string `gorm:"not null"`
	FileSize         int64  `gorm:"not null"`
	Description      *string
	UploadDate       time.Time `gorm:"not null"`
}
