package models

import "time"

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;index"`
	AppointmentDate time.Time `gorm:"not null"`
	AppointmentType string    `gorm:"not null"`
	Status          string    `gorm:"not null;default:scheduled"`
	Notes           *string
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       *time.Time `gorm:"autoUpdateTime:false"`
}
