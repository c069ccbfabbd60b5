package models

import "time"

const (
	MinPainLevel = 1
	MaxPainLevel = 10
)

// PatientProfile holds the intake questionnaire answers. A user has at most one.
type PatientProfile struct {
	ID                    uint `gorm:"primaryKey"`
	UserID                uint `gorm:"not null;uniqueIndex"`
	LastDentalVisit       *string
	DentalConcerns        *string
	CurrentMedications    *string
	Allergies             *string
	DentalHistory         *string
	PainLevel             *int
	InsuranceProvider     *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	CreatedAt             time.Time  `gorm:"not null"`
	UpdatedAt             *time.Time `gorm:"autoUpdateTime:false"`
}
