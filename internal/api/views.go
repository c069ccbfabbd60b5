package api

import (
	"time"

	"github.com/terraincognita07/intakedesk/internal/models"
)

type userView struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(user models.User) userView {
	return userView{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

type tokenView struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type profileView struct {
	ID                    uint       `json:"id"`
	UserID                uint       `json:"user_id"`
	LastDentalVisit       *string    `json:"last_dental_visit"`
	DentalConcerns        *string    `json:"dental_concerns"`
	CurrentMedications    *string    `json:"current_medications"`
	Allergies             *string    `json:"allergies"`
	DentalHistory         *string    `json:"dental_history"`
	PainLevel             *int       `json:"pain_level"`
	InsuranceProvider     *string    `json:"insurance_provider"`
	EmergencyContactName  *string    `json:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at"`
}

func newProfileView(profile models.PatientProfile) profileView {
	return profileView{
		ID:                    profile.ID,
		UserID:                profile.UserID,
		LastDentalVisit:       profile.LastDentalVisit,
		DentalConcerns:        profile.DentalConcerns,
		CurrentMedications:    profile.CurrentMedications,
		Allergies:             profile.Allergies,
		DentalHistory:         profile.DentalHistory,
		PainLevel:             profile.PainLevel,
		InsuranceProvider:     profile.InsuranceProvider,
		EmergencyContactName:  profile.EmergencyContactName,
		EmergencyContactPhone: profile.EmergencyContactPhone,
		CreatedAt:             profile.CreatedAt,
		UpdatedAt:             profile.UpdatedAt,
	}
}

type appointmentView struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"user_id"`
	AppointmentDate time.Time  `json:"appointment_date"`
	AppointmentType string     `json:"appointment_type"`
	Notes           *string    `json:"notes"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func newAppointmentView(appointment models.Appointment) appointmentView {
	return appointmentView{
		ID:              appointment.ID,
		UserID:          appointment.UserID,
		AppointmentDate: appointment.AppointmentDate.UTC(),
		AppointmentType: appointment.AppointmentType,
		Notes:           appointment.Notes,
		Status:          appointment.Status,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}
}

func newAppointmentViews(appointments []models.Appointment) []appointmentView {
	views := make([]appointmentView, 0, len(appointments))
	for _, appointment := range appointments {
		views = append(views, newAppointmentView(appointment))
	}
	return views
}

type radiographView struct {
	ID               uint      `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	UploadDate       time.Time `json:"upload_date"`
	Description      *string   `json:"description"`
}

func newRadiographViews(radiographs []models.Radiograph) []radiographView {
	views := make([]radiographView, 0, len(radiographs))
	for _, radiograph := range radiographs {
		views = append(views, radiographView{
			ID:               radiograph.ID,
			Filename:         radiograph.Filename,
			OriginalFilename: radiograph.OriginalFilename,
			FileSize:         radiograph.FileSize,
			UploadDate:       radiograph.UploadDate,
			Description:      radiograph.Description,
		})
	}
	return views
}
