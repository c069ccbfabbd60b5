package services

import (
	"time"

	"github.com/terraincognita07/intakedesk/internal/models"
	"github.com/terraincognita07/intakedesk/internal/optional"
)

type ProfileRepository interface {
	FindByUser(userID uint) (models.PatientProfile, bool, error)
	Upsert(userID uint, merge func(profile *models.PatientProfile, exists bool) error) (models.PatientProfile, error)
}

// ProfileInput is a partial questionnaire. Omitted fields keep their stored
// value, null clears them.
type ProfileInput struct {
	LastDentalVisit       optional.Value[string] `json:"last_dental_visit"`
	DentalConcerns        optional.Value[string] `json:"dental_concerns"`
	CurrentMedications    optional.Value[string] `json:"current_medications"`
	Allergies             optional.Value[string] `json:"allergies"`
	DentalHistory         optional.Value[string] `json:"dental_history"`
	PainLevel             optional.Value[int]    `json:"pain_level"`
	InsuranceProvider     optional.Value[string] `json:"insurance_provider"`
	EmergencyContactName  optional.Value[string] `json:"emergency_contact_name"`
	EmergencyContactPhone optional.Value[string] `json:"emergency_contact_phone"`
}

type ProfileService struct {
	profiles ProfileRepository
	now      func() time.Time
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles, now: time.Now}
}

func (service *ProfileService) Get(ownerID uint) (models.PatientProfile, error) {
	profile, found, err := service.profiles.FindByUser(ownerID)
	if err != nil {
		return models.PatientProfile{}, err
	}
	if !found {
		return models.PatientProfile{}, ErrProfileNotFound
	}
	return profile, nil
}

func (service *ProfileService) Upsert(ownerID uint, input ProfileInput) (models.PatientProfile, error) {
	if err := ValidateProfileInput(input); err != nil {
		return models.PatientProfile{}, err
	}

	return service.profiles.Upsert(ownerID, func(profile *models.PatientProfile, exists bool) error {
		applyProfileInput(profile, input)
		if exists {
			updatedAt := service.now().UTC()
			profile.UpdatedAt = &updatedAt
		}
		return nil
	})
}

func ValidateProfileInput(input ProfileInput) error {
	if painLevel, ok := input.PainLevel.Get(); ok {
		if painLevel < models.MinPainLevel || painLevel > models.MaxPainLevel {
			return ErrPainLevelOutOfRange
		}
	}
	return nil
}

func applyProfileInput(profile *models.PatientProfile, input ProfileInput) {
	input.LastDentalVisit.Apply(&profile.LastDentalVisit)
	input.DentalConcerns.Apply(&profile.DentalConcerns)
	input.CurrentMedications.Apply(&profile.CurrentMedications)
	input.Allergies.Apply(&profile.Allergies)
	input.DentalHistory.Apply(&profile.DentalHistory)
	input.PainLevel.Apply(&profile.PainLevel)
	input.InsuranceProvider.Apply(&profile.InsuranceProvider)
	input.EmergencyContactName.Apply(&profile.EmergencyContactName)
	input.EmergencyContactPhone.Apply(&profile.EmergencyContactPhone)
}
