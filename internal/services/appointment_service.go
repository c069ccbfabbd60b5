package services

import (
	"time"

	"github.com/terraincognita07/intakedesk/internal/models"
)

type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	ListByUser(userID uint) ([]models.Appointment, error)
	FindByUserAndID(userID uint, appointmentID uint) (models.Appointment, bool, error)
	UpdateOwned(userID uint, appointmentID uint, mutate func(appointment *models.Appointment) error) (models.Appointment, bool, error)
	SetStatusByUserAndID(userID uint, appointmentID uint, status string, updatedAt time.Time) (bool, error)
}

type AppointmentService struct {
	appointments AppointmentRepository
	location     *time.Location
	now          func() time.Time
}

func NewAppointmentService(appointments AppointmentRepository, location *time.Location) *AppointmentService {
	if location == nil {
		location = time.UTC
	}
	return &AppointmentService{appointments: appointments, location: location, now: time.Now}
}

// SetClock replaces the time source used for the future-date check.
func (service *AppointmentService) SetClock(now func() time.Time) {
	if now != nil {
		service.now = now
	}
}

func (service *AppointmentService) Book(ownerID uint, input AppointmentInput) (models.Appointment, error) {
	normalized, err := normalizeAppointmentInput(input, service.location)
	if err != nil {
		return models.Appointment{}, err
	}
	if !normalized.Date.After(service.now()) {
		return models.Appointment{}, ErrAppointmentNotInFuture
	}

	appointment := models.Appointment{
		UserID:          ownerID,
		AppointmentDate: normalized.Date,
		AppointmentType: normalized.Type,
		Status:          models.AppointmentScheduled,
		Notes:           normalized.Notes,
	}
	if err := service.appointments.Create(&appointment); err != nil {
		return models.Appointment{}, err
	}
	return appointment, nil
}

func (service *AppointmentService) List(ownerID uint) ([]models.Appointment, error) {
	return service.appointments.ListByUser(ownerID)
}

func (service *AppointmentService) Get(ownerID uint, appointmentID uint) (models.Appointment, error) {
	appointment, found, err := service.appointments.FindByUserAndID(ownerID, appointmentID)
	if err != nil {
		return models.Appointment{}, err
	}
	if !found {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	return appointment, nil
}

// Update overwrites date, type and notes. The future-date rule applies only
// when the date actually moves.
func (service *AppointmentService) Update(ownerID uint, appointmentID uint, input AppointmentInput) (models.Appointment, error) {
	normalized, err := normalizeAppointmentInput(input, service.location)
	if err != nil {
		return models.Appointment{}, err
	}

	updated, found, err := service.appointments.UpdateOwned(ownerID, appointmentID, func(appointment *models.Appointment) error {
		if !appointment.AppointmentDate.Equal(normalized.Date) && !normalized.Date.After(service.now()) {
			return ErrAppointmentNotInFuture
		}
		appointment.AppointmentDate = normalized.Date
		appointment.AppointmentType = normalized.Type
		appointment.Notes = normalized.Notes
		updatedAt := service.now().UTC()
		appointment.UpdatedAt = &updatedAt
		return nil
	})
	if err != nil {
		return models.Appointment{}, err
	}
	if !found {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	return updated, nil
}

// Cancel is idempotent: cancelling a cancelled appointment succeeds. Every
// call stamps updated_at.
func (service *AppointmentService) Cancel(ownerID uint, appointmentID uint) error {
	updated, err := service.appointments.SetStatusByUserAndID(ownerID, appointmentID, models.AppointmentCancelled, service.now().UTC())
	if err != nil {
		return err
	}
	if !updated {
		return ErrAppointmentNotFound
	}
	return nil
}
