package db

import (
	"time"

	"github.com/terraincognita07/intakedesk/internal/models"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	database *gorm.DB
}

func NewAppointmentRepository(database *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{database: database}
}

func (repo *AppointmentRepository) Create(appointment *models.Appointment) error {
	return repo.database.Create(appointment).Error
}

func (repo *AppointmentRepository) ListByUser(userID uint) ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("appointment_date ASC, id ASC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (repo *AppointmentRepository) FindByUserAndID(userID uint, appointmentID uint) (models.Appointment, bool, error) {
	return findOwnedAppointment(repo.database, userID, appointmentID)
}

// UpdateOwned runs mutate against the owner's appointment and saves the result
// in one transaction. found is false when the row is missing or owned by someone else.
func (repo *AppointmentRepository) UpdateOwned(userID uint, appointmentID uint, mutate func(appointment *models.Appointment) error) (models.Appointment, bool, error) {
	var (
		saved models.Appointment
		found bool
	)
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		appointment, exists, err := findOwnedAppointment(tx, userID, appointmentID)
		if err != nil || !exists {
			return err
		}
		found = true
		if err := mutate(&appointment); err != nil {
			return err
		}
		appointment.UserID = userID
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}
		saved = appointment
		return nil
	})
	if err != nil {
		return models.Appointment{}, found, err
	}
	return saved, found, nil
}

// SetStatusByUserAndID writes status and updated_at in one statement.
func (repo *AppointmentRepository) SetStatusByUserAndID(userID uint, appointmentID uint, status string, updatedAt time.Time) (bool, error) {
	result := repo.database.Model(&models.Appointment{}).
		Where("id = ? AND user_id = ?", appointmentID, userID).
		Updates(map[string]any{"status": status, "updated_at": updatedAt})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func findOwnedAppointment(database *gorm.DB, userID uint, appointmentID uint) (models.Appointment, bool, error) {
	var appointment models.Appointment
	result := database.
		Where("id = ? AND user_id = ?", appointmentID, userID).
		Limit(1).
		Find(&appointment)
	if result.Error != nil {
		return models.Appointment{}, false, result.Error
	}
	return appointment, result.RowsAffected > 0, nil
}
