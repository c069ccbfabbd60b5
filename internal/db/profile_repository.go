package db

import (
	"github.com/terraincognita07/intakedesk/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUser(userID uint) (models.PatientProfile, bool, error) {
	return findProfileByUser(repo.database, userID)
}

// Upsert loads the owner's profile inside a transaction, lets merge modify it,
// then inserts or saves it. exists tells merge whether a row was found. When a
// concurrent first submission inserts the row before ours, the write is
// retried once as a merge onto that row.
func (repo *ProfileRepository) Upsert(userID uint, merge func(profile *models.PatientProfile, exists bool) error) (models.PatientProfile, error) {
	saved, created, err := repo.upsertOnce(userID, merge)
	if err != nil && created {
		if _, exists, lookupErr := findProfileByUser(repo.database, userID); lookupErr == nil && exists {
			saved, _, err = repo.upsertOnce(userID, merge)
		}
	}
	return saved, err
}

// upsertOnce reports created=true when it attempted an insert.
func (repo *ProfileRepository) upsertOnce(userID uint, merge func(profile *models.PatientProfile, exists bool) error) (models.PatientProfile, bool, error) {
	var (
		saved   models.PatientProfile
		created bool
	)
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		profile, exists, err := findProfileByUser(tx, userID)
		if err != nil {
			return err
		}
		if !exists {
			profile = models.PatientProfile{UserID: userID}
		}
		if err := merge(&profile, exists); err != nil {
			return err
		}
		profile.UserID = userID

		if exists {
			err = tx.Save(&profile).Error
		} else {
			created = true
			err = tx.Create(&profile).Error
		}
		if err != nil {
			return err
		}
		saved = profile
		return nil
	})
	if err != nil {
		return models.PatientProfile{}, created, err
	}
	return saved, created, nil
}

func findProfileByUser(database *gorm.DB, userID uint) (models.PatientProfile, bool, error) {
	var profile models.PatientProfile
	result := database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.PatientProfile{}, false, result.Error
	}
	return profile, result.RowsAffected > 0, nil
}
