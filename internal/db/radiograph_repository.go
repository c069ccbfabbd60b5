package db

import (
	"github.com/terraincognita07/intakedesk/internal/models"
	"gorm.io/gorm"
)

type RadiographRepository struct {
	database *gorm.DB
}

func NewRadiographRepository(database *gorm.DB) *RadiographRepository {
	return &RadiographRepository{database: database}
}

func (repo *RadiographRepository) Create(radiograph *models.Radiograph) error {
	return repo.database.Create(radiograph).Error
}

func (repo *RadiographRepository) ListByUser(userID uint) ([]models.Radiograph, error) {
	radiographs := make([]models.Radiograph, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("upload_date ASC, id ASC").
		Find(&radiographs).Error; err != nil {
		return nil, err
	}
	return radiographs, nil
}

func (repo *RadiographRepository) FindByUserAndID(userID uint, radiographID uint) (models.Radiograph, bool, error) {
	var radiograph models.Radiograph
	result := repo.database.
		Where("id = ? AND user_id = ?", radiographID, userID).
		Limit(1).
		Find(&radiograph)
	if result.Error != nil {
		return models.Radiograph{}, false, result.Error
	}
	return radiograph, result.RowsAffected > 0, nil
}
