package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/intakedesk/internal/models"
	"github.com/terraincognita07/intakedesk/internal/storage"
)

var allowedRadiographTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/tiff": {},
}

type RadiographRepository interface {
	Create(radiograph *models.Radiograph) error
	ListByUser(userID uint) ([]models.Radiograph, error)
	FindByUserAndID(userID uint, radiographID uint) (models.Radiograph, bool, error)
}

type RadiographStore interface {
	Save(name string, content []byte) (string, error)
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
}

type UploadInput struct {
	Content      []byte
	ContentType  string
	OriginalName string
	Description  *string
}

type RadiographService struct {
	radiographs  RadiographRepository
	store        RadiographStore
	sniffContent bool
	now          func() time.Time
}

func NewRadiographService(radiographs RadiographRepository, store RadiographStore, sniffContent bool) *RadiographService {
	return &RadiographService{
		radiographs:  radiographs,
		store:        store,
		sniffContent: sniffContent,
		now:          time.Now,
	}
}

func IsAllowedRadiographType(contentType string) bool {
	_, ok := allowedRadiographTypes[storage.NormalizeMediaType(contentType)]
	return ok
}

// Upload stores content under a fresh random name and records it for ownerID.
// The file is removed again when the record cannot be written.
func (service *RadiographService) Upload(ownerID uint, input UploadInput) (models.Radiograph, error) {
	if !IsAllowedRadiographType(input.ContentType) {
		return models.Radiograph{}, ErrUnsupportedMediaType
	}
	if len(input.Content) == 0 {
		return models.Radiograph{}, ErrEmptyUpload
	}
	if service.sniffContent && !IsAllowedRadiographType(storage.DetectContentType(input.Content)) {
		return models.Radiograph{}, ErrUnsupportedMediaType
	}

	originalName := storage.BaseName(input.OriginalName)
	storedName := uuid.NewString() + storage.StoredExtension(originalName, input.ContentType)
	if originalName == "" {
		originalName = storedName
	}

	filePath, err := service.store.Save(storedName, input.Content)
	if err != nil {
		return models.Radiograph{}, fmt.Errorf("store radiograph: %w", err)
	}

	radiograph := models.Radiograph{
		UserID:           ownerID,
		Filename:         storedName,
		OriginalFilename: originalName,
		FilePath:         filePath,
		FileSize:         int64(len(input.Content)),
		Description:      input.Description,
		UploadDate:       service.now().UTC(),
	}
	if err := service.radiographs.Create(&radiograph); err != nil {
		if removeErr := service.store.Remove(storedName); removeErr != nil {
			err = errors.Join(err, fmt.Errorf("remove orphaned upload: %w", removeErr))
		}
		return models.Radiograph{}, fmt.Errorf("record radiograph: %w", err)
	}
	return radiograph, nil
}

func (service *RadiographService) List(ownerID uint) ([]models.Radiograph, error) {
	return service.radiographs.ListByUser(ownerID)
}

func (service *RadiographService) Get(ownerID uint, radiographID uint) (models.Radiograph, error) {
	radiograph, found, err := service.radiographs.FindByUserAndID(ownerID, radiographID)
	if err != nil {
		return models.Radiograph{}, err
	}
	if !found {
		return models.Radiograph{}, ErrRadiographNotFound
	}
	return radiograph, nil
}

// Open returns the owner's record and a reader over its bytes. The caller
// closes the reader. A record whose file vanished reads as not found.
func (service *RadiographService) Open(ownerID uint, radiographID uint) (models.Radiograph, io.ReadCloser, error) {
	radiograph, err := service.Get(ownerID, radiographID)
	if err != nil {
		return models.Radiograph{}, nil, err
	}

	reader, err := service.store.Open(radiograph.Filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Radiograph{}, nil, ErrRadiographNotFound
		}
		return models.Radiograph{}, nil, fmt.Errorf("open radiograph file: %w", err)
	}
	return radiograph, reader, nil
}
