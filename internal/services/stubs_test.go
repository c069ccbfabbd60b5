package services

import (
	"bytes"
	"io"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/intakedesk/internal/models"
)

type stubUserRepo struct {
	users     []models.User
	createErr error
}

func (stub *stubUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	_, found, err := stub.FindByNormalizedEmail(email)
	return found, err
}

func (stub *stubUserRepo) FindByNormalizedEmail(email string) (models.User, bool, error) {
	for _, user := range stub.users {
		if strings.ToLower(strings.TrimSpace(user.Email)) == email {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *stubUserRepo) FindByID(userID uint) (models.User, bool, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *stubUserRepo) Create(user *models.User) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	user.ID = uint(len(stub.users) + 1)
	user.CreatedAt = time.Now().UTC()
	stub.users = append(stub.users, *user)
	return nil
}

type stubProfileRepo struct {
	profiles map[uint]models.PatientProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[uint]models.PatientProfile)}
}

func (stub *stubProfileRepo) FindByUser(userID uint) (models.PatientProfile, bool, error) {
	profile, ok := stub.profiles[userID]
	return profile, ok, nil
}

func (stub *stubProfileRepo) Upsert(userID uint, merge func(profile *models.PatientProfile, exists bool) error) (models.PatientProfile, error) {
	profile, exists := stub.profiles[userID]
	if !exists {
		profile = models.PatientProfile{ID: uint(len(stub.profiles) + 1), UserID: userID}
	}
	if err := merge(&profile, exists); err != nil {
		return models.PatientProfile{}, err
	}
	stub.profiles[userID] = profile
	return profile, nil
}

type stubAppointmentRepo struct {
	appointments []models.Appointment
}

func (stub *stubAppointmentRepo) Create(appointment *models.Appointment) error {
	appointment.ID = uint(len(stub.appointments) + 1)
	stub.appointments = append(stub.appointments, *appointment)
	return nil
}

func (stub *stubAppointmentRepo) ListByUser(userID uint) ([]models.Appointment, error) {
	owned := make([]models.Appointment, 0)
	for _, appointment := range stub.appointments {
		if appointment.UserID == userID {
			owned = append(owned, appointment)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].AppointmentDate.Equal(owned[j].AppointmentDate) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].AppointmentDate.Before(owned[j].AppointmentDate)
	})
	return owned, nil
}

func (stub *stubAppointmentRepo) index(userID uint, appointmentID uint) int {
	for index, appointment := range stub.appointments {
		if appointment.ID == appointmentID && appointment.UserID == userID {
			return index
		}
	}
	return -1
}

func (stub *stubAppointmentRepo) FindByUserAndID(userID uint, appointmentID uint) (models.Appointment, bool, error) {
	index := stub.index(userID, appointmentID)
	if index < 0 {
		return models.Appointment{}, false, nil
	}
	return stub.appointments[index], true, nil
}

func (stub *stubAppointmentRepo) UpdateOwned(userID uint, appointmentID uint, mutate func(appointment *models.Appointment) error) (models.Appointment, bool, error) {
	index := stub.index(userID, appointmentID)
	if index < 0 {
		return models.Appointment{}, false, nil
	}
	appointment := stub.appointments[index]
	if err := mutate(&appointment); err != nil {
		return models.Appointment{}, true, err
	}
	stub.appointments[index] = appointment
	return appointment, true, nil
}

func (stub *stubAppointmentRepo) SetStatusByUserAndID(userID uint, appointmentID uint, status string, updatedAt time.Time) (bool, error) {
	index := stub.index(userID, appointmentID)
	if index < 0 {
		return false, nil
	}
	stub.appointments[index].Status = status
	stub.appointments[index].UpdatedAt = &updatedAt
	return true, nil
}

type stubRadiographRepo struct {
	radiographs []models.Radiograph
	createErr   error
}

func (stub *stubRadiographRepo) Create(radiograph *models.Radiograph) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	radiograph.ID = uint(len(stub.radiographs) + 1)
	stub.radiographs = append(stub.radiographs, *radiograph)
	return nil
}

func (stub *stubRadiographRepo) ListByUser(userID uint) ([]models.Radiograph, error) {
	owned := make([]models.Radiograph, 0)
	for _, radiograph := range stub.radiographs {
		if radiograph.UserID == userID {
			owned = append(owned, radiograph)
		}
	}
	return owned, nil
}

func (stub *stubRadiographRepo) FindByUserAndID(userID uint, radiographID uint) (models.Radiograph, bool, error) {
	for _, radiograph := range stub.radiographs {
		if radiograph.ID == radiographID && radiograph.UserID == userID {
			return radiograph, true, nil
		}
	}
	return models.Radiograph{}, false, nil
}

type memoryStore struct {
	files   map[string][]byte
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string][]byte)}
}

func (store *memoryStore) Save(name string, content []byte) (string, error) {
	if store.saveErr != nil {
		return "", store.saveErr
	}
	store.files[name] = append([]byte(nil), content...)
	return "memory/" + name, nil
}

func (store *memoryStore) Open(name string) (io.ReadCloser, error) {
	content, ok := store.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (store *memoryStore) Remove(name string) error {
	delete(store.files, name)
	return nil
}
