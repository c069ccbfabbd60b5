package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Profiles     *ProfileRepository
	Appointments *AppointmentRepository
	Radiographs  *RadiographRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Profiles:     NewProfileRepository(database),
		Appointments: NewAppointmentRepository(database),
		Radiographs:  NewRadiographRepository(database),
	}
}
