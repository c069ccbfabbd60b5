package api

import (
	"context"
	"errors"

	"github.com/terraincognita07/intakedesk/internal/services"
	"go.uber.org/zap"
)

const contextUserKey = "current_user"

type HealthCheck func(ctx context.Context) error

type Dependencies struct {
	Auth         *services.AuthService
	Profiles     *services.ProfileService
	Appointments *services.AppointmentService
	Radiographs  *services.RadiographService
	HealthCheck  HealthCheck
	Logger       *zap.Logger
}

type Handler struct {
	authService        *services.AuthService
	profileService     *services.ProfileService
	appointmentService *services.AppointmentService
	radiographService  *services.RadiographService
	healthCheck        HealthCheck
	logger             *zap.Logger
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Auth == nil || deps.Profiles == nil || deps.Appointments == nil || deps.Radiographs == nil {
		return nil, errors.New("api: all services are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	healthCheck := deps.HealthCheck
	if healthCheck == nil {
		healthCheck = func(context.Context) error { return nil }
	}
	return &Handler{
		authService:        deps.Auth,
		profileService:     deps.Profiles,
		appointmentService: deps.Appointments,
		radiographService:  deps.Radiographs,
		healthCheck:        healthCheck,
		logger:             logger,
	}, nil
}
