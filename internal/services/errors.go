package services

import "errors"

// Base kinds. Every service error wraps exactly one of them.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
)

type kindError struct {
	kind    error
	message string
}

func (err *kindError) Error() string {
	return err.message
}

func (err *kindError) Unwrap() error {
	return err.kind
}

func newKindError(kind error, message string) error {
	return &kindError{kind: kind, message: message}
}

var (
	ErrRegistrationInvalid = newKindError(ErrValidation, "email, password, first name and last name are required")
	ErrWeakPassword        = newKindError(ErrValidation, "password must be at least 8 characters")
	ErrEmailTaken          = newKindError(ErrConflict, "Email already registered")

	ErrInvalidCredentials = newKindError(ErrUnauthenticated, "Incorrect email or password")
	ErrMissingCredentials = newKindError(ErrUnauthenticated, "Not authenticated")
	ErrUnknownIdentity    = newKindError(ErrUnauthenticated, "Could not validate credentials")

	ErrPainLevelOutOfRange     = newKindError(ErrValidation, "pain level must be between 1 and 10")
	ErrAppointmentDateInvalid  = newKindError(ErrValidation, "invalid appointment date")
	ErrAppointmentNotInFuture  = newKindError(ErrValidation, "Appointment date must be in the future")
	ErrAppointmentTypeRequired = newKindError(ErrValidation, "appointment type is required")
	ErrUnsupportedMediaType    = newKindError(ErrValidation, "Only JPEG, PNG, and TIFF files are allowed")
	ErrEmptyUpload             = newKindError(ErrValidation, "uploaded file is empty")

	ErrProfileNotFound     = newKindError(ErrNotFound, "Profile not found")
	ErrAppointmentNotFound = newKindError(ErrNotFound, "Appointment not found")
	ErrRadiographNotFound  = newKindError(ErrNotFound, "Radiograph not found")
)
