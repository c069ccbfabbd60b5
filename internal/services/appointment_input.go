package services

import (
	"strings"
	"time"
)

var appointmentLocalLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type AppointmentInput struct {
	AppointmentDate string
	AppointmentType string
	Notes           *string
}

type normalizedAppointmentInput struct {
	Date  time.Time
	Type  string
	Notes *string
}

// ParseAppointmentDate accepts RFC 3339 with an offset, or a wall-clock time
// without one, which is read in location. The result is UTC.
func ParseAppointmentDate(raw string, location *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrAppointmentDateInvalid
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed.UTC(), nil
	}
	if location == nil {
		location = time.UTC
	}
	for _, layout := range appointmentLocalLayouts {
		if parsed, err := time.ParseInLocation(layout, value, location); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrAppointmentDateInvalid
}

func normalizeAppointmentInput(input AppointmentInput, location *time.Location) (normalizedAppointmentInput, error) {
	date, err := ParseAppointmentDate(input.AppointmentDate, location)
	if err != nil {
		return normalizedAppointmentInput{}, err
	}

	appointmentType := strings.TrimSpace(input.AppointmentType)
	if appointmentType == "" {
		return normalizedAppointmentInput{}, ErrAppointmentTypeRequired
	}

	var notes *string
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		notes = &trimmed
	}
	return normalizedAppointmentInput{Date: date, Type: appointmentType, Notes: notes}, nil
}
