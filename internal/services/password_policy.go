package services

import (
	"strings"

	"github.com/terraincognita07/intakedesk/internal/security"
)

const MinPasswordLength = 8

func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength || strings.TrimSpace(password) == "" {
		return ErrWeakPassword
	}
	if len(password) > security.MaxPasswordBytes {
		return ErrWeakPassword
	}
	return nil
}
