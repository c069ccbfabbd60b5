package services

import (
	"net/mail"
	"strings"
)

type RegistrationInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	// Display-name forms such as "Bob <bob@example.com>" parse too; only a
	// bare address is accepted.
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" || passwordRaw == "" {
		return "", "", ErrInvalidCredentials
	}
	return email, passwordRaw, nil
}

// NormalizeRegistrationInput trims names, drops a blank phone and validates
// the email and password. The password itself is never trimmed.
func NormalizeRegistrationInput(input RegistrationInput) (RegistrationInput, error) {
	normalized := RegistrationInput{
		Email:     NormalizeAuthEmail(input.Email),
		Password:  input.Password,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}
	if input.Phone != nil {
		if phone := strings.TrimSpace(*input.Phone); phone != "" {
			normalized.Phone = &phone
		}
	}

	if normalized.Email == "" || normalized.Password == "" || normalized.FirstName == "" || normalized.LastName == "" {
		return RegistrationInput{}, ErrRegistrationInvalid
	}
	if err := ValidatePasswordStrength(normalized.Password); err != nil {
		return RegistrationInput{}, err
	}
	return normalized, nil
}
