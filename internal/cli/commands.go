// Package cli implements offline account administration against the same
// database the server uses.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/intakedesk/internal/models"
	"github.com/terraincognita07/intakedesk/internal/security"
	"github.com/terraincognita07/intakedesk/internal/services"
)

const (
	temporaryPasswordLength = 12
	generatedSecretLength   = 48
)

var ErrUnknownCommand = errors.New("unknown command")

type UserStore interface {
	FindByNormalizedEmail(email string) (models.User, bool, error)
	UpdatePasswordHash(userID uint, passwordHash string) error
	SetActive(userID uint, active bool) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// PasswordPrompt asks for a secret. label is shown to the operator.
type PasswordPrompt func(label string) (string, error)

type Commands struct {
	users  UserStore
	hasher PasswordHasher
	prompt PasswordPrompt
	out    io.Writer
}

func NewCommands(users UserStore, hasher PasswordHasher, prompt PasswordPrompt, out io.Writer) *Commands {
	return &Commands{users: users, hasher: hasher, prompt: prompt, out: out}
}

func IsCommand(name string) bool {
	switch name {
	case "set-password", "reset-password", "activate", "deactivate", "generate-secret":
		return true
	default:
		return false
	}
}

// Run dispatches one administrative command. Account commands take the
// email as their only argument.
func (commands *Commands) Run(name string, args []string) error {
	if !IsCommand(name) {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if name == "generate-secret" {
		return commands.GenerateSecret()
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <email>", name)
	}

	switch name {
	case "set-password":
		return commands.SetPassword(args[0])
	case "reset-password":
		return commands.ResetPassword(args[0])
	case "activate":
		return commands.SetActive(args[0], true)
	default:
		return commands.SetActive(args[0], false)
	}
}

func (commands *Commands) SetPassword(email string) error {
	user, err := commands.findUser(email)
	if err != nil {
		return err
	}
	if commands.prompt == nil {
		return errors.New("password prompt unavailable")
	}

	password, err := commands.prompt("New password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return err
	}
	confirmation, err := commands.prompt("Repeat password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}
	if confirmation != password {
		return errors.New("passwords do not match")
	}

	if err := commands.storePassword(user, password); err != nil {
		return err
	}
	fmt.Fprintf(commands.out, "Password updated for %s\n", user.Email)
	return nil
}

func (commands *Commands) ResetPassword(email string) error {
	user, err := commands.findUser(email)
	if err != nil {
		return err
	}

	temporaryPassword, err := generateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	if err := commands.storePassword(user, temporaryPassword); err != nil {
		return err
	}

	fmt.Fprintf(commands.out, "Password reset for %s\n", user.Email)
	fmt.Fprintf(commands.out, "Temporary password: %s\n", temporaryPassword)
	return nil
}

func (commands *Commands) SetActive(email string, active bool) error {
	user, err := commands.findUser(email)
	if err != nil {
		return err
	}
	if err := commands.users.SetActive(user.ID, active); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	fmt.Fprintf(commands.out, "Account %s %s\n", user.Email, state)
	return nil
}

// GenerateSecret prints a random value suitable for SECRET_KEY.
func (commands *Commands) GenerateSecret() error {
	secret, err := security.RandomSecret(generatedSecretLength)
	if err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	fmt.Fprintln(commands.out, secret)
	return nil
}

func (commands *Commands) findUser(email string) (models.User, error) {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return models.User{}, fmt.Errorf("invalid email address %q", email)
	}

	user, found, err := commands.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !found {
		return models.User{}, fmt.Errorf("user %s not found", normalizedEmail)
	}
	return user, nil
}

func (commands *Commands) storePassword(user models.User, password string) error {
	passwordHash, err := commands.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := commands.users.UpdatePasswordHash(user.ID, passwordHash); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < services.MinPasswordLength {
		length = services.MinPasswordLength
	}
	return security.RandomString(length, security.TemporaryPasswordAlphabet)
}
