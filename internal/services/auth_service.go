package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/intakedesk/internal/models"
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	FindByID(userID uint) (models.User, bool, error)
	Create(user *models.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) bool
}

type AccessTokenIssuer interface {
	Issue(userID uint) (string, time.Time, error)
	Verify(rawToken string) (uint, error)
}

type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

// unknownAccountPassword is hashed once so logins for unknown emails spend
// the same bcrypt work as a wrong password.
const unknownAccountPassword = "intakedesk-unknown-account"

type AuthService struct {
	users  AuthUserRepository
	hasher PasswordHasher
	tokens AccessTokenIssuer

	dummyHashOnce sync.Once
	dummyHash     string
}

func NewAuthService(users AuthUserRepository, hasher PasswordHasher, tokens AccessTokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

func (service *AuthService) Register(input RegistrationInput) (models.User, error) {
	normalized, err := NormalizeRegistrationInput(input)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(normalized.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("check registration email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := service.hasher.Hash(normalized.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        normalized.Email,
		PasswordHash: passwordHash,
		FirstName:    normalized.FirstName,
		LastName:     normalized.LastName,
		Phone:        normalized.Phone,
		IsActive:     true,
	}
	if err := service.users.Create(&user); err != nil {
		// A concurrent registration can win between the check and the insert;
		// the unique index rejects ours.
		if taken, lookupErr := service.users.ExistsByNormalizedEmail(normalized.Email); lookupErr == nil && taken {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *AuthService) Login(emailRaw string, password string) (AccessToken, models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return AccessToken{}, models.User{}, err
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return AccessToken{}, models.User{}, fmt.Errorf("load user by email: %w", err)
	}
	if !found {
		service.verifyAgainstDummyHash(password)
		return AccessToken{}, models.User{}, ErrInvalidCredentials
	}
	if !service.hasher.Verify(password, user.PasswordHash) || !user.IsActive {
		return AccessToken{}, models.User{}, ErrInvalidCredentials
	}

	token, expiresAt, err := service.tokens.Issue(user.ID)
	if err != nil {
		return AccessToken{}, models.User{}, fmt.Errorf("issue access token: %w", err)
	}
	return AccessToken{Token: token, TokenType: "bearer", ExpiresAt: expiresAt}, user, nil
}

func (service *AuthService) verifyAgainstDummyHash(password string) {
	service.dummyHashOnce.Do(func() {
		service.dummyHash, _ = service.hasher.Hash(unknownAccountPassword)
	})
	if service.dummyHash != "" {
		service.hasher.Verify(password, service.dummyHash)
	}
}

// ParseBearerHeader extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerHeader(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingCredentials
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingCredentials
	}
	return token, nil
}

// ResolveBearer maps an Authorization header to an active user. Token
// failures keep the security error in the chain next to ErrUnauthenticated.
func (service *AuthService) ResolveBearer(header string) (models.User, error) {
	rawToken, err := ParseBearerHeader(header)
	if err != nil {
		return models.User{}, err
	}

	userID, err := service.tokens.Verify(rawToken)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("load user by id: %w", err)
	}
	if !found || !user.IsActive {
		return models.User{}, ErrUnknownIdentity
	}
	return user, nil
}
