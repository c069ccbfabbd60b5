package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/intakedesk/internal/models"
	"github.com/terraincognita07/intakedesk/internal/security"
	"golang.org/x/crypto/bcrypt"
)

type fixedClock struct {
	now time.Time
}

func (clock *fixedClock) Now() time.Time {
	return clock.now
}

func newTestAuthService(t *testing.T, users *stubUserRepo, clock *fixedClock) *AuthService {
	t.Helper()

	issuer, err := security.NewTokenIssuer(security.TokenConfig{
		Secret: []byte("test-secret-key-with-at-least-32-bytes"),
		TTL:    30 * time.Minute,
		Now:    clock.Now,
	})
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	return NewAuthService(users, security.NewPasswordHasher(bcrypt.MinCost), issuer)
}

func validRegistration(email string) RegistrationInput {
	return RegistrationInput{
		Email:     email,
		Password:  "correct horse",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestRegisterStoresHashAndNormalizedEmail(t *testing.T) {
	users := &stubUserRepo{}
	service := newTestAuthService(t, users, &fixedClock{now: time.Now()})

	user, err := service.Register(validRegistration(" Jane@Example.com "))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct horse" {
		t.Fatalf("expected password to be hashed, got %q", user.PasswordHash)
	}
	if !user.IsActive {
		t.Fatal("expected new user to be active")
	}
}

func TestRegisterDuplicateEmailLeavesOriginalUntouched(t *testing.T) {
	users := &stubUserRepo{}
	service := newTestAuthService(t, users, &fixedClock{now: time.Now()})

	original, err := service.Register(validRegistration("jane@example.com"))
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := validRegistration("JANE@example.com")
	second.FirstName = "Impostor"
	second.Password = "other password"
	if _, err := service.Register(second); !errors.Is(err, ErrEmailTaken) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrEmailTaken conflict, got %v", err)
	}

	if len(users.users) != 1 {
		t.Fatalf("expected one stored user, got %d", len(users.users))
	}
	if users.users[0] != original {
		t.Fatalf("expected original user to be unchanged, got %#v", users.users[0])
	}
}

func TestRegisterMapsLostInsertRaceToConflict(t *testing.T) {
	users := &racingUserRepo{stubUserRepo: stubUserRepo{}}
	service := newTestAuthService(t, &users.stubUserRepo, &fixedClock{now: time.Now()})
	service.users = users

	if _, err := service.Register(validRegistration("race@example.com")); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken after unique violation, got %v", err)
	}
}

// racingUserRepo reports the email as free, then fails the insert because a
// concurrent registration committed first.
type racingUserRepo struct {
	stubUserRepo
	checks int
}

func (repo *racingUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	repo.checks++
	return repo.checks > 1, nil
}

func (repo *racingUserRepo) Create(user *models.User) error {
	return errors.New("UNIQUE constraint failed: index 'idx_users_email_normalized'")
}

func TestLoginIssuesTokenResolvableToUser(t *testing.T) {
	users := &stubUserRepo{}
	clock := &fixedClock{now: time.Date(2030, time.January, 2, 10, 0, 0, 0, time.UTC)}
	service := newTestAuthService(t, users, clock)

	registered, err := service.Register(validRegistration("jane@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, loggedIn, err := service.Login(" JANE@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != registered.ID {
		t.Fatalf("expected login user %d, got %d", registered.ID, loggedIn.ID)
	}
	if token.TokenType != "bearer" || token.Token == "" {
		t.Fatalf("unexpected token: %#v", token)
	}
	if !token.ExpiresAt.Equal(clock.now.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %s", token.ExpiresAt)
	}

	resolved, err := service.ResolveBearer("Bearer " + token.Token)
	if err != nil {
		t.Fatalf("resolve bearer: %v", err)
	}
	if resolved.ID != registered.ID {
		t.Fatalf("expected resolved user %d, got %d", registered.ID, resolved.ID)
	}

	if _, err := service.ResolveBearer("bearer   " + token.Token + " "); err != nil {
		t.Fatalf("expected case-insensitive scheme, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := &stubUserRepo{}
	service := newTestAuthService(t, users, &fixedClock{now: time.Now()})
	if _, err := service.Register(validRegistration("jane@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	attempts := []struct {
		email    string
		password string
	}{
		{email: "jane@example.com", password: "wrong password"},
		{email: "nobody@example.com", password: "correct horse"},
		{email: "not-an-email", password: "correct horse"},
	}
	for _, attempt := range attempts {
		_, _, err := service.Login(attempt.email, attempt.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %q, got %v", attempt.email, err)
		}
	}
}

type countingHasher struct {
	PasswordHasher
	verifications int
}

func (hasher *countingHasher) Verify(password string, hash string) bool {
	hasher.verifications++
	return hasher.PasswordHasher.Verify(password, hash)
}

func TestLoginUnknownEmailStillVerifiesAHash(t *testing.T) {
	issuer, err := security.NewTokenIssuer(security.TokenConfig{
		Secret: []byte("test-secret-key-with-at-least-32-bytes"),
		TTL:    30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	hasher := &countingHasher{PasswordHasher: security.NewPasswordHasher(bcrypt.MinCost)}
	service := NewAuthService(&stubUserRepo{}, hasher, issuer)

	for attempt := 1; attempt <= 2; attempt++ {
		_, _, err := service.Login("ghost@example.com", "correct horse")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if hasher.verifications != attempt {
			t.Fatalf("expected %d bcrypt verifications, got %d", attempt, hasher.verifications)
		}
	}
	if service.dummyHash == "" {
		t.Fatal("expected dummy hash to be computed")
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	users := &stubUserRepo{}
	service := newTestAuthService(t, users, &fixedClock{now: time.Now()})
	if _, err := service.Register(validRegistration("jane@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	users.users[0].IsActive = false

	if _, _, err := service.Login("jane@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestResolveBearerFailureKinds(t *testing.T) {
	users := &stubUserRepo{}
	clock := &fixedClock{now: time.Date(2030, time.January, 2, 10, 0, 0, 0, time.UTC)}
	service := newTestAuthService(t, users, clock)

	user, err := service.Register(validRegistration("jane@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := service.Login("jane@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", token.Token} {
		if _, err := service.ResolveBearer(header); !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials for %q, got %v", header, err)
		}
	}

	if _, err := service.ResolveBearer("Bearer not-a-token"); !errors.Is(err, security.ErrInvalidToken) || !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected invalid token, got %v", err)
	}

	users.users[0].IsActive = false
	if _, err := service.ResolveBearer("Bearer " + token.Token); !errors.Is(err, ErrUnknownIdentity) {
		t.Fatalf("expected ErrUnknownIdentity for inactive user %d, got %v", user.ID, err)
	}
	users.users = nil
	if _, err := service.ResolveBearer("Bearer " + token.Token); !errors.Is(err, ErrUnknownIdentity) {
		t.Fatalf("expected ErrUnknownIdentity for deleted user, got %v", err)
	}

	clock.now = clock.now.Add(31 * time.Minute)
	if _, err := service.ResolveBearer("Bearer " + token.Token); !errors.Is(err, security.ErrExpiredToken) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestParseBearerHeader(t *testing.T) {
	token, err := ParseBearerHeader("BEARER abc.def.ghi")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("unexpected token %q", token)
	}
}
