package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type accessClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func NewTokenIssuer(config TokenConfig) (*TokenIssuer, error) {
	if len(config.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if config.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{
		secret: config.Secret,
		ttl:    config.TTL,
		now:    now,
	}, nil
}

func (issuer *TokenIssuer) TTL() time.Duration {
	return issuer.ttl
}

// Issue signs an HS256 access token for userID that expires after the
// configured TTL. The exp claim has second precision, so the expiry is rounded
// up to the next whole second and the returned time is exactly the encoded one.
func (issuer *TokenIssuer) Issue(userID uint) (string, time.Time, error) {
	if userID == 0 {
		return "", time.Time{}, errors.New("user id is required")
	}
	issuedAt := issuer.now()
	expiresAt := ceilToSecond(issuedAt.Add(issuer.ttl))

	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(issuer.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the user id the token was issued for.
func (issuer *TokenIssuer) Verify(rawToken string) (uint, error) {
	if rawToken == "" {
		return 0, ErrInvalidToken
	}

	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return issuer.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(issuer.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}

	if claims.UserID == 0 || claims.Subject != strconv.FormatUint(uint64(claims.UserID), 10) {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func ceilToSecond(value time.Time) time.Time {
	truncated := value.Truncate(time.Second)
	if truncated.Equal(value) {
		return value
	}
	return truncated.Add(time.Second)
}
