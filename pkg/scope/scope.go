package scope

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("scope: invalid token")
	ErrMissingUserID = errors.New("scope: token has no user id")
	ErrMissingSecret = errors.New("scope: secret key is required")
)

// Payload is the identity carried by an access token.
type Payload struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 access tokens.
type Manager interface {
	Verify(token string) (Payload, error)
	CreateToken(userID string) (string, error)
}

type implManager struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// New creates a Manager signing with secretKey. Tokens live for ttl.
func New(secretKey, issuer string, ttl time.Duration) (Manager, error) {
	if secretKey == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &implManager{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

func (m *implManager) CreateToken(userID string) (string, error) {
	if userID == "" {
		return "", ErrMissingUserID
	}
	now := m.now()
	claims := Payload{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

func (m *implManager) Verify(token string) (Payload, error) {
	var payload Payload
	_, err := jwt.ParseWithClaims(token, &payload, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if payload.UserID == "" {
		payload.UserID = payload.Subject
	}
	if payload.UserID == "" {
		return Payload{}, ErrMissingUserID
	}
	return payload, nil
}
