package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure a caller could have
// caused: bad signature, malformed token, expired claims. Infrastructure
// failures (missing secret) are reported as distinct errors.
var ErrInvalidToken = errors.New("Invalid token.")

// JWT signs and verifies session credentials with HS256. Secret and TTL are
// injected from configuration; nothing here reads the environment.
type JWT struct {
	Secret string
	TTL    time.Duration
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{Secret: secret, TTL: ttl}
}

func (j *JWT) CreateToken(userID int) (string, error) {
	if j.Secret == "" {
		return "", errors.New("signing secret is not configured")
	}

	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(j.TTL).Unix(),
	})

	return token.SignedString([]byte(j.Secret))
}

func (j *JWT) VerifyToken(tokenString string) (int, error) {
	if j.Secret == "" {
		return 0, errors.New("signing secret is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(j.Secret), nil
	})

	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return 0, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)

	if !ok {
		return 0, ErrInvalidToken
	}

	return int(userID), nil
}
