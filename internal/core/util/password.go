package util

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"taskapp/internal/core/domain"
)

var (
	specialChars = regexp.MustCompile(`[!@#$%^&*(),.?:{}|<>]`)
	digits       = regexp.MustCompile(`\d`)
	uppercase    = regexp.MustCompile(`[A-Z]`)
)

// ValidatePassword runs the policy checks in a fixed order and reports the
// first violated rule, so error messages stay deterministic.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.BadRequest("Password needs to be at least 8 characters long.")
	}

	if !specialChars.MatchString(password) {
		return domain.BadRequest("Password must contain at least one special character.")
	}

	if !digits.MatchString(password) {
		return domain.BadRequest("Password must contain at least one number.")
	}

	if !uppercase.MatchString(password) {
		return domain.BadRequest("Password must contain at least one uppercase character.")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// VerifyPassword returns false on a plain mismatch; any other failure means
// the stored hash is malformed and is reported as an error.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	if err == nil {
		return true, nil
	}

	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}

	return false, err
}
