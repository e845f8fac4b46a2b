package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

// NewUser builds a user value with a bcrypt hash of "Password1!" unless the
// caller overrides PasswordHash.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	hasPasswordHash := false

	for _, data := range customData {
		if _, exists := data["PasswordHash"]; exists {
			hasPasswordHash = true
			break
		}
	}

	if !hasPasswordHash {
		hash, _ := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.DefaultCost)

		customData = append(customData, map[string]any{
			"PasswordHash": string(hash),
		})
	}

	return instance.Build(customData...)
}
