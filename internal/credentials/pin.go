package credentials

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stickermissions/internal/validation"
)

// DefaultPIN is the factory PIN used until a parent changes it
const DefaultPIN = "1234"

// HashPIN hashes a 4-digit PIN for storage
func HashPIN(pin string) (string, error) {
	if err := validation.ValidatePIN(pin); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

// CheckPIN reports whether pin matches the stored hash.
// An empty hash means no PIN was ever set, so the factory PIN applies.
func CheckPIN(pin, hash string) bool {
	if hash == "" {
		return pin == DefaultPIN
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
