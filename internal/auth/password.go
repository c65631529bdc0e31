package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
// bcrypt embeds a fresh random salt in the returned string.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
// A mismatch is not an error condition, so this returns a plain bool.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const passwordSpecials = "@$!%*?&"

// ValidatePasswordStrength enforces the registration password policy.
// Two checks run in order and report distinct messages: a minimum length of 6,
// then a stricter rule requiring length 8 plus one lowercase letter, one
// uppercase letter, one digit and one special character.
func ValidatePasswordStrength(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if len(password) < 8 || !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must be at least 8 characters and contain a lowercase letter, an uppercase letter, a number and a special character (%s)", passwordSpecials)
	}
	return nil
}
