package auth

import (
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeAlphabet is the character set of confirmation codes.
	CodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// CodeLength is the fixed length of confirmation codes.
	CodeLength = 6
)

// GenerateCode returns a fresh confirmation code drawn from crypto/rand.
func GenerateCode() (string, error) {
	code, err := gonanoid.Generate(CodeAlphabet, CodeLength)
	if err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	return code, nil
}

// HashCode creates a bcrypt hash of a confirmation code for storage.
func HashCode(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyCode reports whether code matches the stored hash exactly (case-sensitive).
func VerifyCode(hash, code string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
