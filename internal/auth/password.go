package auth

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/money-manager/internal/finance"
)

const (
	minPasswordLength = 8
	// bcrypt refuses longer inputs.
	maxPasswordBytes = 72
)

// ValidatePassword enforces the password policy: at least eight characters
// and at most 72 bytes, with an upper-case letter, a digit and a symbol.
func ValidatePassword(password string) error {
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	switch {
	case len([]rune(password)) < minPasswordLength:
		return &finance.ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	case len(password) > maxPasswordBytes:
		return &finance.ValidationError{Field: "password", Message: "Password must be at most 72 bytes"}
	case !hasUpper:
		return &finance.ValidationError{Field: "password", Message: "Password must contain at least one uppercase letter"}
	case !hasDigit:
		return &finance.ValidationError{Field: "password", Message: "Password must contain at least one number"}
	case !hasSymbol:
		return &finance.ValidationError{Field: "password", Message: "Password must contain at least one special character"}
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. Only a mismatch
// returns false without error.
func CheckPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
