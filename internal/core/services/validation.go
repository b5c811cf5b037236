package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/password"

	"gorm.io/gorm"
)

// field pairs an input name with its value for required checks
type field struct {
	name  string
	value string
}

// requireFields fails on the first blank field
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, f.name)
		}
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	return nil
}

func validatePassword(pw string) error {
	if !password.ValidatePassword(pw) {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, password.MinLength)
	}
	return nil
}

// notFound maps gorm's missing row error onto the entity's domain error
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
