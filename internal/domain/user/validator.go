package user

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	MaxNameLen     = 64
	MinPasswordLen = 6
	MaxPasswordLen = 72 // предел bcrypt
)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateSignup(req SignupRequest) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type CredentialsValidator struct {
	minPasswordLen int
}

// NewCredentialsValidator создает новый валидатор
func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{minPasswordLen: MinPasswordLen}
}

// ValidateSignup валидирует данные для регистрации
func (v *CredentialsValidator) ValidateSignup(req SignupRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("name must be at most %d characters", MaxNameLen)
	}

	if err := v.ValidateEmail(req.Email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}

	if err := v.ValidatePassword(req.Password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

// ValidateEmail валидирует адрес почты
func (v *CredentialsValidator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email %q is not a valid address", email)
	}

	return nil
}

// ValidatePassword валидирует пароль
func (v *CredentialsValidator) ValidatePassword(password string) error {
	if len(password) < v.minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", v.minPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordLen)
	}
	return nil
}

// NormalizeEmail приводит почту к виду, в котором она хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
