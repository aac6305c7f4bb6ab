// Файл: pkg/customvalidator/validators.go

package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations "собирает" все наши кастомные правила валидации
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("strong_password", isStrongPassword); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}

	return nil
}

var (
	emailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
)

const passwordSpecialSet = "!@#$%^&*"

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// Пароль: минимум 9 символов, хотя бы одна строчная, одна заглавная
// и один символ из фиксированного набора.
func isStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsStrongPassword(password string) bool {
	if len(password) < 9 {
		return false
	}
	if !lowercaseRegex.MatchString(password) {
		return false
	}
	if !uppercaseRegex.MatchString(password) {
		return false
	}
	return strings.ContainsAny(password, passwordSpecialSet)
}

func IsGoodEmail(email string) bool {
	return emailRegex.MatchString(email)
}
