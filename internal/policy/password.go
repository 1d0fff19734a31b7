package policy

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/pkg/errors"
)

const (
	MinPasswordLength = 4
	// MaxPasswordLength - предел bcrypt
	MaxPasswordLength = 72
)

// hashCost вынесен в переменную, чтобы тесты могли использовать bcrypt.MinCost
var hashCost = bcrypt.DefaultCost

// ValidatePassword отклоняет пароль, который не может быть корректно захеширован
func ValidatePassword(plaintext string) error {
	if len(plaintext) < MinPasswordLength || len(plaintext) > MaxPasswordLength {
		return errors.ErrInvalidPassword.WithDetails(map[string]interface{}{
			"min_length": MinPasswordLength,
			"max_length": MaxPasswordLength,
		})
	}
	return nil
}

// HashPassword возвращает солёный bcrypt-хеш
func HashPassword(plaintext string) (string, error) {
	if err := ValidatePassword(plaintext); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword сравнивает пароль с хешем за постоянное время; пустой пароль никогда не подходит
func VerifyPassword(secret *domain.Secret, plaintext string) bool {
	if secret == nil || secret.PasswordHash == "" || plaintext == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(secret.PasswordHash), []byte(plaintext)) == nil
}

// UnlockWithPassword - разовый доступ к приватной жалобе по паролю.
// Пароль к публичной жалобе или к жалобе без Secret - ошибка вызывающей стороны.
func UnlockWithPassword(g *domain.Grievance, secret *domain.Secret, plaintext string) (Decision, error) {
	if !g.IsPrivate() || secret == nil {
		return deny(ReasonDenied), errors.ErrPasswordNotApplicable
	}
	if VerifyPassword(secret, plaintext) {
		return allow(ReasonPassword), nil
	}
	return deny(ReasonDenied), nil
}
