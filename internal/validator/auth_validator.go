package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}
	if !isEmailLike(email) {
		return ErrInvalidInput
	}
	return nil
}

// アカウント作成の入力を検証
func (v *authValidator) ValidateRegister(name string, email string, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}
	return v.ValidateLogin(email, password)
}

// パスワード変更の入力を検証
func (v *authValidator) ValidatePasswordChange(newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
