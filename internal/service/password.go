package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// cost 10，與既有帳號的雜湊相容
const passwordCost = bcrypt.DefaultCost

var ErrEmptyPassword = errors.New("password is empty")

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 產生 bcrypt 雜湊；超過 72 bytes 的密碼由 bcrypt 拒絕
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcryptGenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword 密碼不符時回傳 bcrypt.ErrMismatchedHashAndPassword
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}
