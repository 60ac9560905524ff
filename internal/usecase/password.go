package usecase

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-HMAC-SHA256。既存のユーザーレコード（hexのsalt+hash）と互換。
const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLen     = 32
	saltLen          = 16
)

// 新しいsaltで導出ハッシュを作る。戻りはどちらもhex。
func hashPassword(password string) (saltHex string, hashHex string, err error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", "", err
	}
	dk := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(salt), hex.EncodeToString(dk), nil
}

func verifyPassword(password string, saltHex string, hashHex string) bool {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	dk := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hmac.Equal(dk, want)
}
