package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
)

// ログイン状態を再起動をまたいで維持するための署名付きトークン。
// DATA_DIR/session.tokenにHS256のJWTを1つ置く。logoutで消す。
const tokenFile = "session.token"

var (
	ErrNoSession      = errors.New("no saved session")
	ErrInvalidSession = errors.New("invalid session token")
)

type Manager struct {
	secret []byte
	ttl    time.Duration
	path   string
}

func NewManager(dataDir string, secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		path:   filepath.Join(dataDir, tokenFile),
	}
}

// ログイン成功時にトークンを発行して保存する
func (m *Manager) Save(user model.User, now time.Time) error {
	expiresAt := now.Add(m.ttl)

	claims := jwt.MapClaims{
		"sub":   user.Email,
		"name":  user.Name,
		"admin": user.IsAdmin,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, []byte(signed), 0o600)
}

// 保存済みトークンを検証してemailを返す。
// 無い・壊れている・期限切れはエラー（呼び出し側は通常ログインに落とす）。
func (m *Manager) Restore(now time.Time) (string, error) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", err
	}

	parser := jwt.NewParser(jwt.WithTimeFunc(func() time.Time { return now }))
	tok, err := parser.Parse(string(b), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidSession
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return "", ErrInvalidSession
	}
	return email, nil
}

// logout（ファイルが無くてもエラーにしない）
func (m *Manager) Clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
