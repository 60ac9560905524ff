package usecase

import (
	"errors"
	"time"
)

// 業務ルール違反はソフト失敗として呼び出し元（CLI）に理由を返す。
// ここでprintはしない。
var (
	// 入力エラー
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrValidation      = errors.New("validation error")

	// 業務ルール違反
	ErrCartEmpty         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrNotInCart         = errors.New("product not in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrMembershipUnknown = errors.New("membership not found")

	// ユーザーが明示的に中断した（副作用なし）
	ErrCanceled = errors.New("canceled")

	// コミット時に参照が消えていた（ロールバック機構が無いので書き込み前に中断）
	ErrProductVanished = errors.New("product no longer exists")

	// 認証まわり
	ErrLoginRequired = errors.New("login required")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrNoCredential  = errors.New("user has no password credential")
	ErrEmailTaken    = errors.New("email already used")
)

// 時刻をテストから差し替えるための約束
type Clock interface {
	Now() time.Time
}
