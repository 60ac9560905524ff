package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// 配送方法。自由入力文字列ではなく閉じた列挙にする。
type ShippingMethod string

const (
	ShippingDelivery ShippingMethod = "delivery"
	ShippingPickup   ShippingMethod = "pickup"
	// 会員パッケージ購入の縮退ケース（配送ステップなし）
	ShippingMembership ShippingMethod = "membership"
)

var ErrInvalidShippingMethod = errors.New("invalid shipping method")

// checkout入力で許されるのはdelivery/pickupだけ
func ParseShippingMethod(s string) (ShippingMethod, error) {
	switch ShippingMethod(s) {
	case ShippingDelivery, ShippingPickup:
		return ShippingMethod(s), nil
	}
	return "", ErrInvalidShippingMethod
}

var ErrEmptyOrder = errors.New("order must contain at least one item")

// 注文明細のスナップショット。
// 商品購入ならProductID、会員購入ならMembershipIDが入る。
type OrderItem struct {
	ProductID    int64           `json:"product_id,omitempty"`
	MembershipID int64           `json:"membership_id,omitempty"`
	Qty          int64           `json:"qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Name         string          `json:"name"`
}

// 注文。一度作ったら変更しない。
// IDは連番（件数+1）。削除しない設計なので欠番は生じない。
type Order struct {
	ID                 int64           `json:"id"`
	Items              []OrderItem     `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	MembershipDiscount decimal.Decimal `json:"membership_discount"`
	PromoDiscount      decimal.Decimal `json:"promo_discount"`
	ShippingFee        decimal.Decimal `json:"shipping_fee"`
	Total              decimal.Decimal `json:"total"`
	ShippingMethod     ShippingMethod  `json:"shipping_method"`
	Address            string          `json:"address,omitempty"`
	// 未ログイン購入では空
	UserEmail string    `json:"user_email,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
