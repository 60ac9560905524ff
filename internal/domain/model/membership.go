package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// 会員パッケージ。割引率は0.15のような比率で持つ。
type Membership struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	DiscountRate     decimal.Decimal `json:"discount_rate"`
	PointsMultiplier decimal.Decimal `json:"points_multiplier"`
	PrioritySupport  bool            `json:"priority_support"`

	// nilなら配送無料の対象外
	FreeShippingThreshold *decimal.Decimal `json:"free_shipping_threshold,omitempty"`
}

// Businessプランはまとめ買い割引の対象（名前で判定、大文字小文字は無視）
func (m Membership) IsBusiness() bool {
	return strings.EqualFold(m.Name, "business")
}
