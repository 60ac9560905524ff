package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be > 0")

// カート明細。追加時点の価格と名前を必ずスナップショットする。
type CartItem struct {
	ProductID int64           `json:"product_id"`
	Qty       int64           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Name      string          `json:"name"`
}

func NewCartItem(productID int64, qty int64, unitPrice decimal.Decimal, name string) (CartItem, error) {
	if qty <= 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return CartItem{}, ErrNegativePrice
	}
	return CartItem{ProductID: productID, Qty: qty, UnitPrice: unitPrice, Name: name}, nil
}

// プロセス全体で1つのカート。
// 同じ商品は1明細に必ずマージされる（Addで数量加算）。
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Find(productID int64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// 追加（既存明細があれば数量をマージ）
func (c *Cart) Add(item CartItem) {
	if existing := c.Find(item.ProductID); existing != nil {
		existing.Qty += item.Qty
		return
	}
	c.Items = append(c.Items, item)
}

// 削除。該当明細が無ければfalse。
func (c *Cart) Remove(productID int64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Qty)))
	}
	return total
}

// 大量購入判定に使う合計数量
func (c Cart) TotalQty() int64 {
	var qty int64
	for _, it := range c.Items {
		qty += it.Qty
	}
	return qty
}
