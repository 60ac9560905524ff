package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// 価格・在庫が負
	ErrNegativePrice = errors.New("price must be >= 0")
	ErrNegativeStock = errors.New("stock must be >= 0")

	// 名前が空
	ErrEmptyName = errors.New("name must not be empty")
)

// 商品。削除はしない設計（在庫減算と管理者追加のみ）。
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	CategoryID  int64           `json:"category_id,omitempty"`
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
}

// 生成時に不変条件を強制する
func NewProduct(id int64, name string, price decimal.Decimal, stock int64) (Product, error) {
	if name == "" {
		return Product{}, ErrEmptyName
	}
	if price.IsNegative() {
		return Product{}, ErrNegativePrice
	}
	if stock < 0 {
		return Product{}, ErrNegativeStock
	}
	return Product{ID: id, Name: name, Price: price, Stock: stock}, nil
}

// 在庫減算（0未満にはしない）
func (p *Product) DecreaseStock(qty int64) {
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
}
