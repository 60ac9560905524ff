package repository

import (
	"context"
	"errors"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品コレクションの永続化だけを約束。
// 実装は呼び出しごとにコレクション全体を読み直す（キャッシュしない）。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// 名前・説明の部分一致（大文字小文字を無視）
	Search(ctx context.Context, query string) ([]model.Product, error)

	// IDは実装側で採番（max+1）
	Create(ctx context.Context, p model.Product) (model.Product, error)
	// コレクション全体を置き換える（在庫減算のコミットに使う）
	SaveAll(ctx context.Context, products []model.Product) error
}
