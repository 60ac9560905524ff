package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
)

type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	// 購入者emailの線形フィルタ。未知のemailは空リスト。
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)

	// IDを採番（件数+1）して末尾に追記し、採番済みの注文を返す
	Append(ctx context.Context, order model.Order) (model.Order, error)
}
