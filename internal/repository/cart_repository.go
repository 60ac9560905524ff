package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
)

// プロセス全体で1つのカート（シングルトンコレクション）
type CartRepository interface {
	Get(ctx context.Context) (model.Cart, error)
	Save(ctx context.Context, cart model.Cart) error
}
