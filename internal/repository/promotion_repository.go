package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
)

// プロモコードは参照データ（書き込みなし）
type PromotionRepository interface {
	List(ctx context.Context) ([]model.Promotion, error)
	// コードは大文字小文字を無視して照合
	FindByCode(ctx context.Context, code string) (model.Promotion, error)
}
