package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
)

// 会員プランは参照データ（書き込みなし）
type MembershipRepository interface {
	List(ctx context.Context) ([]model.Membership, error)
	FindByID(ctx context.Context, id int64) (model.Membership, error)
}
