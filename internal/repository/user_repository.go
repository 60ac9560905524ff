package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
)

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	// emailは大文字小文字を無視して照合
	FindByEmail(ctx context.Context, email string) (model.User, error)

	Create(ctx context.Context, u model.User) error
	// email一致のレコードを置き換える。該当なしはErrNotFound。
	Update(ctx context.Context, u model.User) error
	SaveAll(ctx context.Context, users []model.User) error
}
