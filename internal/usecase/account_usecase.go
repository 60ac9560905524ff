package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

// 注文履歴とユーザーの紐付け
type AccountUsecase struct {
	orders repo.OrderRepository
	users  repo.UserRepository
	log    *zap.Logger
}

func NewAccountUsecase(orders repo.OrderRepository, users repo.UserRepository, log *zap.Logger) *AccountUsecase {
	return &AccountUsecase{orders: orders, users: users, log: log}
}

// 購入者emailで注文を線形フィルタする。
// 未知・匿名（空）のemailは空リスト（エラーにしない）。
func (u *AccountUsecase) OrdersForUser(ctx context.Context, email string) ([]model.Order, error) {
	return u.orders.ListByEmail(ctx, email)
}

// 注文IDをユーザーの注文リストへ追記する。該当ユーザーなし（匿名購入）はno-op。
func (u *AccountUsecase) RecordOrder(ctx context.Context, orderID int64, email string) error {
	if email == "" {
		return nil
	}
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	user.Orders = append(user.Orders, orderID)
	if err := u.users.Update(ctx, user); err != nil {
		return err
	}
	u.log.Info("order linked to user", zap.Int64("order_id", orderID), zap.String("email", email))
	return nil
}
