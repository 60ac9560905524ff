package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

// カート操作。追加時にカタログの在庫に対して検証する。
type CartUsecase struct {
	cart     repo.CartRepository
	products repo.ProductRepository
	log      *zap.Logger
}

func NewCartUsecase(cart repo.CartRepository, products repo.ProductRepository, log *zap.Logger) *CartUsecase {
	return &CartUsecase{cart: cart, products: products, log: log}
}

func (u *CartUsecase) Get(ctx context.Context) (model.Cart, error) {
	return u.cart.Get(ctx)
}

// 追加（同一商品は数量マージ）。価格と名前は追加時点のスナップショット。
func (u *CartUsecase) Add(ctx context.Context, productID int64, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	product, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	if product.Stock < qty {
		return fmt.Errorf("%w: available %d", ErrInsufficientStock, product.Stock)
	}

	cart, err := u.cart.Get(ctx)
	if err != nil {
		return err
	}
	item, err := model.NewCartItem(productID, qty, product.Price, product.Name)
	if err != nil {
		return err
	}
	cart.Add(item)
	if err := u.cart.Save(ctx, cart); err != nil {
		return err
	}

	u.log.Info("added to cart", zap.Int64("product_id", productID), zap.Int64("qty", qty))
	return nil
}

func (u *CartUsecase) Remove(ctx context.Context, productID int64) error {
	cart, err := u.cart.Get(ctx)
	if err != nil {
		return err
	}
	if !cart.Remove(productID) {
		return ErrNotInCart
	}
	if err := u.cart.Save(ctx, cart); err != nil {
		return err
	}

	u.log.Info("removed from cart", zap.Int64("product_id", productID))
	return nil
}

func (u *CartUsecase) Clear(ctx context.Context) error {
	if err := u.cart.Save(ctx, model.Cart{Items: []model.CartItem{}}); err != nil {
		return err
	}
	u.log.Info("cart cleared")
	return nil
}
