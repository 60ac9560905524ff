package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

// 管理者ビュー（全ユーザー・売上集計・全注文・商品追加）
type AdminUsecase struct {
	products repo.ProductRepository
	orders   repo.OrderRepository
	users    repo.UserRepository
	accounts *AccountUsecase
	log      *zap.Logger
}

func NewAdminUsecase(
	products repo.ProductRepository,
	orders repo.OrderRepository,
	users repo.UserRepository,
	accounts *AccountUsecase,
	log *zap.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		products: products,
		orders:   orders,
		users:    users,
		accounts: accounts,
		log:      log,
	}
}

type UserReport struct {
	User   model.User
	Orders []model.Order
}

// 全ユーザーとそれぞれの注文履歴
func (u *AdminUsecase) UsersReport(ctx context.Context) ([]UserReport, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]UserReport, 0, len(users))
	for _, usr := range users {
		orders, err := u.accounts.OrdersForUser(ctx, usr.Email)
		if err != nil {
			return nil, err
		}
		reports = append(reports, UserReport{User: usr, Orders: orders})
	}
	return reports, nil
}

type ProductSales struct {
	Product model.Product
	Sold    int64
}

// カタログを売れた/売れてないに二分したレポート
type SalesReport struct {
	Sold   []ProductSales
	Unsold []model.Product
}

// 全注文の明細数量を商品ごとに合算する
func (u *AdminUsecase) Sales(ctx context.Context) (SalesReport, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return SalesReport{}, err
	}
	orders, err := u.orders.List(ctx)
	if err != nil {
		return SalesReport{}, err
	}

	soldCounts := make(map[int64]int64)
	for _, o := range orders {
		for _, it := range o.Items {
			if it.ProductID == 0 {
				// 会員パッケージの明細は商品売上に含めない
				continue
			}
			soldCounts[it.ProductID] += it.Qty
		}
	}

	var report SalesReport
	for _, p := range products {
		if count, ok := soldCounts[p.ID]; ok {
			report.Sold = append(report.Sold, ProductSales{Product: p, Sold: count})
		} else {
			report.Unsold = append(report.Unsold, p)
		}
	}
	return report, nil
}

type OrderWithBuyer struct {
	Order model.Order
	// 匿名購入や消えたユーザーはnil
	Buyer *model.User
}

func (u *AdminUsecase) AllOrders(ctx context.Context) ([]OrderWithBuyer, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OrderWithBuyer, 0, len(orders))
	for _, o := range orders {
		entry := OrderWithBuyer{Order: o}
		if o.UserEmail != "" {
			if buyer, err := u.users.FindByEmail(ctx, o.UserEmail); err == nil {
				entry.Buyer = &buyer
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

type AddProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock int64
	// どちらか一方だけ使う（数字入力ならカテゴリID、それ以外は自由なタグ）
	CategoryID int64
	Type       string
}

func (u *AdminUsecase) AddProduct(ctx context.Context, in AddProductInput) (model.Product, error) {
	p, err := model.NewProduct(0, strings.TrimSpace(in.Name), in.Price, in.Stock)
	if err != nil {
		return model.Product{}, err
	}
	p.CategoryID = in.CategoryID
	p.Type = in.Type

	created, err := u.products.Create(ctx, p)
	if err != nil {
		return model.Product{}, err
	}
	u.log.Info("product added",
		zap.Int64("product_id", created.ID),
		zap.String("name", created.Name),
		zap.String("price", created.Price.StringFixed(2)),
		zap.Int64("stock", created.Stock))
	return created, nil
}
