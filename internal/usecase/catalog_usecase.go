package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

// カタログの読み取り専用ビュー
type CatalogUsecase struct {
	products    repo.ProductRepository
	categories  repo.CategoryRepository
	memberships repo.MembershipRepository
	promotions  repo.PromotionRepository
}

func NewCatalogUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	memberships repo.MembershipRepository,
	promotions repo.PromotionRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		products:    products,
		categories:  categories,
		memberships: memberships,
		promotions:  promotions,
	}
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// categoryID=0で全件
func (u *CatalogUsecase) ListProducts(ctx context.Context, categoryID int64) ([]model.Product, error) {
	if categoryID == 0 {
		return u.products.List(ctx)
	}
	return u.products.ListByCategory(ctx, categoryID)
}

func (u *CatalogUsecase) FindProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, ErrProductNotFound
	}
	return p, err
}

func (u *CatalogUsecase) Search(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrValidation
	}
	return u.products.Search(ctx, query)
}

func (u *CatalogUsecase) ListMemberships(ctx context.Context) ([]model.Membership, error) {
	return u.memberships.List(ctx)
}

func (u *CatalogUsecase) ListPromotions(ctx context.Context) ([]model.Promotion, error) {
	return u.promotions.List(ctx)
}
