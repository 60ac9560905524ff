package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	infraRepo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/repository"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/usecase"
)

func newCatalogUC(t *testing.T) (*usecase.CatalogUsecase, *store.Store) {
	t.Helper()
	st, err := store.New(t.TempDir())
	assert.NoError(t, err)
	uc := usecase.NewCatalogUsecase(
		infraRepo.NewProductRepository(st),
		infraRepo.NewCategoryRepository(st),
		infraRepo.NewMembershipRepository(st),
		infraRepo.NewPromotionRepository(st),
	)
	return uc, st
}

func TestCatalog_ListProducts(t *testing.T) {
	ctx := context.Background()
	uc, st := newCatalogUC(t)
	assert.NoError(t, st.Save("products.json", []model.Product{
		{ID: 1, Name: "Laptop", Price: dec("900"), Stock: 3, CategoryID: 1},
		{ID: 2, Name: "Mouse", Price: dec("20"), Stock: 9, CategoryID: 2},
	}))

	all, err := uc.ListProducts(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	cat1, err := uc.ListProducts(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, cat1, 1)
	assert.Equal(t, "Laptop", cat1[0].Name)
}

func TestCatalog_FindProduct_NotFound(t *testing.T) {
	uc, _ := newCatalogUC(t)
	_, err := uc.FindProduct(context.Background(), 99)
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
}

func TestCatalog_Search_RejectsBlankQuery(t *testing.T) {
	uc, _ := newCatalogUC(t)
	_, err := uc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, usecase.ErrValidation)
}
