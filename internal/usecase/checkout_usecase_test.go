package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	infraRepo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/repository"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/usecase"
)

// checkoutはJSONストア実体に対して検証する（プロンプトだけ台本で差し替え）。

type scriptPrompter struct {
	useOwned     bool
	membershipID int64
	promoCode    string
	method       model.ShippingMethod
	address      string
	cancelAddr   bool
	confirm      bool
	confirmMem   bool

	notifiedUnknown bool
	shownPromo      *usecase.PromoResult
	confirmedTotal  decimal.Decimal
	confirmedFee    decimal.Decimal
}

func (p *scriptPrompter) UseOwnedMembership() bool { return p.useOwned }
func (p *scriptPrompter) AskMembershipID() int64   { return p.membershipID }
func (p *scriptPrompter) NotifyMembershipUnknown() { p.notifiedUnknown = true }

func (p *scriptPrompter) ShowSubtotal(decimal.Decimal)            {}
func (p *scriptPrompter) ShowMembership(usecase.MembershipEffects) {}
func (p *scriptPrompter) AskPromoCode() string                    { return p.promoCode }
func (p *scriptPrompter) ShowPromotion(code string, res usecase.PromoResult) {
	p.shownPromo = &res
}

func (p *scriptPrompter) AskShippingMethod() model.ShippingMethod { return p.method }
func (p *scriptPrompter) AskDeliveryAddress() (string, bool) {
	if p.cancelAddr {
		return "", false
	}
	return p.address, true
}

func (p *scriptPrompter) Confirm(total decimal.Decimal, fee decimal.Decimal) bool {
	p.confirmedTotal = total
	p.confirmedFee = fee
	return p.confirm
}

func (p *scriptPrompter) ConfirmMembership(model.Membership) bool { return p.confirmMem }

type checkoutEnv struct {
	st       *store.Store
	products repo.ProductRepository
	cart     repo.CartRepository
	orders   repo.OrderRepository
	users    repo.UserRepository
	cartUC   *usecase.CartUsecase
	uc       *usecase.CheckoutUsecase
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()
	st, err := store.New(t.TempDir())
	assert.NoError(t, err)

	products := infraRepo.NewProductRepository(st)
	memberships := infraRepo.NewMembershipRepository(st)
	promotions := infraRepo.NewPromotionRepository(st)
	cart := infraRepo.NewCartRepository(st)
	orders := infraRepo.NewOrderRepository(st)
	users := infraRepo.NewUserRepository(st)

	clock := fixedClock{t: testNow}
	log := zap.NewNop()
	pricing := usecase.NewPricingUsecase(memberships, promotions, clock)
	accounts := usecase.NewAccountUsecase(orders, users, log)

	return &checkoutEnv{
		st:       st,
		products: products,
		cart:     cart,
		orders:   orders,
		users:    users,
		cartUC:   usecase.NewCartUsecase(cart, products, log),
		uc: usecase.NewCheckoutUsecase(
			products, memberships, cart, orders, users,
			pricing, accounts, clock, dec("50"), log),
	}
}

func (e *checkoutEnv) seedProducts(t *testing.T, products ...model.Product) {
	t.Helper()
	assert.NoError(t, e.products.SaveAll(context.Background(), products))
}

func (e *checkoutEnv) seedMemberships(t *testing.T, memberships ...model.Membership) {
	t.Helper()
	assert.NoError(t, e.st.Save("memberships.json", memberships))
}

func (e *checkoutEnv) seedPromotions(t *testing.T, promotions ...model.Promotion) {
	t.Helper()
	assert.NoError(t, e.st.Save("promotions.json", promotions))
}

func (e *checkoutEnv) seedUser(t *testing.T, u model.User) *usecase.Session {
	t.Helper()
	assert.NoError(t, e.users.Create(context.Background(), u))
	sess := &usecase.Session{}
	sess.SetUser(u)
	return sess
}

func (e *checkoutEnv) stockOf(t *testing.T, productID int64) int64 {
	t.Helper()
	p, err := e.products.FindByID(context.Background(), productID)
	assert.NoError(t, err)
	return p.Stock
}

func laptop(stock int64) model.Product {
	return model.Product{ID: 1, Name: "Laptop", Price: dec("60"), Stock: stock}
}

func TestCheckoutCart_Pickup(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 3))

	p := &scriptPrompter{method: model.ShippingPickup, confirm: true}
	order, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.NoError(t, err)

	assert.Equal(t, int64(1), order.ID)
	assert.True(t, order.Total.Equal(dec("180")))
	assert.True(t, order.ShippingFee.IsZero())
	assert.Equal(t, model.ShippingPickup, order.ShippingMethod)
	assert.Equal(t, "ann@example.com", order.UserEmail)

	// 在庫が減り、カートが空になり、ユーザーに注文が紐付く
	assert.Equal(t, int64(7), env.stockOf(t, 1))
	cart, err := env.cart.Get(ctx)
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	user, err := env.users.FindByEmail(ctx, "ann@example.com")
	assert.NoError(t, err)
	assert.Equal(t, []int64{1}, user.Orders)
	assert.Equal(t, []int64{1}, sess.User.Orders)
}

func TestCheckoutCart_OwnedMembershipPickup(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, model.Product{ID: 1, Name: "Desk", Price: dec("200"), Stock: 10})
	env.seedMemberships(t, model.Membership{
		ID: 3, Name: "Gold", DiscountRate: dec("0.10"), PointsMultiplier: dec("1"),
	})
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}, MembershipID: 3})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 1))

	p := &scriptPrompter{useOwned: true, method: model.ShippingPickup, confirm: true}
	order, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.NoError(t, err)

	assert.True(t, order.MembershipDiscount.Equal(dec("20")))
	assert.True(t, order.ShippingFee.IsZero())
	assert.True(t, order.Total.Equal(dec("180")))
	assert.Equal(t, int64(9), env.stockOf(t, 1))
}

func TestCheckoutCart_DeliveryAddsFee(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 3))

	p := &scriptPrompter{method: model.ShippingDelivery, address: "12 Main St", confirm: true}
	order, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.NoError(t, err)

	assert.True(t, order.Total.Equal(dec("230")))
	assert.True(t, order.ShippingFee.Equal(dec("50")))
	assert.Equal(t, "12 Main St", order.Address)
	assert.True(t, p.confirmedFee.Equal(dec("50")))
}

func TestCheckoutCart_FreeShippingOverThreshold(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	threshold := dec("200")
	env.seedProducts(t, model.Product{ID: 1, Name: "Monitor", Price: dec("50"), Stock: 10})
	env.seedMemberships(t, model.Membership{
		ID: 2, Name: "Premium",
		DiscountRate:          dec("0.05"),
		PointsMultiplier:      dec("2"),
		FreeShippingThreshold: &threshold,
	})
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}, MembershipID: 2})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 5)) // 小計250

	p := &scriptPrompter{useOwned: true, method: model.ShippingDelivery, address: "12 Main St", confirm: true}
	order, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.NoError(t, err)

	// 250 - 5% = 237.50、割引前小計250 >= 200で送料無料
	assert.True(t, order.ShippingFee.IsZero())
	assert.True(t, order.Total.Equal(dec("237.50")), "total=%s", order.Total)
	assert.True(t, order.MembershipDiscount.Equal(dec("12.50")))
}

func TestCheckoutCart_PromoAfterMembershipDiscount(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	env.seedMemberships(t, model.Membership{
		ID: 2, Name: "Premium", DiscountRate: dec("0.10"), PointsMultiplier: dec("1"),
	})
	env.seedPromotions(t, model.Promotion{
		Code: "SAVE10", DiscountType: model.DiscountPercent, Value: dec("10"),
		StartDate: "2026-08-01", EndDate: "2026-08-31",
	})
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 3)) // 小計180

	// 会員IDはその場入力、プロモは小文字でも通る
	p := &scriptPrompter{membershipID: 2, promoCode: "save10", method: model.ShippingPickup, confirm: true}
	order, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.NoError(t, err)

	// 180 - 10% = 162、プロモ10%は162に対して → 145.80
	assert.True(t, order.MembershipDiscount.Equal(dec("18")))
	assert.True(t, order.PromoDiscount.Equal(dec("16.2")), "promo=%s", order.PromoDiscount)
	assert.True(t, order.Total.Equal(dec("145.8")), "total=%s", order.Total)
	assert.NotNil(t, p.shownPromo)
	assert.True(t, p.shownPromo.Applied)
}

func TestCheckoutCart_UnknownMembershipIgnored(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 1))

	p := &scriptPrompter{membershipID: 77, method: model.ShippingPickup, confirm: true}
	order, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.NoError(t, err)
	assert.True(t, p.notifiedUnknown)
	assert.True(t, order.MembershipDiscount.IsZero())
	assert.True(t, order.Total.Equal(dec("60")))
}

func TestCheckoutCart_EmptyCart(t *testing.T) {
	env := newCheckoutEnv(t)
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})

	_, err := env.uc.CheckoutCart(context.Background(), sess, &scriptPrompter{})
	assert.ErrorIs(t, err, usecase.ErrCartEmpty)
}

func TestCheckoutCart_DeclinedConfirm_NoSideEffects(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 3))

	p := &scriptPrompter{method: model.ShippingPickup, confirm: false}
	_, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.ErrorIs(t, err, usecase.ErrCanceled)

	// 副作用ゼロ：在庫・カート・注文・ユーザーのどれも変わらない
	assert.Equal(t, int64(10), env.stockOf(t, 1))
	cart, err := env.cart.Get(ctx)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	orders, err := env.orders.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, orders)
	user, err := env.users.FindByEmail(ctx, "ann@example.com")
	assert.NoError(t, err)
	assert.Empty(t, user.Orders)
}

func TestCheckoutCart_CanceledAddress_NoSideEffects(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 1))

	p := &scriptPrompter{method: model.ShippingDelivery, cancelAddr: true}
	_, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.ErrorIs(t, err, usecase.ErrCanceled)
	assert.Equal(t, int64(10), env.stockOf(t, 1))
}

func TestCheckoutCart_StockFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(5))
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 5))

	// カート追加後に在庫が3へ下がった（スナップショット数量5のまま購入）
	env.seedProducts(t, laptop(3))

	p := &scriptPrompter{method: model.ShippingPickup, confirm: true}
	_, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), env.stockOf(t, 1))
}

func TestCheckoutCart_VanishedProductAborts(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 1))

	// カートに入れた後で商品コレクションから消えた
	assert.NoError(t, env.products.SaveAll(ctx, []model.Product{}))

	p := &scriptPrompter{method: model.ShippingPickup, confirm: true}
	_, err := env.uc.CheckoutCart(ctx, sess, p)
	assert.ErrorIs(t, err, usecase.ErrProductVanished)

	orders, err := env.orders.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_Anonymous(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	assert.NoError(t, env.cartUC.Add(ctx, 1, 1))

	p := &scriptPrompter{method: model.ShippingPickup, confirm: true}
	order, err := env.uc.CheckoutCart(ctx, &usecase.Session{}, p)
	assert.NoError(t, err)
	assert.Empty(t, order.UserEmail)
	assert.Equal(t, int64(9), env.stockOf(t, 1))
}

func TestPurchaseDirect(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 2)) // カートは触られないはず

	p := &scriptPrompter{method: model.ShippingPickup, confirm: true}
	order, err := env.uc.PurchaseDirect(ctx, sess, 1, 3, p)
	assert.NoError(t, err)
	assert.True(t, order.Total.Equal(dec("180")))
	assert.Equal(t, int64(7), env.stockOf(t, 1))

	cart, err := env.cart.Get(ctx)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].Qty)
}

func TestPurchaseDirect_Validation(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(2))
	sess := &usecase.Session{}

	_, err := env.uc.PurchaseDirect(ctx, sess, 1, 0, &scriptPrompter{})
	assert.ErrorIs(t, err, usecase.ErrInvalidQuantity)

	_, err = env.uc.PurchaseDirect(ctx, sess, 99, 1, &scriptPrompter{})
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)

	_, err = env.uc.PurchaseDirect(ctx, sess, 1, 3, &scriptPrompter{})
	assert.ErrorIs(t, err, usecase.ErrInsufficientStock)
}

func TestPurchaseFromCart_RemovesOnlyThatLine(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedProducts(t,
		laptop(10),
		model.Product{ID: 2, Name: "Mouse", Price: dec("10"), Stock: 10},
	)
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	assert.NoError(t, env.cartUC.Add(ctx, 1, 2))
	assert.NoError(t, env.cartUC.Add(ctx, 2, 4))

	p := &scriptPrompter{method: model.ShippingPickup, confirm: true}
	order, err := env.uc.PurchaseFromCart(ctx, sess, 2, p)
	assert.NoError(t, err)
	assert.True(t, order.Total.Equal(dec("40")))
	assert.Equal(t, int64(6), env.stockOf(t, 2))
	assert.Equal(t, int64(10), env.stockOf(t, 1))

	cart, err := env.cart.Get(ctx)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(1), cart.Items[0].ProductID)
}

func TestPurchaseFromCart_NotInCart(t *testing.T) {
	env := newCheckoutEnv(t)
	env.seedProducts(t, laptop(10))

	_, err := env.uc.PurchaseFromCart(context.Background(), &usecase.Session{}, 1, &scriptPrompter{})
	assert.ErrorIs(t, err, usecase.ErrNotInCart)
}

func TestPurchaseMembership(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedMemberships(t, model.Membership{
		ID: 2, Name: "Premium", Price: dec("99"),
		DiscountRate: dec("0.05"), PointsMultiplier: dec("2"),
	})
	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})

	p := &scriptPrompter{confirmMem: true}
	order, err := env.uc.PurchaseMembership(ctx, sess, 2, p)
	assert.NoError(t, err)

	assert.Equal(t, model.ShippingMembership, order.ShippingMethod)
	assert.True(t, order.Total.Equal(dec("99")))
	assert.True(t, order.ShippingFee.IsZero())
	assert.Equal(t, int64(2), order.Items[0].MembershipID)

	// ユーザーとセッションの両方に反映される
	user, err := env.users.FindByEmail(ctx, "ann@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), user.MembershipID)
	assert.Equal(t, []int64{1}, user.Orders)
	assert.Equal(t, int64(2), sess.User.MembershipID)
}

func TestPurchaseMembership_Guards(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	env.seedMemberships(t, model.Membership{ID: 2, Name: "Premium", Price: dec("99")})

	_, err := env.uc.PurchaseMembership(ctx, &usecase.Session{}, 2, &scriptPrompter{confirmMem: true})
	assert.ErrorIs(t, err, usecase.ErrLoginRequired)

	sess := env.seedUser(t, model.User{Name: "Ann", Email: "ann@example.com", Orders: []int64{}})
	_, err = env.uc.PurchaseMembership(ctx, sess, 99, &scriptPrompter{confirmMem: true})
	assert.ErrorIs(t, err, usecase.ErrMembershipUnknown)

	_, err = env.uc.PurchaseMembership(ctx, sess, 2, &scriptPrompter{confirmMem: false})
	assert.ErrorIs(t, err, usecase.ErrCanceled)
	orders, err := env.orders.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}
