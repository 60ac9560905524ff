package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

// checkoutの判断ポイントで利用者に問い合わせる約束。
// CLIが実装する。再入力ループ（配送方法・住所の必須化）は実装側の責務。
type CheckoutPrompter interface {
	// 所有済み会員プランを適用するか
	UseOwnedMembership() bool
	// その場で会員IDを入力させる（0=なし）
	AskMembershipID() int64
	// 入力された会員IDが解決できなかった（無視して続行する通知）
	NotifyMembershipUnknown()

	ShowSubtotal(subtotal decimal.Decimal)
	ShowMembership(eff MembershipEffects)
	AskPromoCode() string
	// Applied=falseかつコードが空でない場合は「見つからないか期限切れ」の通知を出す
	ShowPromotion(code string, res PromoResult)

	// deliveryかpickupのどちらかを必ず返す
	AskShippingMethod() model.ShippingMethod
	// ok=falseでcheckout全体を中断
	AskDeliveryAddress() (address string, ok bool)

	// 最終確認。falseなら副作用ゼロで中断。
	Confirm(total decimal.Decimal, shippingFee decimal.Decimal) bool
	// 会員パッケージ購入の確認
	ConfirmMembership(m model.Membership) bool
}

// checkoutの状態遷移（Pricing → Shipping → Confirmation → Committed/Aborted）を
// 1回の呼び出しで進める。最終確認までは一切書き込まない。
type CheckoutUsecase struct {
	products    repo.ProductRepository
	memberships repo.MembershipRepository
	cart        repo.CartRepository
	orders      repo.OrderRepository
	users       repo.UserRepository
	pricing     *PricingUsecase
	accounts    *AccountUsecase
	clock       Clock
	shippingFee decimal.Decimal
	log         *zap.Logger
}

func NewCheckoutUsecase(
	products repo.ProductRepository,
	memberships repo.MembershipRepository,
	cart repo.CartRepository,
	orders repo.OrderRepository,
	users repo.UserRepository,
	pricing *PricingUsecase,
	accounts *AccountUsecase,
	clock Clock,
	shippingFee decimal.Decimal,
	log *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		products:    products,
		memberships: memberships,
		cart:        cart,
		orders:      orders,
		users:       users,
		pricing:     pricing,
		accounts:    accounts,
		clock:       clock,
		shippingFee: shippingFee,
		log:         log,
	}
}

// カート全体のcheckout。カートが空なら何もせず失敗する。
// コミット時はカートを丸ごと空にする。
func (u *CheckoutUsecase) CheckoutCart(ctx context.Context, sess *Session, io CheckoutPrompter) (model.Order, error) {
	cart, err := u.cart.Get(ctx)
	if err != nil {
		return model.Order{}, err
	}
	if cart.IsEmpty() {
		return model.Order{}, ErrCartEmpty
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Name:      it.Name,
		})
	}

	order, err := u.runPricingAndShipping(ctx, sess, io, cart.Subtotal(), cart.TotalQty(), items)
	if err != nil {
		return model.Order{}, err
	}

	return u.commit(ctx, sess, order, true, 0)
}

// カートを通さない単品購入（buy nowと会員購入が使う）。
func (u *CheckoutUsecase) PurchaseDirect(ctx context.Context, sess *Session, productID int64, qty int64, io CheckoutPrompter) (model.Order, error) {
	if qty <= 0 {
		return model.Order{}, ErrInvalidQuantity
	}
	product, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, ErrProductNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	if product.Stock < qty {
		return model.Order{}, fmt.Errorf("%w: available %d", ErrInsufficientStock, product.Stock)
	}

	subtotal := product.Price.Mul(decimal.NewFromInt(qty))
	items := []model.OrderItem{{
		ProductID: productID,
		Qty:       qty,
		UnitPrice: product.Price,
		Name:      product.Name,
	}}

	order, err := u.runPricingAndShipping(ctx, sess, io, subtotal, qty, items)
	if err != nil {
		return model.Order{}, err
	}

	return u.commit(ctx, sess, order, false, 0)
}

// カート内の1明細をその数量で購入する。成功時はその明細だけを取り除く。
func (u *CheckoutUsecase) PurchaseFromCart(ctx context.Context, sess *Session, productID int64, io CheckoutPrompter) (model.Order, error) {
	cart, err := u.cart.Get(ctx)
	if err != nil {
		return model.Order{}, err
	}
	item := cart.Find(productID)
	if item == nil {
		return model.Order{}, ErrNotInCart
	}
	qty := item.Qty

	product, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, ErrProductNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	if product.Stock < qty {
		return model.Order{}, fmt.Errorf("%w: available %d", ErrInsufficientStock, product.Stock)
	}

	subtotal := product.Price.Mul(decimal.NewFromInt(qty))
	items := []model.OrderItem{{
		ProductID: productID,
		Qty:       qty,
		UnitPrice: product.Price,
		Name:      product.Name,
	}}

	order, err := u.runPricingAndShipping(ctx, sess, io, subtotal, qty, items)
	if err != nil {
		return model.Order{}, err
	}

	return u.commit(ctx, sess, order, false, productID)
}

// 会員パッケージ購入。縮退ケース：在庫チェックなし・配送ステップなし。
// コミットで会員IDをユーザーとセッションに即時反映する。
func (u *CheckoutUsecase) PurchaseMembership(ctx context.Context, sess *Session, membershipID int64, io CheckoutPrompter) (model.Order, error) {
	if !sess.LoggedIn() {
		return model.Order{}, ErrLoginRequired
	}
	mem, err := u.memberships.FindByID(ctx, membershipID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, ErrMembershipUnknown
	}
	if err != nil {
		return model.Order{}, err
	}

	if !io.ConfirmMembership(mem) {
		return model.Order{}, ErrCanceled
	}

	order := model.Order{
		Items: []model.OrderItem{{
			MembershipID: membershipID,
			Qty:          1,
			UnitPrice:    mem.Price,
			Name:         "Membership: " + mem.Name,
		}},
		Subtotal:           mem.Price,
		MembershipDiscount: decimal.Zero,
		PromoDiscount:      decimal.Zero,
		ShippingFee:        decimal.Zero,
		Total:              mem.Price,
		ShippingMethod:     model.ShippingMembership,
		UserEmail:          sess.Email(),
		UserName:           sess.Name(),
		CreatedAt:          u.clock.Now(),
	}

	created, err := u.orders.Append(ctx, order)
	if err != nil {
		return model.Order{}, err
	}
	if err := u.accounts.RecordOrder(ctx, created.ID, sess.Email()); err != nil {
		return model.Order{}, err
	}

	// 会員プランをユーザーに永続化（セッションも更新）
	user, err := u.users.FindByEmail(ctx, sess.Email())
	if err != nil {
		return model.Order{}, err
	}
	user.MembershipID = membershipID
	if err := u.users.Update(ctx, user); err != nil {
		return model.Order{}, err
	}
	sess.SetUser(user)

	u.log.Info("membership purchased",
		zap.Int64("order_id", created.ID),
		zap.Int64("membership_id", membershipID),
		zap.String("email", sess.Email()))
	return created, nil
}

// Pricing → Shippingの共通部分。確認まで済ませた注文（ID未採番）を返す。
// 割引の適用順は固定：会員割引が先、プロモがその後（それぞれ適用時点の合計に対して計算）。
func (u *CheckoutUsecase) runPricingAndShipping(
	ctx context.Context,
	sess *Session,
	io CheckoutPrompter,
	subtotal decimal.Decimal,
	qtyTotal int64,
	items []model.OrderItem,
) (model.Order, error) {
	io.ShowSubtotal(subtotal)

	membershipID, err := u.resolveMembership(ctx, sess, io)
	if err != nil {
		return model.Order{}, err
	}

	// プレビューでは配送方法が未定なので送料無料判定はしない
	eff, err := u.pricing.ComputeMembershipEffects(ctx, subtotal, membershipID, qtyTotal, "")
	if err != nil {
		return model.Order{}, err
	}
	io.ShowMembership(eff)

	code := io.AskPromoCode()
	promo, err := u.pricing.ApplyPromotion(ctx, eff.TotalAfterDiscount, code)
	if err != nil {
		return model.Order{}, err
	}
	io.ShowPromotion(code, promo)

	method := io.AskShippingMethod()
	shippingFee := decimal.Zero
	address := ""
	if method == model.ShippingDelivery {
		addr, ok := io.AskDeliveryAddress()
		if !ok {
			return model.Order{}, ErrCanceled
		}
		address = addr

		// 配送方法が決まったので送料無料の再判定（割引前小計ベース）
		effShip, err := u.pricing.ComputeMembershipEffects(ctx, subtotal, membershipID, qtyTotal, method)
		if err != nil {
			return model.Order{}, err
		}
		if !effShip.FreeShipping {
			shippingFee = u.shippingFee
		}
	}

	total := promo.NewTotal.Add(shippingFee)
	if !io.Confirm(total, shippingFee) {
		return model.Order{}, ErrCanceled
	}

	return model.Order{
		Items:              items,
		Subtotal:           subtotal,
		MembershipDiscount: eff.Discount,
		PromoDiscount:      promo.Discount,
		ShippingFee:        shippingFee,
		Total:              total,
		ShippingMethod:     method,
		Address:            address,
		UserEmail:          sess.Email(),
		UserName:           sess.Name(),
		CreatedAt:          u.clock.Now(),
	}, nil
}

// 会員IDの解決。
// 所有済みなら適用するか聞く。未所有ならその場入力を受け、未知のIDは通知して無視。
func (u *CheckoutUsecase) resolveMembership(ctx context.Context, sess *Session, io CheckoutPrompter) (int64, error) {
	if sess.LoggedIn() && sess.User.HasMembership() {
		if io.UseOwnedMembership() {
			return sess.User.MembershipID, nil
		}
		return 0, nil
	}

	id := io.AskMembershipID()
	if id == 0 {
		return 0, nil
	}
	_, err := u.memberships.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		io.NotifyMembershipUnknown()
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// コミット（順序固定の一括書き込み）：
// 注文追記 → 在庫減算を保存 → ユーザーへ紐付け → カート整理。
// 書き込みを始める前に購入対象が全て存在することを確認する。
func (u *CheckoutUsecase) commit(ctx context.Context, sess *Session, order model.Order, clearCart bool, removeProductID int64) (model.Order, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return model.Order{}, err
	}
	index := make(map[int64]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}
	for _, it := range order.Items {
		if it.ProductID == 0 {
			continue
		}
		if _, ok := index[it.ProductID]; !ok {
			return model.Order{}, fmt.Errorf("%w: id %d", ErrProductVanished, it.ProductID)
		}
	}

	created, err := u.orders.Append(ctx, order)
	if err != nil {
		return model.Order{}, err
	}

	for _, it := range created.Items {
		if it.ProductID == 0 {
			continue
		}
		products[index[it.ProductID]].DecreaseStock(it.Qty)
	}
	if err := u.products.SaveAll(ctx, products); err != nil {
		return model.Order{}, err
	}

	if err := u.accounts.RecordOrder(ctx, created.ID, sess.Email()); err != nil {
		return model.Order{}, err
	}
	if sess.LoggedIn() {
		sess.User.Orders = append(sess.User.Orders, created.ID)
	}

	if clearCart {
		if err := u.cart.Save(ctx, model.Cart{Items: []model.CartItem{}}); err != nil {
			return model.Order{}, err
		}
	} else if removeProductID != 0 {
		cart, err := u.cart.Get(ctx)
		if err != nil {
			return model.Order{}, err
		}
		if cart.Remove(removeProductID) {
			if err := u.cart.Save(ctx, cart); err != nil {
				return model.Order{}, err
			}
		}
	}

	u.log.Info("order committed",
		zap.Int64("order_id", created.ID),
		zap.String("total", created.Total.StringFixed(2)),
		zap.String("shipping_method", string(created.ShippingMethod)),
		zap.String("email", created.UserEmail))
	return created, nil
}
