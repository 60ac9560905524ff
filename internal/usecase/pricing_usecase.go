package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

// Business会員の大量購入割引（数量10以上で小計の10%を上乗せ）
var (
	bulkDiscountRate = decimal.RequireFromString("0.10")
	bulkQtyThreshold = int64(10)
	hundred          = decimal.NewFromInt(100)
)

// 会員効果。DiscountはSpecialDiscount込みの合計。
type MembershipEffects struct {
	Membership         *model.Membership
	Discount           decimal.Decimal
	SpecialDiscount    decimal.Decimal
	TotalAfterDiscount decimal.Decimal
	PointsEarned       int64
	PrioritySupport    bool
	FreeShipping       bool
}

// プロモ適用結果。コード不一致・期限切れはApplied=falseで合計そのまま。
type PromoResult struct {
	NewTotal decimal.Decimal
	Discount decimal.Decimal
	Applied  bool
}

// 価格計算エンジン。読み取り以外の副作用は持たない。
type PricingUsecase struct {
	memberships repo.MembershipRepository
	promotions  repo.PromotionRepository
	clock       Clock
}

func NewPricingUsecase(
	memberships repo.MembershipRepository,
	promotions repo.PromotionRepository,
	clock Clock,
) *PricingUsecase {
	return &PricingUsecase{
		memberships: memberships,
		promotions:  promotions,
		clock:       clock,
	}
}

// 会員効果を計算する。
// membershipID=0や未知のIDはエラーではなくゼロ効果に縮退する。
// qtyは大量購入判定にだけ、methodは送料無料判定にだけ使う。
// 送料無料のしきい値は割引前の小計と比較する（他の割引と独立させる意図的な仕様）。
func (u *PricingUsecase) ComputeMembershipEffects(
	ctx context.Context,
	subtotal decimal.Decimal,
	membershipID int64,
	qty int64,
	method model.ShippingMethod,
) (MembershipEffects, error) {
	eff := MembershipEffects{
		Discount:           decimal.Zero,
		SpecialDiscount:    decimal.Zero,
		TotalAfterDiscount: subtotal,
	}
	if membershipID == 0 {
		return eff, nil
	}

	mem, err := u.memberships.FindByID(ctx, membershipID)
	if errors.Is(err, repo.ErrNotFound) {
		// 解決できない会員IDはゼロ効果（エラーにしない）
		return eff, nil
	}
	if err != nil {
		return MembershipEffects{}, err
	}

	eff.Membership = &mem
	eff.Discount = subtotal.Mul(mem.DiscountRate)

	// ポイントは小数切り捨て
	eff.PointsEarned = subtotal.Mul(mem.PointsMultiplier).IntPart()
	eff.PrioritySupport = mem.PrioritySupport

	// Business会員の大量購入は追加で小計の10%（基本割引とは別に積算）
	if mem.IsBusiness() && qty >= bulkQtyThreshold {
		eff.SpecialDiscount = subtotal.Mul(bulkDiscountRate)
		eff.Discount = eff.Discount.Add(eff.SpecialDiscount)
	}

	eff.TotalAfterDiscount = decimal.Max(subtotal.Sub(eff.Discount), decimal.Zero)

	if method == model.ShippingDelivery && mem.FreeShippingThreshold != nil {
		eff.FreeShipping = subtotal.GreaterThanOrEqual(*mem.FreeShippingThreshold)
	}

	return eff, nil
}

// プロモコードを合計に適用する。
// 空コードは照合せずそのまま返す。不一致・期限外はソフト失敗（Applied=false）。
func (u *PricingUsecase) ApplyPromotion(ctx context.Context, total decimal.Decimal, code string) (PromoResult, error) {
	miss := PromoResult{NewTotal: total, Discount: decimal.Zero}
	code = strings.TrimSpace(code)
	if code == "" {
		return miss, nil
	}

	promo, err := u.promotions.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return miss, nil
	}
	if err != nil {
		return PromoResult{}, err
	}

	if !promo.ActiveAt(u.clock.Now()) {
		return miss, nil
	}

	var discount decimal.Decimal
	switch promo.DiscountType {
	case model.DiscountPercent:
		discount = total.Mul(promo.Value).Div(hundred)
	case model.DiscountFixed:
		discount = promo.Value
	default:
		// 未知のdiscount_typeは無効なレコード扱い
		return miss, nil
	}

	return PromoResult{
		NewTotal: decimal.Max(total.Sub(discount), decimal.Zero),
		Discount: discount,
		Applied:  true,
	}, nil
}
