package cli

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/usecase"
)

// CheckoutPrompterの実装。再入力ループはここに持つ。

func (c *CLI) UseOwnedMembership() bool {
	return c.askYes("Apply your membership discount? (y/n): ")
}

func (c *CLI) AskMembershipID() int64 {
	ans := c.ask("Membership ID if you have one (0 for none): ")
	if id, ok := parseID(ans); ok {
		return id
	}
	return 0
}

func (c *CLI) NotifyMembershipUnknown() {
	c.println("No such membership package. Continuing without a discount.")
}

func (c *CLI) ShowSubtotal(subtotal decimal.Decimal) {
	c.printf("Subtotal: %s\n", subtotal.StringFixed(2))
}

func (c *CLI) ShowMembership(eff usecase.MembershipEffects) {
	if eff.Membership == nil {
		return
	}
	c.printf("Membership: %s\n", eff.Membership.Name)
	c.printf("  Discount: -%s\n", eff.Discount.StringFixed(2))
	if eff.SpecialDiscount.IsPositive() {
		c.printf("  Includes bulk discount: -%s\n", eff.SpecialDiscount.StringFixed(2))
	}
	c.printf("  Points earned: %d\n", eff.PointsEarned)
	if eff.PrioritySupport {
		c.println("  Priority support is active for this order.")
	}
	c.printf("After discount: %s\n", eff.TotalAfterDiscount.StringFixed(2))
}

func (c *CLI) AskPromoCode() string {
	return c.ask("Promo code (enter to skip): ")
}

func (c *CLI) ShowPromotion(code string, res usecase.PromoResult) {
	if res.Applied {
		c.printf("Promo '%s' applied: -%s\n", code, res.Discount.StringFixed(2))
		c.printf("New total: %s\n", res.NewTotal.StringFixed(2))
		return
	}
	if code != "" {
		c.println("Promo code not found or expired.")
	}
}

// delivery/pickupのどちらかを返すまで聞き続ける
func (c *CLI) AskShippingMethod() model.ShippingMethod {
	for {
		ans := strings.ToLower(c.ask("Shipping method (delivery/pickup): "))
		switch ans {
		case "d", "1":
			ans = string(model.ShippingDelivery)
		case "p", "2":
			ans = string(model.ShippingPickup)
		}
		if m, err := model.ParseShippingMethod(ans); err == nil {
			return m
		}
		c.println("Please answer 'delivery' or 'pickup'.")
	}
}

// 空入力は再入力、b/backで中断
func (c *CLI) AskDeliveryAddress() (string, bool) {
	for {
		addr := c.ask("Delivery address (b to cancel): ")
		if strings.EqualFold(addr, "b") || strings.EqualFold(addr, "back") {
			return "", false
		}
		if addr != "" {
			return addr, true
		}
		c.println("Address must not be empty.")
	}
}

func (c *CLI) Confirm(total decimal.Decimal, shippingFee decimal.Decimal) bool {
	if shippingFee.IsPositive() {
		c.printf("Shipping fee: %s\n", shippingFee.StringFixed(2))
	} else {
		c.println("Shipping: free")
	}
	c.printf("Total to pay: %s\n", total.StringFixed(2))
	return c.askYes("Confirm the purchase? (y/n): ")
}

func (c *CLI) ConfirmMembership(m model.Membership) bool {
	c.printf("%s - %s\n", m.Name, m.Price.StringFixed(2))
	c.printf("  Discount rate: %s%%\n", m.DiscountRate.Mul(decimal.NewFromInt(100)).StringFixed(0))
	c.printf("  Points multiplier: %s\n", m.PointsMultiplier.String())
	if m.PrioritySupport {
		c.println("  Priority support included.")
	}
	if m.FreeShippingThreshold != nil {
		c.printf("  Free delivery from %s\n", m.FreeShippingThreshold.StringFixed(2))
	}
	return c.askYes("Buy this membership? (y/n): ")
}
