package cli

import (
	"context"

	"github.com/shopspring/decimal"
)

// 会員パッケージの一覧と購入
func (c *CLI) membershipMenu(ctx context.Context) {
	for {
		memberships, err := c.catalog.ListMemberships(ctx)
		if err != nil {
			c.showError(err)
			return
		}
		c.println("\n--- Membership packages ---")
		for _, m := range memberships {
			c.printf("%d. %s - %s (discount %s%%, points x%s)\n",
				m.ID, m.Name, m.Price.StringFixed(2),
				m.DiscountRate.Mul(decimal.NewFromInt(100)).StringFixed(0),
				m.PointsMultiplier.String())
		}
		if c.sess.LoggedIn() && c.sess.User.HasMembership() {
			c.printf("You currently own membership #%d.\n", c.sess.User.MembershipID)
		}

		ans := c.ask("Membership ID to buy (b to go back): ")
		if isBack(ans) {
			return
		}
		id, ok := parseID(ans)
		if !ok {
			c.println("Invalid choice.")
			continue
		}
		order, err := c.checkout.PurchaseMembership(ctx, c.sess, id, c)
		if err != nil {
			c.showError(err)
			continue
		}
		c.printf("Order #%d accepted. Welcome to the club!\n", order.ID)
		// 会員情報が変わったのでトークンも作り直す
		if c.sess.User != nil {
			c.saveSession(*c.sess.User)
		}
		return
	}
}

func (c *CLI) checkoutLoop(ctx context.Context) {
	order, err := c.checkout.CheckoutCart(ctx, c.sess, c)
	if err != nil {
		c.showError(err)
		return
	}
	c.printf("Order #%d accepted. Total: %s\n", order.ID, order.Total.StringFixed(2))
	c.println("Thank you for your purchase!")
}

func (c *CLI) supportMenu(ctx context.Context) {
	c.println("\n--- Contact support ---")
	name := c.sess.Name()
	email := c.sess.Email()
	if name == "" {
		name = c.ask("Your name: ")
	}
	if email == "" {
		email = c.ask("Your email: ")
	}
	subject := c.ask("Subject (enter to skip): ")
	message := c.ask("Message: ")

	msg, err := c.support.Send(ctx, name, email, subject, message)
	if err != nil {
		c.showError(err)
		return
	}
	c.printf("Message #%d received. We will get back to you at %s.\n", msg.ID, msg.Email)
}

func (c *CLI) viewMyOrders(ctx context.Context) {
	if !c.sess.LoggedIn() {
		c.println("Please log in first.")
		return
	}
	orders, err := c.accounts.OrdersForUser(ctx, c.sess.Email())
	if err != nil {
		c.showError(err)
		return
	}
	if len(orders) == 0 {
		c.println("You have no orders yet.")
		return
	}
	c.println("\n--- Your orders ---")
	for _, o := range orders {
		c.printf("Order #%d (%s) - total %s\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.Total.StringFixed(2))
		for _, it := range o.Items {
			c.printf("  %s x %d @ %s\n", it.Name, it.Qty, it.UnitPrice.StringFixed(2))
		}
		if o.ShippingMethod != "" {
			c.printf("  Shipping: %s", o.ShippingMethod)
			if o.Address != "" {
				c.printf(" to %s", o.Address)
			}
			c.println()
		}
	}
}
