package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/usecase"
)

// 管理者メニュー。抜けると通常メニューへ合流する。
func (c *CLI) adminMenu(ctx context.Context) {
	for {
		c.println("\n=== Admin ===")
		c.println("1. Users report")
		c.println("2. Sales report")
		c.println("3. All orders")
		c.println("4. Add product")
		c.println("5. Promotions")
		c.println("0. Continue to the shop")

		switch c.ask("Choice: ") {
		case "0", "":
			return
		case "1":
			c.adminUsersReport(ctx)
		case "2":
			c.adminSalesReport(ctx)
		case "3":
			c.adminAllOrders(ctx)
		case "4":
			c.adminAddProduct(ctx)
		case "5":
			c.adminPromotions(ctx)
		default:
			c.println("Invalid choice.")
		}
	}
}

func (c *CLI) adminUsersReport(ctx context.Context) {
	reports, err := c.admin.UsersReport(ctx)
	if err != nil {
		c.showError(err)
		return
	}
	c.println("\n--- Users ---")
	for _, r := range reports {
		c.printf("%s <%s>", r.User.Name, r.User.Email)
		if r.User.IsAdmin {
			c.printf(" [admin]")
		}
		if r.User.HasMembership() {
			c.printf(" membership #%d", r.User.MembershipID)
		}
		c.println()
		if len(r.Orders) == 0 {
			c.println("  no orders")
			continue
		}
		for _, o := range r.Orders {
			c.printf("  order #%d - %s\n", o.ID, o.Total.StringFixed(2))
		}
	}
}

func (c *CLI) adminSalesReport(ctx context.Context) {
	report, err := c.admin.Sales(ctx)
	if err != nil {
		c.showError(err)
		return
	}
	c.println("\n--- Sold ---")
	if len(report.Sold) == 0 {
		c.println("Nothing sold yet.")
	}
	for _, s := range report.Sold {
		c.printf("%s: %d sold (stock left: %d)\n", s.Product.Name, s.Sold, s.Product.Stock)
	}
	c.println("--- Not sold yet ---")
	if len(report.Unsold) == 0 {
		c.println("Everything has sold at least once.")
	}
	for _, p := range report.Unsold {
		c.printf("%s (stock: %d)\n", p.Name, p.Stock)
	}
}

func (c *CLI) adminAllOrders(ctx context.Context) {
	orders, err := c.admin.AllOrders(ctx)
	if err != nil {
		c.showError(err)
		return
	}
	if len(orders) == 0 {
		c.println("No orders yet.")
		return
	}
	c.println("\n--- All orders ---")
	for _, entry := range orders {
		o := entry.Order
		buyer := "anonymous"
		if entry.Buyer != nil {
			buyer = entry.Buyer.Name + " <" + entry.Buyer.Email + ">"
		}
		c.printf("Order #%d by %s - total %s (%s)\n", o.ID, buyer, o.Total.StringFixed(2), o.ShippingMethod)
		for _, it := range o.Items {
			c.printf("  %s x %d\n", it.Name, it.Qty)
		}
	}
}

// 設定済みのプロモコード一覧（現在有効かどうか付き）
func (c *CLI) adminPromotions(ctx context.Context) {
	promotions, err := c.catalog.ListPromotions(ctx)
	if err != nil {
		c.showError(err)
		return
	}
	if len(promotions) == 0 {
		c.println("No promotions configured.")
		return
	}
	c.println("\n--- Promotions ---")
	now := c.clock.Now()
	for _, p := range promotions {
		state := "inactive"
		if p.ActiveAt(now) {
			state = "active"
		}
		c.printf("%s: %s %s (%s to %s) [%s]\n",
			p.Code, p.Value.String(), p.DiscountType, p.StartDate, p.EndDate, state)
	}
}

func (c *CLI) adminAddProduct(ctx context.Context) {
	c.println("\n--- Add product ---")
	name := c.ask("Name: ")

	price, err := decimal.NewFromString(c.ask("Price: "))
	if err != nil {
		c.println("Invalid price.")
		return
	}
	stock, err := strconv.ParseInt(c.ask("Stock: "), 10, 64)
	if err != nil {
		c.println("Invalid stock.")
		return
	}

	in := usecase.AddProductInput{Name: name, Price: price, Stock: stock}
	// 数字ならカテゴリID、それ以外はタイプのタグとして扱う（空も可）
	kind := strings.TrimSpace(c.ask("Category ID or type tag (enter to skip): "))
	if kind != "" {
		if id, convErr := strconv.ParseInt(kind, 10, 64); convErr == nil && id > 0 {
			in.CategoryID = id
		} else {
			in.Type = kind
		}
	}

	created, err := c.admin.AddProduct(ctx, in)
	if err != nil {
		c.showError(err)
		return
	}
	c.printf("Product #%d '%s' added.\n", created.ID, created.Name)
}
