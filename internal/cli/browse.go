package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// カテゴリ一覧 → カテゴリ内の商品ブラウズ
func (c *CLI) browseCategories(ctx context.Context) {
	for {
		cats, err := c.catalog.ListCategories(ctx)
		if err != nil {
			c.showError(err)
			return
		}
		for _, cat := range cats {
			c.printf("%d. %s\n", cat.ID, cat.Name)
		}
		sub := c.ask("Category ID (b to go back): ")
		if isBack(sub) {
			return
		}
		if id, ok := parseID(sub); ok {
			c.browseProducts(ctx, id)
		} else {
			c.println("Invalid choice.")
		}
	}
}

func (c *CLI) productsByCategory(ctx context.Context) {
	for {
		sub := c.ask("Category ID (b to go back): ")
		if isBack(sub) {
			return
		}
		if id, ok := parseID(sub); ok {
			c.browseProducts(ctx, id)
		} else {
			c.println("Invalid choice.")
		}
	}
}

// 商品一覧（categoryID=0で全件）と短縮コマンドのループ
func (c *CLI) browseProducts(ctx context.Context, categoryID int64) {
	for {
		products, err := c.catalog.ListProducts(ctx, categoryID)
		if err != nil {
			c.showError(err)
			return
		}
		if len(products) == 0 {
			c.println("No products in this category.")
		}
		for _, p := range products {
			c.printf("%d. %s - %s (stock: %d)\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
		}

		act := c.ask("[v <id> view | add <id> <qty> | buy <id> <qty> | b back]: ")
		if isBack(act) {
			return
		}
		parts := strings.Fields(act)
		normalizeCmdParts(parts)

		switch {
		// idだけ入力されたら詳細を出してクイック操作へ
		case len(parts) == 1:
			if id, ok := parseID(parts[0]); ok {
				c.productActions(ctx, id)
			} else {
				c.println("Invalid choice.")
			}
		case parts[0] == "v" && len(parts) >= 2:
			if id, ok := parseID(parts[1]); ok {
				c.showProduct(ctx, id)
			} else {
				c.println("Invalid choice.")
			}
		case parts[0] == "a":
			c.addFromParts(ctx, parts)
		case parts[0] == "s":
			c.buyFromParts(ctx, parts)
		default:
			c.println("Invalid choice.")
		}
	}
}

// 詳細表示 → add/buyのクイック操作
func (c *CLI) productActions(ctx context.Context, productID int64) {
	if !c.showProduct(ctx, productID) {
		return
	}
	choice := c.ask("[add <qty> | buy <qty> | b]: ")
	parts := strings.Fields(choice)
	normalizeCmdParts(parts)
	if len(parts) == 0 || parts[0] == "b" {
		return
	}
	switch parts[0] {
	case "a":
		qty := c.qtyFromParts(parts)
		if qty > 0 {
			c.addToCart(ctx, productID, qty)
		}
	case "s":
		qty := c.qtyFromParts(parts)
		if qty > 0 {
			c.buyDirect(ctx, productID, qty)
		}
	default:
		c.println("Invalid choice.")
	}
}

func (c *CLI) showProduct(ctx context.Context, productID int64) bool {
	p, err := c.catalog.FindProduct(ctx, productID)
	if err != nil {
		c.showError(err)
		return false
	}
	c.printf("[%d] %s\n", p.ID, p.Name)
	c.printf("  Price: %s\n", p.Price.StringFixed(2))
	c.printf("  Stock: %d\n", p.Stock)
	if p.CategoryID != 0 {
		c.printf("  Category: %d\n", p.CategoryID)
	}
	if p.Type != "" {
		c.printf("  Type: %s\n", p.Type)
	}
	if p.Description != "" {
		c.printf("  %s\n", p.Description)
	}
	return true
}

func (c *CLI) searchProducts(ctx context.Context) {
	query := c.ask("Search term: ")
	if query == "" {
		return
	}
	results, err := c.catalog.Search(ctx, query)
	if err != nil {
		c.showError(err)
		return
	}
	if len(results) == 0 {
		c.println("Nothing found.")
		return
	}
	c.println("Results:")
	for _, p := range results {
		c.printf("%d. %s - %s\n", p.ID, p.Name, p.Price.StringFixed(2))
	}
}

func (c *CLI) productDetail(ctx context.Context) {
	pid := c.ask("Product ID: ")
	if id, ok := parseID(pid); ok {
		c.showProduct(ctx, id)
	}
}

// ---- カート ----

func (c *CLI) addToCartPrompt(ctx context.Context) {
	for {
		pid := c.ask("Product ID (b to go back): ")
		if isBack(pid) {
			return
		}
		id, ok := parseID(pid)
		if !ok {
			c.println("Invalid input.")
			continue
		}
		qty := c.ask("Quantity: ")
		q, ok := parseID(qty)
		if !ok {
			c.println("Invalid input.")
			continue
		}
		c.addToCart(ctx, id, q)
	}
}

// 追加前に確認を取る
func (c *CLI) addToCart(ctx context.Context, productID int64, qty int64) {
	p, err := c.catalog.FindProduct(ctx, productID)
	if err != nil {
		c.showError(err)
		return
	}
	if !c.askYes(c.sprintf("Add %d x %s to the cart? (y/n): ", qty, p.Name)) {
		c.println("Add canceled.")
		return
	}
	if err := c.cart.Add(ctx, productID, qty); err != nil {
		c.showError(err)
		return
	}
	c.println("Product added to the cart.")
}

func (c *CLI) viewCart(ctx context.Context) bool {
	cart, err := c.cart.Get(ctx)
	if err != nil {
		c.showError(err)
		return false
	}
	if cart.IsEmpty() {
		c.println("Cart is empty.")
		return false
	}
	c.println("Cart:")
	for _, it := range cart.Items {
		line := it.UnitPrice.Mul(decimalFromInt(it.Qty))
		c.printf("- [%d] %s x %d = %s\n", it.ProductID, it.Name, it.Qty, line.StringFixed(2))
	}
	c.printf("Total: %s\n", cart.Subtotal().StringFixed(2))
	return true
}

func (c *CLI) cartMenu(ctx context.Context) {
	for {
		c.viewCart(ctx)
		act := c.ask("[remove <id> | buy <id> | clear | b back]: ")
		if isBack(act) {
			return
		}
		parts := strings.Fields(act)
		if len(parts) == 1 && strings.EqualFold(parts[0], "clear") {
			if c.askYes("Empty the whole cart? (y/n): ") {
				if err := c.cart.Clear(ctx); err != nil {
					c.showError(err)
				} else {
					c.println("Cart cleared.")
				}
			}
			continue
		}
		if len(parts) < 2 {
			c.println("Only 'remove <id>', 'buy <id>' and 'clear' are accepted.")
			continue
		}
		id, ok := parseID(parts[1])
		if !ok {
			c.println("Invalid product id.")
			continue
		}
		switch strings.ToLower(parts[0]) {
		case "remove":
			c.removeFromCart(ctx, id)
		case "buy", "s":
			if order, err := c.checkout.PurchaseFromCart(ctx, c.sess, id, c); err != nil {
				c.showError(err)
			} else {
				c.printf("Order #%d accepted. Total: %s\n", order.ID, order.Total.StringFixed(2))
				c.println("Item purchased and removed from the cart.")
			}
		default:
			c.println("Only 'remove <id>' and 'buy <id>' are accepted.")
		}
	}
}

func (c *CLI) removeFromCart(ctx context.Context, productID int64) {
	cart, err := c.cart.Get(ctx)
	if err != nil {
		c.showError(err)
		return
	}
	item := cart.Find(productID)
	if item == nil {
		c.println("Product is not in the cart.")
		return
	}
	if !c.askYes(c.sprintf("Remove %s from the cart? (y/n): ", item.Name)) {
		c.println("Canceled.")
		return
	}
	if err := c.cart.Remove(ctx, productID); err != nil {
		c.showError(err)
		return
	}
	c.println("Product removed from the cart.")
}

// ---- 短縮コマンド ----

// add/a/buy/s/sotib/v/viewを正規形に寄せる
func normalizeCmdParts(parts []string) {
	if len(parts) == 0 {
		return
	}
	switch strings.ToLower(parts[0]) {
	case "add", "a", "1":
		parts[0] = "a"
	case "buy", "s", "sotib", "2":
		parts[0] = "s"
	case "v", "view":
		parts[0] = "v"
	case "b", "back", "0":
		parts[0] = "b"
	default:
		parts[0] = strings.ToLower(parts[0])
	}
}

// "a <id> <qty>"系の追加。足りない部分は聞き直す。
func (c *CLI) addFromParts(ctx context.Context, parts []string) {
	id, qty := c.idQtyFromParts(parts)
	if id == 0 || qty == 0 {
		return
	}
	c.addToCart(ctx, id, qty)
}

func (c *CLI) buyFromParts(ctx context.Context, parts []string) {
	id, qty := c.idQtyFromParts(parts)
	if id == 0 || qty == 0 {
		return
	}
	c.buyDirect(ctx, id, qty)
}

func (c *CLI) idQtyFromParts(parts []string) (int64, int64) {
	var id, qty int64
	var ok bool
	if len(parts) >= 2 {
		if id, ok = parseID(parts[1]); !ok {
			c.println("Invalid product id.")
			return 0, 0
		}
	} else {
		if id, ok = parseID(c.ask("Product ID: ")); !ok {
			c.println("Invalid product id.")
			return 0, 0
		}
	}
	if len(parts) >= 3 {
		if qty, ok = parseID(parts[2]); !ok {
			c.println("Invalid quantity.")
			return 0, 0
		}
	} else {
		if qty, ok = parseID(c.ask("Quantity: ")); !ok {
			c.println("Invalid quantity.")
			return 0, 0
		}
	}
	return id, qty
}

// "<cmd> <qty>"形式の数量。無ければ聞く。
func (c *CLI) qtyFromParts(parts []string) int64 {
	if len(parts) >= 2 {
		if q, ok := parseID(parts[1]); ok {
			return q
		}
		c.println("Invalid quantity.")
		return 0
	}
	if q, ok := parseID(c.ask("Quantity: ")); ok {
		return q
	}
	c.println("Invalid quantity.")
	return 0
}

func (c *CLI) buyDirect(ctx context.Context, productID int64, qty int64) {
	order, err := c.checkout.PurchaseDirect(ctx, c.sess, productID, qty, c)
	if err != nil {
		c.showError(err)
		return
	}
	c.printf("Order #%d accepted. Total: %s\n", order.ID, order.Total.StringFixed(2))
}

func (c *CLI) sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
