package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/session"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/usecase"
)

// 対話メニュー。usecase層の入出力境界で、業務ロジックは持たない。
type CLI struct {
	in  *bufio.Scanner
	out io.Writer

	sess     *usecase.Session
	catalog  *usecase.CatalogUsecase
	cart     *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
	accounts *usecase.AccountUsecase
	auth     *usecase.AuthUsecase
	admin    *usecase.AdminUsecase
	support  *usecase.SupportUsecase
	sessions *session.Manager
	clock    usecase.Clock
	log      *zap.Logger
}

type Deps struct {
	In       io.Reader
	Out      io.Writer
	Catalog  *usecase.CatalogUsecase
	Cart     *usecase.CartUsecase
	Checkout *usecase.CheckoutUsecase
	Accounts *usecase.AccountUsecase
	Auth     *usecase.AuthUsecase
	Admin    *usecase.AdminUsecase
	Support  *usecase.SupportUsecase
	Sessions *session.Manager
	Clock    usecase.Clock
	Log      *zap.Logger
}

func New(d Deps) *CLI {
	return &CLI{
		in:       bufio.NewScanner(d.In),
		out:      d.Out,
		sess:     &usecase.Session{},
		catalog:  d.Catalog,
		cart:     d.Cart,
		checkout: d.Checkout,
		accounts: d.Accounts,
		auth:     d.Auth,
		admin:    d.Admin,
		support:  d.Support,
		sessions: d.Sessions,
		clock:    d.Clock,
		log:      d.Log,
	}
}

func (c *CLI) Run(ctx context.Context) error {
	// 旧形式パスワードの移行と管理者シードは起動時に済ませる
	if err := c.auth.MigratePlainPasswords(ctx); err != nil {
		return err
	}
	if err := c.auth.EnsureAdmin(ctx); err != nil {
		return err
	}

	// 保存済みセッションがあればログインを飛ばす
	if email, err := c.sessions.Restore(c.clock.Now()); err == nil {
		if user, err := c.auth.FindUser(ctx, email); err == nil {
			c.sess.SetUser(user)
			c.printf("Restored session: %s <%s>\n", user.Name, user.Email)
		}
	}

	if !c.sess.LoggedIn() {
		if !c.loginPrompt(ctx) {
			return nil
		}
	}
	if c.sess.IsAdmin() {
		c.adminMenu(ctx)
	}

	for {
		c.printMainMenu()
		cmd := c.ask("Choice (or 'logout' to switch account): ")
		switch strings.ToLower(cmd) {
		case "logout":
			c.logout()
			if !c.loginPrompt(ctx) {
				return nil
			}
			if c.sess.IsAdmin() {
				c.adminMenu(ctx)
			}
		case "0", "":
			c.println("Bye!")
			return nil
		case "1":
			c.browseCategories(ctx)
		case "2":
			c.browseProducts(ctx, 0)
		case "3":
			c.productsByCategory(ctx)
		case "4":
			c.searchProducts(ctx)
		case "5":
			c.productDetail(ctx)
		case "6":
			c.membershipMenu(ctx)
		case "7":
			c.addToCartPrompt(ctx)
		case "8":
			c.cartMenu(ctx)
		case "9":
			c.checkoutLoop(ctx)
		case "10":
			c.supportMenu(ctx)
		case "11":
			c.viewMyOrders(ctx)
		case "h", "help", "?":
			c.printHelp()
		default:
			c.println("Invalid choice. Pick an item from the menu or type 'h' for help.")
		}
	}
}

func (c *CLI) logout() {
	if err := c.sessions.Clear(); err != nil {
		c.log.Warn("failed to clear session token", zap.Error(err))
	}
	c.sess.Clear()
	c.println("You are logged out. Enter your details to sign in again.")
}

func (c *CLI) printMainMenu() {
	c.println("\n=== Tech House ===")
	if c.sess.LoggedIn() {
		role := ""
		if c.sess.IsAdmin() {
			role = " (admin)"
		}
		c.printf("Logged in as: %s <%s>%s\n", c.sess.Name(), c.sess.Email(), role)
	}
	c.println("1. Browse categories")
	c.println("2. All products")
	c.println("3. Products by category")
	c.println("4. Search products")
	c.println("5. Product details")
	c.println("6. Membership packages")
	c.println("7. Add to cart")
	c.println("8. View cart")
	c.println("9. Checkout")
	c.println("10. Contact support")
	c.println("11. My orders")
	c.println("0. Exit")
	c.println("h. Help")
}

func (c *CLI) printHelp() {
	c.println("\n--- Help ---")
	c.println("Short commands inside product listings:")
	c.println("- 'v <id>' show product details")
	c.println("- 'add <id> <qty>' or 'a <id> <qty>' add to cart")
	c.println("- 'buy <qty>' or 's <qty>' buy a product directly")
	c.println("- 'b', 'back' or '0' go back")
	c.println("Cart menu accepts 'remove <id>' and 'buy <id>'.")
	c.println("Type 'logout' in the main menu to switch accounts.")
}

// エラーの提示はここに集約する（usecaseは理由だけ返す）
func (c *CLI) showError(err error) {
	switch {
	case errors.Is(err, usecase.ErrCanceled):
		c.println("Canceled.")
	case errors.Is(err, usecase.ErrCartEmpty):
		c.println("Cart is empty. Add a product first.")
	case errors.Is(err, usecase.ErrProductNotFound):
		c.println("Product not found.")
	case errors.Is(err, usecase.ErrNotInCart):
		c.println("Product is not in the cart.")
	case errors.Is(err, usecase.ErrInsufficientStock):
		c.printf("Not enough stock. %s.\n", err)
	case errors.Is(err, usecase.ErrInvalidQuantity):
		c.println("Quantity must be a positive integer.")
	case errors.Is(err, usecase.ErrMembershipUnknown):
		c.println("No such membership package.")
	case errors.Is(err, usecase.ErrLoginRequired):
		c.println("Please log in first.")
	case errors.Is(err, usecase.ErrValidation):
		c.println("Invalid input.")
	case errors.Is(err, model.ErrEmptyName):
		c.println("Name must not be empty.")
	case errors.Is(err, model.ErrNegativePrice):
		c.println("Price must not be negative.")
	case errors.Is(err, model.ErrNegativeStock):
		c.println("Stock must not be negative.")
	default:
		c.log.Error("unexpected failure", zap.Error(err))
		c.println("Something went wrong. Please try again.")
	}
}

// ---- 入力ヘルパ ----

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *CLI) ask(prompt string) string {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		// EOFは終了扱い
		return "0"
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *CLI) askYes(prompt string) bool {
	ans := strings.ToLower(c.ask(prompt))
	return ans == "yes" || ans == "y" || ans == "ha"
}

// b/back/0は「ひとつ戻る」
func isBack(s string) bool {
	switch strings.ToLower(s) {
	case "b", "back", "0", "":
		return true
	}
	return false
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
