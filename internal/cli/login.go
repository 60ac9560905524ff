package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/usecase"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/validator"
)

// ログインプロンプト。falseは「プログラム終了」。
// 未知のemailなら入力された情報でアカウントを作る（初回ログイン=登録）。
func (c *CLI) loginPrompt(ctx context.Context) bool {
	c.println("\n--- Login ---")
	for {
		name := c.ask("Name (0 to quit): ")
		if name == "0" {
			return false
		}
		email := c.ask("Email: ")
		if name == "" || email == "" {
			c.println("Please enter both name and email.")
			continue
		}

		for {
			password := c.ask("Password ('change' to reset it, b to go back): ")
			if isBack(password) {
				break // 名前とemailの入力に戻る
			}
			if password == "change" {
				c.changePasswordFlow(ctx)
				continue
			}
			if password == "" {
				c.println("Please enter a password or type 'change'.")
				continue
			}

			user, err := c.auth.Authenticate(ctx, email, password)
			if errors.Is(err, usecase.ErrUserNotFound) {
				// 新しいemail → アカウント作成
				address := c.ask("Address: ")
				user, err = c.auth.Register(ctx, name, email, address, password)
				if err != nil {
					c.showAuthError(err)
					continue
				}
				c.sess.SetUser(user)
				c.saveSession(user)
				c.printf("Account created, you are logged in as %s\n", user.Email)
				return true
			}
			if err != nil {
				c.showAuthError(err)
				continue
			}

			c.sess.SetUser(user)
			c.saveSession(user)
			if user.IsAdmin {
				c.printf("Logged in as admin: %s\n", user.Email)
			} else {
				c.printf("Welcome back, %s!\n", user.Name)
			}
			return true
		}
	}
}

// セッショントークンの永続化は失敗してもログインは通す
func (c *CLI) saveSession(user model.User) {
	if err := c.sessions.Save(user, c.clock.Now()); err != nil {
		c.log.Warn("failed to persist session token", zap.Error(err))
	}
}

func (c *CLI) changePasswordFlow(ctx context.Context) {
	c.println("\n--- Change password ---")
	email := c.ask("Email to confirm the account: ")
	if email == "" {
		c.println("No email given.")
		return
	}
	if _, err := c.auth.FindUser(ctx, email); err != nil {
		c.println("No user with that email.")
		return
	}
	for {
		newpw := c.ask("New password: ")
		confirm := c.ask("Confirm new password: ")
		if newpw == "" {
			c.println("Password must not be empty.")
			continue
		}
		if newpw != confirm {
			c.println("Passwords do not match. Try again.")
			continue
		}
		if err := c.auth.ChangePassword(ctx, email, newpw); err != nil {
			c.showAuthError(err)
			return
		}
		c.println("Password updated.")
		return
	}
}

func (c *CLI) showAuthError(err error) {
	switch {
	case errors.Is(err, usecase.ErrWrongPassword):
		c.println("Wrong password. Try again or type 'change'.")
	case errors.Is(err, usecase.ErrNoCredential):
		c.println("This account has no password on record. Type 'change' to set one.")
	case errors.Is(err, usecase.ErrEmailTaken):
		c.println("That email is already registered.")
	case errors.Is(err, validator.ErrInvalidInput):
		c.println("Invalid name, email or password format.")
	default:
		c.showError(err)
	}
}
