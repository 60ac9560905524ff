package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateLogin(email string, password string) error
	ValidateRegister(name string, email string, password string) error
	ValidatePasswordChange(newPassword string) error
}

type AuthUsecase struct {
	users     repo.UserRepository
	validator AuthValidator
	log       *zap.Logger

	// 初回起動時にシードする管理者
	adminEmail    string
	adminPassword string
}

func NewAuthUsecase(
	users repo.UserRepository,
	validator AuthValidator,
	adminEmail string,
	adminPassword string,
	log *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		validator:     validator,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		log:           log,
	}
}

// 管理者がいなければ作る（設定の認証情報で）
func (u *AuthUsecase) EnsureAdmin(ctx context.Context) error {
	_, err := u.users.FindByEmail(ctx, u.adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	salt, hash, err := hashPassword(u.adminPassword)
	if err != nil {
		return err
	}
	admin := model.User{
		Name:         "Admin",
		Email:        u.adminEmail,
		Orders:       []int64{},
		IsAdmin:      true,
		Salt:         salt,
		PasswordHash: hash,
	}
	if err := u.users.Create(ctx, admin); err != nil {
		return err
	}
	u.log.Info("admin user seeded", zap.String("email", u.adminEmail))
	return nil
}

// 旧形式（平文password）のレコードをsalt+ハッシュへ一括移行する
func (u *AuthUsecase) MigratePlainPasswords(ctx context.Context) error {
	users, err := u.users.List(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range users {
		if users[i].Password == "" || users[i].HasHashedPassword() {
			continue
		}
		salt, hash, err := hashPassword(users[i].Password)
		if err != nil {
			return err
		}
		users[i].Salt = salt
		users[i].PasswordHash = hash
		users[i].Password = ""
		changed = true
	}
	if !changed {
		return nil
	}
	if err := u.users.SaveAll(ctx, users); err != nil {
		return err
	}
	u.log.Info("legacy passwords migrated")
	return nil
}

func (u *AuthUsecase) FindUser(ctx context.Context, email string) (model.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, ErrUserNotFound
	}
	return user, err
}

// ログイン。旧形式の平文一致は成功時にその場でハッシュへ移行する。
func (u *AuthUsecase) Authenticate(ctx context.Context, email string, password string) (model.User, error) {
	if err := u.validator.ValidateLogin(email, password); err != nil {
		return model.User{}, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}

	if user.HasHashedPassword() {
		if !verifyPassword(password, user.Salt, user.PasswordHash) {
			return model.User{}, ErrWrongPassword
		}
		u.log.Info("login", zap.String("email", user.Email), zap.Bool("admin", user.IsAdmin))
		return user, nil
	}

	if user.Password != "" {
		if password != user.Password {
			return model.User{}, ErrWrongPassword
		}
		// 初回成功時に移行
		salt, hash, err := hashPassword(password)
		if err != nil {
			return model.User{}, err
		}
		user.Salt = salt
		user.PasswordHash = hash
		user.Password = ""
		if err := u.users.Update(ctx, user); err != nil {
			return model.User{}, err
		}
		u.log.Info("login (legacy password migrated)", zap.String("email", user.Email))
		return user, nil
	}

	return model.User{}, ErrNoCredential
}

// 新しいemailでの初回ログインはアカウント作成になる
func (u *AuthUsecase) Register(ctx context.Context, name, email, address, password string) (model.User, error) {
	if err := u.validator.ValidateRegister(name, email, password); err != nil {
		return model.User{}, err
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return model.User{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.User{}, err
	}

	salt, hash, err := hashPassword(password)
	if err != nil {
		return model.User{}, err
	}
	user := model.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		Address:      address,
		Orders:       []int64{},
		Salt:         salt,
		PasswordHash: hash,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return model.User{}, err
	}
	u.log.Info("account created", zap.String("email", user.Email))
	return user, nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, email string, newPassword string) error {
	if err := u.validator.ValidatePasswordChange(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	salt, hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Salt = salt
	user.PasswordHash = hash
	user.Password = ""
	if err := u.users.Update(ctx, user); err != nil {
		return err
	}
	u.log.Info("password changed", zap.String("email", user.Email))
	return nil
}
