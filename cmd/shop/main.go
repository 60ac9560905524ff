package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/cli"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/config"
	infraRepo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/repository"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/session"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/usecase"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/validator"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

const sessionTTL = 24 * time.Hour

func main() {
	// 想定外のpanicでも利用者には穏当に伝える
	defer func() {
		if r := recover(); r != nil {
			fmt.Println("The shop hit an unexpected problem and had to close. Sorry!")
			os.Exit(1)
		}
	}()

	// .envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "store:", err)
		os.Exit(1)
	}

	// 対話画面を汚さないようログはファイルへ
	log, err := newFileLogger(cfg.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	// Repository（JSONスナップショット実装）生成
	productRepo := infraRepo.NewProductRepository(st)
	categoryRepo := infraRepo.NewCategoryRepository(st)
	membershipRepo := infraRepo.NewMembershipRepository(st)
	promotionRepo := infraRepo.NewPromotionRepository(st)
	cartRepo := infraRepo.NewCartRepository(st)
	orderRepo := infraRepo.NewOrderRepository(st)
	userRepo := infraRepo.NewUserRepository(st)
	supportRepo := infraRepo.NewSupportRepository(st)

	// usecaseに渡す部品
	clock := &realClock{}
	authValidator := validator.NewAuthValidator()
	sessions := session.NewManager(cfg.DataDir, cfg.SessionSecret, sessionTTL)

	// Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, membershipRepo, promotionRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, log)
	pricingUC := usecase.NewPricingUsecase(membershipRepo, promotionRepo, clock)
	accountUC := usecase.NewAccountUsecase(orderRepo, userRepo, log)
	checkoutUC := usecase.NewCheckoutUsecase(
		productRepo, membershipRepo, cartRepo, orderRepo, userRepo,
		pricingUC, accountUC, clock, cfg.ShippingFee, log)
	authUC := usecase.NewAuthUsecase(userRepo, authValidator, cfg.AdminEmail, cfg.AdminPassword, log)
	adminUC := usecase.NewAdminUsecase(productRepo, orderRepo, userRepo, accountUC, log)
	supportUC := usecase.NewSupportUsecase(supportRepo, clock, log)

	app := cli.New(cli.Deps{
		In:       os.Stdin,
		Out:      os.Stdout,
		Catalog:  catalogUC,
		Cart:     cartUC,
		Checkout: checkoutUC,
		Accounts: accountUC,
		Auth:     authUC,
		Admin:    adminUC,
		Support:  supportUC,
		Sessions: sessions,
		Clock:    clock,
		Log:      log,
	})

	if err := app.Run(context.Background()); err != nil {
		log.Error("shop exited with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func newFileLogger(dataDir string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{filepath.Join(dataDir, "shop.log")}
	zcfg.ErrorOutputPaths = []string{filepath.Join(dataDir, "shop.log")}
	return zcfg.Build()
}
