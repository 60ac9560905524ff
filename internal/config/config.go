package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Configはアプリ全体の設定
type Config struct {
	DataDir string // レコードストアの置き場所

	ShippingFee decimal.Decimal // 配送の固定料金

	AdminEmail    string // 初回起動時にシードする管理者
	AdminPassword string

	SessionSecret string // セッショントークンの署名シークレット
}

// Loadは環境変数（CLIツールなので全キーにdevデフォルトあり）
func Load() (Config, error) {
	fee, err := decimal.NewFromString(getenv("SHIPPING_FEE", "50"))
	if err != nil {
		return Config{}, fmt.Errorf("SHIPPING_FEE must be a number: %w", err)
	}
	if fee.IsNegative() {
		return Config{}, fmt.Errorf("SHIPPING_FEE must be >= 0")
	}

	cfg := Config{
		DataDir:       getenv("DATA_DIR", "data"),
		ShippingFee:   fee,
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@techhouse.local"),
		AdminPassword: getenv("ADMIN_PASSWORD", "change_me_admin"),
		SessionSecret: getenv("SESSION_SECRET", "dev_secret_change_me"),
	}

	//必須チェック
	if cfg.AdminEmail == "" {
		return Config{}, fmt.Errorf("ADMIN_EMAIL is required")
	}
	if cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	return cfg, nil
}

func getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
