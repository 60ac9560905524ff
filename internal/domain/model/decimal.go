package model

import "github.com/shopspring/decimal"

// データファイルでは金額をJSON数値のまま持つ（既存フォーマット互換）
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
