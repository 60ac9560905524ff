package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

var ErrUnknownDiscountType = errors.New("unknown discount type")

func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(strings.ToLower(s)) {
	case DiscountPercent:
		return DiscountPercent, nil
	case DiscountFixed:
		return DiscountFixed, nil
	}
	return "", ErrUnknownDiscountType
}

// プロモコード。期間はカレンダー日付（YYYY-MM-DD）で両端を含む。
type Promotion struct {
	ID           int64           `json:"id"`
	Code         string          `json:"code"`
	DiscountType DiscountType    `json:"discount_type"`
	Value        decimal.Decimal `json:"value"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
}

const promoDateLayout = "2006-01-02"

// nowの属する日付が期間内か。日付が壊れているプロモは常に無効。
func (p Promotion) ActiveAt(now time.Time) bool {
	start, err := time.Parse(promoDateLayout, p.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(promoDateLayout, p.EndDate)
	if err != nil {
		return false
	}
	day, _ := time.Parse(promoDateLayout, now.Format(promoDateLayout))
	return !day.Before(start) && !day.After(end)
}
