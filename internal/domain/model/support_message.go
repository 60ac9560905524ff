package model

import "time"

// サポート窓口のステータス
type SupportStatus string

const SupportStatusNew SupportStatus = "new"

// サポートへの問い合わせ。IDは連番（件数+1）。
type SupportMessage struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    SupportStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
