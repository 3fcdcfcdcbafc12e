package entity

import (
	"github.com/shopspring/decimal"
)

type Cleaner struct {
	Base
	NameEn         string          `db:"name_en"`
	NameAr         string          `db:"name_ar"`
	Phone          string          `db:"phone"`
	HourlyRate     decimal.Decimal `db:"hourly_rate"`
	TelegramChatID *string         `db:"telegram_chat_id"`
	IsActive       bool            `db:"is_active"`
}
