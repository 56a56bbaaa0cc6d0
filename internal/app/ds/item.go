package ds

import "github.com/shopspring/decimal"

// Товар каталога. Картинка хранится в MinIO, в таблице только ключ объекта
type Item struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImageKey    *string         `gorm:"type:varchar(255)"` // Nullable
}
