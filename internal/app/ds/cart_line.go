package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// Строка корзины пользователя. Поля товара денормализованы на момент добавления
type CartLine struct {
	ID          uint            `gorm:"primaryKey"`
	Login       string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_cart_login_item"`
	ItemID      uint            `gorm:"not null;uniqueIndex:idx_cart_login_item"`
	Count       int             `gorm:"type:int;not null;default:0"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	HasImage    bool            `gorm:"type:boolean;default:false;not null"`
	UpdatedAt   time.Time
}

func (l CartLine) Sum() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Count)))
}

// CartTotal - сумма Σ(цена × количество) по строкам корзины
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Sum())
	}
	return total
}
