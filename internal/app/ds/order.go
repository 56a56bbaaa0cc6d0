package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        uint            `gorm:"primaryKey"`
	Login     string          `gorm:"type:varchar(50);not null;index"`
	TotalSum  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Снимок товара в заказе, не зависит от последующих правок каталога
type OrderItem struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"not null;index"`
	ItemID      uint            `gorm:"not null"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Count       int             `gorm:"type:int;not null"`
	HasImage    bool            `gorm:"type:boolean;default:false;not null"`
}

func (i OrderItem) Sum() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Count)))
}
