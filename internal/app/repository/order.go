package repository

import (
	"context"
	"time"

	"shop/internal/app/ds"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Authorizer списывает сумму заказа. Ошибка откатывает всю транзакцию
type Authorizer func(ctx context.Context, total decimal.Decimal) error

// CreateOrderFromCart в одной транзакции: блокирует строки корзины, сохраняет заказ
// со снимком товаров, очищает корзину и списывает оплату. Любая ошибка откатывает всё
func (r *Repository) CreateOrderFromCart(ctx context.Context, login string, authorize Authorizer) (*ds.Order, error) {
	var order ds.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []ds.CartLine
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("login = ? AND count > 0", login).
			Order("item_id asc").
			Find(&lines).Error
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		order = ds.Order{
			Login:     login,
			TotalSum:  ds.CartTotal(lines),
			CreatedAt: time.Now(),
			Items:     make([]ds.OrderItem, 0, len(lines)),
		}
		for _, l := range lines {
			order.Items = append(order.Items, ds.OrderItem{
				ItemID:      l.ItemID,
				Title:       l.Title,
				Description: l.Description,
				Price:       l.Price,
				Count:       l.Count,
				HasImage:    l.HasImage,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("login = ?", login).Delete(&ds.CartLine{}).Error; err != nil {
			return err
		}

		return authorize(ctx, order.TotalSum)
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ListOrders - все заказы, новые первыми
func (r *Repository) ListOrders(ctx context.Context) ([]ds.Order, error) {
	var orders []ds.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("id desc").
		Find(&orders).Error
	return orders, err
}

func (r *Repository) GetOrderByID(ctx context.Context, id uint) (*ds.Order, error) {
	var order ds.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&order, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}
