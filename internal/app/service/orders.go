package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop/internal/app/ds"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// OrderView - заказ с пересчитанной суммой по строкам
type OrderView struct {
	ID        uint
	Login     string
	CreatedAt time.Time
	Items     []ds.OrderItem
	Total     decimal.Decimal
}

func newOrderView(o ds.Order) OrderView {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Sum())
	}
	return OrderView{
		ID:        o.ID,
		Login:     o.Login,
		CreatedAt: o.CreatedAt,
		Items:     o.Items,
		Total:     total,
	}
}

type OrderService struct {
	orders   OrderStore
	payments Charger
	cache    Cache
}

func NewOrderService(orders OrderStore, payments Charger, cache Cache) *OrderService {
	return &OrderService{
		orders:   orders,
		payments: payments,
		cache:    orNop(cache),
	}
}

// Buy оформляет заказ из корзины. Списание идёт последним шагом транзакции,
// отказ платёжного сервиса откатывает заказ и оставляет корзину как была
func (s *OrderService) Buy(ctx context.Context, login string) (uint, error) {
	if login == "" {
		return 0, ErrUnauthorized
	}

	order, err := s.orders.CreateOrderFromCart(ctx, login, func(ctx context.Context, total decimal.Decimal) error {
		if !s.payments.Charge(ctx, total) {
			return fmt.Errorf("%w: charge of %s declined", ErrInsufficientFunds, total.StringFixed(2))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return 0, err
		}
		return 0, fromRepository(err)
	}

	if err := s.cache.Delete(ctx, cartCacheKey(login)); err != nil {
		logrus.WithError(err).WithField("login", login).Warn("cart cache eviction failed")
	}

	logrus.WithFields(logrus.Fields{
		"order": order.ID,
		"login": login,
		"total": order.TotalSum.StringFixed(2),
	}).Info("order placed")
	return order.ID, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*OrderView, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err)
	}
	view := newOrderView(*order)
	return &view, nil
}
