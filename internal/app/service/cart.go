package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop/internal/app/ds"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Action string

const (
	ActionPlus   Action = "PLUS"
	ActionMinus  Action = "MINUS"
	ActionDelete Action = "DELETE"
)

func ParseAction(s string) (Action, error) {
	a := Action(strings.ToUpper(strings.TrimSpace(s)))
	switch a {
	case ActionPlus, ActionMinus, ActionDelete:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown cart action %q", ErrValidation, s)
}

// Apply - новое количество товара после действия. Не бывает меньше нуля
func (a Action) Apply(count int) int {
	switch a {
	case ActionPlus:
		return count + 1
	case ActionMinus:
		if count > 0 {
			return count - 1
		}
		return 0
	case ActionDelete:
		return 0
	}
	return count
}

// Cart - корзина пользователя для отображения
type Cart struct {
	Lines []ds.CartLine
	Total decimal.Decimal
	Empty bool
}

func newCart(lines []ds.CartLine) *Cart {
	return &Cart{
		Lines: lines,
		Total: ds.CartTotal(lines),
		Empty: len(lines) == 0,
	}
}

func cartCacheKey(login string) string {
	return "cart:" + login
}

type CartService struct {
	carts CartStore
	items ItemStore
	cache Cache
	ttl   time.Duration
}

func NewCartService(carts CartStore, items ItemStore, cache Cache, ttl time.Duration) *CartService {
	return &CartService{
		carts: carts,
		items: items,
		cache: orNop(cache),
		ttl:   ttl,
	}
}

// GetCart возвращает корзину владельца. Для анонимного пользователя корзина пустая
func (s *CartService) GetCart(ctx context.Context, login string) (*Cart, error) {
	lines, err := s.lines(ctx, login)
	if err != nil {
		return nil, err
	}
	return newCart(lines), nil
}

func (s *CartService) lines(ctx context.Context, login string) ([]ds.CartLine, error) {
	if login == "" {
		return nil, nil
	}

	var lines []ds.CartLine
	found, err := s.cache.GetJSON(ctx, cartCacheKey(login), &lines)
	if err != nil {
		logrus.WithError(err).WithField("login", login).Warn("cart cache read failed")
	}
	if found {
		return lines, nil
	}

	lines, err = s.carts.GetCartLines(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if err := s.cache.SetJSON(ctx, cartCacheKey(login), lines, s.ttl); err != nil {
		logrus.WithError(err).WithField("login", login).Warn("cart cache write failed")
	}
	return lines, nil
}

// ApplyAction меняет количество товара в корзине. Строка с нулевым количеством удаляется
func (s *CartService) ApplyAction(ctx context.Context, itemID uint, action Action, login string) (*ds.CartLine, error) {
	if login == "" {
		return nil, ErrUnauthorized
	}

	line, err := s.carts.GetCartLine(ctx, itemID, login)
	err = fromRepository(err)
	switch {
	case errors.Is(err, ErrNotFound):
		if action != ActionPlus {
			return &ds.CartLine{ItemID: itemID, Login: login}, nil
		}
		item, err := s.items.GetItemByID(ctx, itemID)
		if err != nil {
			return nil, fromRepository(err)
		}
		line = &ds.CartLine{
			Login:       login,
			ItemID:      item.ID,
			Title:       item.Title,
			Description: item.Description,
			Price:       item.Price,
			HasImage:    item.ImageKey != nil,
		}
	case err != nil:
		return nil, err
	}

	line.Count = action.Apply(line.Count)
	if err := s.store(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}

	s.evict(ctx, login)
	return line, nil
}

func (s *CartService) store(ctx context.Context, line *ds.CartLine) error {
	if line.Count > 0 {
		return s.carts.SaveCartLine(ctx, line)
	}
	if line.ID == 0 {
		return nil
	}
	return s.carts.DeleteCartLine(ctx, line.ItemID, line.Login)
}

func (s *CartService) Clear(ctx context.Context, login string) error {
	if login == "" {
		return nil
	}
	if err := s.carts.ClearCart(ctx, login); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.evict(ctx, login)
	return nil
}

// ItemCount - количество товара в корзине, 0 если его там нет
func (s *CartService) ItemCount(ctx context.Context, itemID uint, login string) int {
	return s.Counts(ctx, login)[itemID]
}

// Counts - количества по id товара. Ошибки чтения дают пустую карту
func (s *CartService) Counts(ctx context.Context, login string) map[uint]int {
	lines, err := s.lines(ctx, login)
	if err != nil {
		logrus.WithError(err).WithField("login", login).Error("cart counts unavailable")
		return map[uint]int{}
	}

	counts := make(map[uint]int, len(lines))
	for _, l := range lines {
		counts[l.ItemID] = l.Count
	}
	return counts
}

func (s *CartService) evict(ctx context.Context, login string) {
	if err := s.cache.Delete(ctx, cartCacheKey(login)); err != nil {
		logrus.WithError(err).WithField("login", login).Warn("cart cache eviction failed")
	}
}
