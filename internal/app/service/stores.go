package service

import (
	"context"
	"time"

	"shop/internal/app/ds"
	"shop/internal/app/repository"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mock_charger_test.go -package=service shop/internal/app/service Charger

// Хранилища, через которые работают сервисы. Реализуются repository.Repository,
// storage.MinIOClient, redis.Client и payments.Client

type ItemStore interface {
	ListItems(ctx context.Context, q repository.ItemQuery) ([]ds.Item, int64, error)
	GetItemByID(ctx context.Context, id uint) (*ds.Item, error)
	CreateItem(ctx context.Context, item *ds.Item) error
}

type CartStore interface {
	GetCartLines(ctx context.Context, login string) ([]ds.CartLine, error)
	GetCartLine(ctx context.Context, itemID uint, login string) (*ds.CartLine, error)
	SaveCartLine(ctx context.Context, line *ds.CartLine) error
	DeleteCartLine(ctx context.Context, itemID uint, login string) error
	ClearCart(ctx context.Context, login string) error
}

type OrderStore interface {
	CreateOrderFromCart(ctx context.Context, login string, authorize repository.Authorizer) (*ds.Order, error)
	ListOrders(ctx context.Context) ([]ds.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*ds.Order, error)
}

type UserStore interface {
	GetUserByLogin(ctx context.Context, login string) (*ds.User, error)
	CreateUser(ctx context.Context, user *ds.User) error
}

type ImageStore interface {
	UploadFile(ctx context.Context, data []byte, filename string) (string, error)
	DownloadFile(ctx context.Context, name string) ([]byte, error)
	DeleteFile(ctx context.Context, name string) error
}

// Charger - списание в платёжном сервисе. false означает отказ или ошибку
type Charger interface {
	Charge(ctx context.Context, amount decimal.Decimal) bool
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// nopCache используется, когда Redis не подключён
type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (nopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, ...string) error { return nil }

func orNop(c Cache) Cache {
	if c == nil {
		return nopCache{}
	}
	return c
}
