package handler

import (
	"context"

	"shop/internal/app/ds"
	"shop/internal/app/role"
	"shop/internal/app/service"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks_test.go -package=handler

// Сервисы, с которыми работают обработчики

type Catalog interface {
	ListItems(ctx context.Context, q service.ItemsQuery) (*service.ItemsPage, error)
	GetItem(ctx context.Context, id uint, login string) (*service.ItemView, error)
	GetImage(ctx context.Context, id uint) ([]byte, error)
	CreateItem(ctx context.Context, in service.NewItem) (*ds.Item, error)
}

type Cart interface {
	GetCart(ctx context.Context, login string) (*service.Cart, error)
	ApplyAction(ctx context.Context, itemID uint, action service.Action, login string) (*ds.CartLine, error)
}

type Orders interface {
	Buy(ctx context.Context, login string) (uint, error)
	ListOrders(ctx context.Context) ([]service.OrderView, error)
	GetOrder(ctx context.Context, id uint) (*service.OrderView, error)
}

type Accounts interface {
	Register(ctx context.Context, login, password string, roles ...role.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (service.Principal, error)
}

// Balance - баланс счёта в платёжном сервисе, payments.UnknownBalance при сбое
type Balance interface {
	Balance(ctx context.Context) decimal.Decimal
}
