package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"shop/internal/app/ds"
	"shop/internal/app/repository"

	"github.com/shopspring/decimal"
)

// memStore - хранилище в памяти, повторяющее поведение repository.Repository
type memStore struct {
	mu     sync.Mutex
	items  []ds.Item
	lines  []ds.CartLine
	orders []ds.Order
	users  []ds.User
	nextID uint

	listCalls int
	getCalls  int
	failItem  error
}

func newMemStore(items ...ds.Item) *memStore {
	return &memStore{items: items, nextID: 100}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) ListItems(_ context.Context, q repository.ItemQuery) ([]ds.Item, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++

	search := strings.ToLower(strings.TrimSpace(q.Search))
	var matched []ds.Item
	for _, it := range s.items {
		if search == "" || strings.Contains(strings.ToLower(it.Title), search) ||
			strings.Contains(strings.ToLower(it.Description), search) {
			matched = append(matched, it)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch q.Sort {
		case repository.SortAlpha:
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case repository.SortPrice:
			if !a.Price.Equal(b.Price) {
				return a.Price.LessThan(b.Price)
			}
		}
		return a.ID < b.ID
	})

	total := int64(len(matched))
	start := min(q.Offset, len(matched))
	end := min(start+q.Limit, len(matched))
	return matched[start:end], total, nil
}

func (s *memStore) GetItemByID(_ context.Context, id uint) (*ds.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++

	for _, it := range s.items {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) CreateItem(_ context.Context, item *ds.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failItem != nil {
		return s.failItem
	}
	item.ID = s.id()
	s.items = append(s.items, *item)
	return nil
}

func (s *memStore) GetCartLines(_ context.Context, login string) ([]ds.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []ds.CartLine
	for _, l := range s.lines {
		if l.Login == login && l.Count > 0 {
			lines = append(lines, l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	return lines, nil
}

func (s *memStore) GetCartLine(_ context.Context, itemID uint, login string) (*ds.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lines {
		if l.Login == login && l.ItemID == itemID {
			line := l
			return &line, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) SaveCartLine(_ context.Context, line *ds.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.lines {
		if l.ID == line.ID && line.ID != 0 {
			s.lines[i] = *line
			return nil
		}
	}
	line.ID = s.id()
	s.lines = append(s.lines, *line)
	return nil
}

func (s *memStore) DeleteCartLine(_ context.Context, itemID uint, login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.Login != login || l.ItemID != itemID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	return nil
}

func (s *memStore) ClearCart(_ context.Context, login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.Login != login {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	return nil
}

// CreateOrderFromCart изменяет состояние только если authorize прошёл, как при откате транзакции
func (s *memStore) CreateOrderFromCart(ctx context.Context, login string, authorize repository.Authorizer) (*ds.Order, error) {
	lines, _ := s.GetCartLines(ctx, login)
	if len(lines) == 0 {
		return nil, repository.ErrEmptyCart
	}

	order := ds.Order{Login: login, TotalSum: ds.CartTotal(lines), CreatedAt: time.Now()}
	for _, l := range lines {
		order.Items = append(order.Items, ds.OrderItem{
			ItemID: l.ItemID, Title: l.Title, Description: l.Description, Price: l.Price, Count: l.Count,
		})
	}

	if err := authorize(ctx, order.TotalSum); err != nil {
		return nil, err
	}

	s.mu.Lock()
	order.ID = s.id()
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	_ = s.ClearCart(ctx, login)
	return &order, nil
}

func (s *memStore) ListOrders(context.Context) ([]ds.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := append([]ds.Order(nil), s.orders...)
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (s *memStore) GetOrderByID(_ context.Context, id uint) (*ds.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) GetUserByLogin(_ context.Context, login string) (*ds.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Login, login) {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) CreateUser(_ context.Context, user *ds.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// как уникальный индекс по lower(login)
	for _, u := range s.users {
		if strings.EqualFold(u.Login, user.Login) {
			return repository.ErrAlreadyExists
		}
	}
	user.ID = s.id()
	s.users = append(s.users, *user)
	return nil
}

// memCache - кеш в памяти с JSON сериализацией, как redis.Client
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// memImages - хранилище картинок в памяти
type memImages struct {
	mu        sync.Mutex
	objects   map[string][]byte
	failRead  bool
	uploads   int
	deletions []string
}

func newMemImages() *memImages {
	return &memImages{objects: map[string][]byte{}}
}

func (m *memImages) UploadFile(_ context.Context, data []byte, filename string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads++
	key := "item_" + filename
	m.objects[key] = data
	return key, nil
}

func (m *memImages) DownloadFile(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRead {
		return nil, errors.New("minio is down")
	}
	data, ok := m.objects[name]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}

func (m *memImages) DeleteFile(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletions = append(m.deletions, name)
	delete(m.objects, name)
	return nil
}

func testItem(id uint, title string, price int64) ds.Item {
	return ds.Item{ID: id, Title: title, Description: title + " description", Price: decimal.NewFromInt(price)}
}
