package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop/internal/app/config"
	"shop/internal/app/ds"
	"shop/internal/app/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func ParseSort(s string) (repository.Sort, error) {
	sort := repository.Sort(strings.ToUpper(strings.TrimSpace(s)))
	switch sort {
	case "":
		return repository.SortNone, nil
	case repository.SortNone, repository.SortAlpha, repository.SortPrice:
		return sort, nil
	}
	return "", fmt.Errorf("%w: unknown sort %q", ErrValidation, s)
}

type ItemsQuery struct {
	Search     string
	Sort       repository.Sort
	PageNumber int
	PageSize   int
	Login      string
}

// ItemView - товар с количеством в корзине текущего пользователя
type ItemView struct {
	ID          uint
	Title       string
	Description string
	Price       decimal.Decimal
	HasImage    bool
	Count       int
}

func newItemView(item ds.Item, count int) ItemView {
	return ItemView{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		HasImage:    item.ImageKey != nil,
		Count:       count,
	}
}

type Paging struct {
	PageNumber  int
	PageSize    int
	HasNext     bool
	HasPrevious bool
}

// NewPaging считает признаки соседних страниц. Нумерация страниц с 1
func NewPaging(pageNumber, pageSize int, total int64) Paging {
	var pages int64
	if pageSize > 0 {
		pages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Paging{
		PageNumber:  pageNumber,
		PageSize:    pageSize,
		HasNext:     int64(pageNumber) < pages,
		HasPrevious: pageNumber > 1,
	}
}

// GroupRows раскладывает товары по строкам витрины по n штук
func GroupRows(items []ItemView, n int) [][]ItemView {
	if len(items) == 0 {
		return nil
	}
	if n <= 0 {
		n = len(items)
	}

	rows := make([][]ItemView, 0, (len(items)+n-1)/n)
	for start := 0; start < len(items); start += n {
		end := min(start+n, len(items))
		rows = append(rows, items[start:end])
	}
	return rows
}

type ItemsPage struct {
	Items  []ItemView
	Rows   [][]ItemView
	Paging Paging
	Total  int64
}

// NewItem - данные формы добавления товара
type NewItem struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Image       []byte
	ImageName   string
}

// cartCounter отдаёт количества товаров в корзине пользователя
type cartCounter interface {
	Counts(ctx context.Context, login string) map[uint]int
}

type CatalogService struct {
	items  ItemStore
	images ImageStore
	carts  cartCounter
	cache  Cache
	perRow int
	ttl    time.Duration
}

func NewCatalogService(items ItemStore, images ImageStore, carts cartCounter, cache Cache, cfg config.ShopConfig) *CatalogService {
	return &CatalogService{
		items:  items,
		images: images,
		carts:  carts,
		cache:  orNop(cache),
		perRow: cfg.ItemsPerRow,
		ttl:    cfg.CatalogCacheTTL,
	}
}

// кешируемая страница каталога
type cachedPage struct {
	Items []ds.Item `json:"items"`
	Total int64     `json:"total"`
}

// кешируемый товар. NotFound - отрицательная запись
type cachedItem struct {
	Item     *ds.Item `json:"item,omitempty"`
	NotFound bool     `json:"notFound"`
}

func pageCacheKey(q ItemsQuery) string {
	return fmt.Sprintf("items:%s:%s:%d:%d", strings.ToLower(strings.TrimSpace(q.Search)), q.Sort, q.PageNumber, q.PageSize)
}

func itemCacheKey(id uint) string {
	return fmt.Sprintf("item:%d", id)
}

func (s *CatalogService) ListItems(ctx context.Context, q ItemsQuery) (*ItemsPage, error) {
	if q.PageNumber < 1 || q.PageSize < 1 {
		return nil, fmt.Errorf("%w: page number and size must be positive", ErrValidation)
	}
	if q.Sort == "" {
		q.Sort = repository.SortNone
	}

	page, err := s.page(ctx, q)
	if err != nil {
		return nil, err
	}

	counts := s.carts.Counts(ctx, q.Login)
	views := make([]ItemView, 0, len(page.Items))
	for _, item := range page.Items {
		views = append(views, newItemView(item, counts[item.ID]))
	}

	return &ItemsPage{
		Items:  views,
		Rows:   GroupRows(views, s.perRow),
		Paging: NewPaging(q.PageNumber, q.PageSize, page.Total),
		Total:  page.Total,
	}, nil
}

func (s *CatalogService) page(ctx context.Context, q ItemsQuery) (*cachedPage, error) {
	key := pageCacheKey(q)

	var page cachedPage
	found, err := s.cache.GetJSON(ctx, key, &page)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("catalog cache read failed")
	}
	if found {
		return &page, nil
	}

	items, total, err := s.items.ListItems(ctx, repository.ItemQuery{
		Search: q.Search,
		Sort:   q.Sort,
		Offset: (q.PageNumber - 1) * q.PageSize,
		Limit:  q.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	page = cachedPage{Items: items, Total: total}

	if err := s.cache.SetJSON(ctx, key, page, s.ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("catalog cache write failed")
	}
	return &page, nil
}

func (s *CatalogService) GetItem(ctx context.Context, id uint, login string) (*ItemView, error) {
	item, err := s.item(ctx, id)
	if err != nil {
		return nil, err
	}

	view := newItemView(*item, s.carts.Counts(ctx, login)[item.ID])
	return &view, nil
}

func (s *CatalogService) item(ctx context.Context, id uint) (*ds.Item, error) {
	key := itemCacheKey(id)

	var cached cachedItem
	found, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("catalog cache read failed")
	}
	if found {
		if cached.NotFound || cached.Item == nil {
			return nil, ErrNotFound
		}
		return cached.Item, nil
	}

	item, err := s.items.GetItemByID(ctx, id)
	err = fromRepository(err)
	switch {
	case errors.Is(err, ErrNotFound):
		cached = cachedItem{NotFound: true}
	case err != nil:
		return nil, fmt.Errorf("failed to get item: %w", err)
	default:
		cached = cachedItem{Item: item}
	}

	if err := s.cache.SetJSON(ctx, key, cached, s.ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("catalog cache write failed")
	}
	if cached.NotFound {
		return nil, ErrNotFound
	}
	return item, nil
}

// GetImage возвращает картинку товара. Без картинки или при сбое MinIO - пустой срез
func (s *CatalogService) GetImage(ctx context.Context, id uint) ([]byte, error) {
	item, err := s.item(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.ImageKey == nil || s.images == nil {
		return []byte{}, nil
	}

	data, err := s.images.DownloadFile(ctx, *item.ImageKey)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"item":   id,
			"object": *item.ImageKey,
		}).Warn("item image unavailable")
		return []byte{}, nil
	}
	return data, nil
}

// CreateItem сохраняет товар. Картинка загружается первой и удаляется, если запись не создалась
func (s *CatalogService) CreateItem(ctx context.Context, in NewItem) (*ds.Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	item := &ds.Item{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
	}

	if len(in.Image) > 0 && s.images != nil {
		key, err := s.images.UploadFile(ctx, in.Image, in.ImageName)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		item.ImageKey = &key
	}

	if err := s.items.CreateItem(ctx, item); err != nil {
		if item.ImageKey != nil {
			if delErr := s.images.DeleteFile(ctx, *item.ImageKey); delErr != nil {
				logrus.WithError(delErr).WithField("object", *item.ImageKey).Error("orphan item image left in storage")
			}
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	logrus.WithFields(logrus.Fields{"item": item.ID, "title": item.Title}).Info("item created")
	return item, nil
}
