package repository

import (
	"context"
	"strings"

	"shop/internal/app/ds"
)

type Sort string

const (
	SortNone  Sort = "NO"
	SortAlpha Sort = "ALPHA"
	SortPrice Sort = "PRICE"
)

// Параметры выборки каталога
type ItemQuery struct {
	Search string
	Sort   Sort
	Offset int
	Limit  int
}

// orderClause - порядок сортировки. id добавлен для стабильного порядка при равных значениях
func orderClause(sort Sort) string {
	switch sort {
	case SortAlpha:
		return "title asc, id asc"
	case SortPrice:
		return "price asc, id asc"
	default:
		return "id asc"
	}
}

// ListItems возвращает страницу товаров и общее количество подходящих под поиск
func (r *Repository) ListItems(ctx context.Context, q ItemQuery) ([]ds.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&ds.Item{})

	if search := strings.TrimSpace(q.Search); search != "" {
		likePattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", likePattern, likePattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []ds.Item
	err := query.Order(orderClause(q.Sort)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *Repository) GetItemByID(ctx context.Context, id uint) (*ds.Item, error) {
	var item ds.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *ds.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// ListAllItems - все товары без пагинации (для cmd/migrate -list)
func (r *Repository) ListAllItems(ctx context.Context) ([]ds.Item, error) {
	var items []ds.Item
	err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error
	return items, err
}
