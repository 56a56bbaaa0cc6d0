package repository

import (
	"context"

	"shop/internal/app/ds"
)

// Методы для строк корзины

func (r *Repository) GetCartLines(ctx context.Context, login string) ([]ds.CartLine, error) {
	var lines []ds.CartLine
	err := r.db.WithContext(ctx).
		Where("login = ? AND count > 0", login).
		Order("item_id asc").
		Find(&lines).Error
	return lines, err
}

func (r *Repository) GetCartLine(ctx context.Context, itemID uint, login string) (*ds.CartLine, error) {
	var line ds.CartLine
	err := r.db.WithContext(ctx).
		Where("login = ? AND item_id = ?", login, itemID).
		First(&line).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &line, nil
}

// SaveCartLine создаёт или обновляет строку (уникальность по login + item_id)
func (r *Repository) SaveCartLine(ctx context.Context, line *ds.CartLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *Repository) DeleteCartLine(ctx context.Context, itemID uint, login string) error {
	return r.db.WithContext(ctx).
		Where("login = ? AND item_id = ?", login, itemID).
		Delete(&ds.CartLine{}).Error
}

func (r *Repository) ClearCart(ctx context.Context, login string) error {
	return r.db.WithContext(ctx).
		Where("login = ?", login).
		Delete(&ds.CartLine{}).Error
}
