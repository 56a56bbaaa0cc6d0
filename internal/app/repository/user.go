package repository

import (
	"context"
	"errors"

	"shop/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для пользователей (ORM)

// GetUserByLogin ищет пользователя без учёта регистра
func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("LOWER(login) = LOWER(?)", login).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *ds.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return err
}
