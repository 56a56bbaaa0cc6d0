package repository

import (
	"errors"
	"fmt"

	"shop/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	repo, err := open(postgres.Open(dsn))
	if err != nil {
		return nil, err
	}

	if err := Migrate(repo.db); err != nil {
		return nil, err
	}

	return repo, nil
}

// open подключается без миграции. Ошибки драйвера переводятся в gorm.ErrDuplicatedKey и т.п.
func open(dialector gorm.Dialector) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Migrate - автоматическая миграция всех таблиц
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&ds.User{},
		&ds.Item{},
		&ds.CartLine{},
		&ds.Order{},
		&ds.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return migrateLoginIndex(db)
}

// migrateLoginIndex - уникальность логина без учёта регистра
func migrateLoginIndex(db *gorm.DB) error {
	err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_login_lower ON users (lower(login))`).Error
	if err != nil {
		return fmt.Errorf("failed to create login index: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// notFound переводит gorm.ErrRecordNotFound в ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
