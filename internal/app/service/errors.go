package service

import (
	"errors"
	"fmt"

	"shop/internal/app/repository"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrValidation        = errors.New("validation failure")
	ErrUnauthorized      = errors.New("unauthorized")
)

// fromRepository переводит ошибки репозитория в ошибки сервисов
func fromRepository(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return ErrAlreadyExists
	case errors.Is(err, repository.ErrEmptyCart):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}
