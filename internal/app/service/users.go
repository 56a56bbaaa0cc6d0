package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop/internal/app/ds"
	"shop/internal/app/role"

	"golang.org/x/crypto/bcrypt"
)

// Principal - аутентифицированный пользователь
type Principal struct {
	Login string
	Roles []role.Role
}

// Has - есть ли хотя бы одна из ролей
func (p Principal) Has(required ...role.Role) bool {
	return role.Has(p.Roles, required...)
}

type UserService struct {
	users UserStore
	cost  int
}

func NewUserService(users UserStore) *UserService {
	return &UserService{
		users: users,
		cost:  bcrypt.DefaultCost,
	}
}

// FindByLogin ищет пользователя без учёта регистра логина
func (s *UserService) FindByLogin(ctx context.Context, login string) (*ds.User, error) {
	user, err := s.users.GetUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		return nil, fromRepository(err)
	}
	return user, nil
}

// Register создаёт пользователя, по умолчанию с ролью ROLE_USER
func (s *UserService) Register(ctx context.Context, login, password string, roles ...role.Role) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", fmt.Errorf("%w: login and password are required", ErrValidation)
	}
	if len(roles) == 0 {
		roles = []role.Role{role.User}
	}

	_, err := s.FindByLogin(ctx, login)
	switch {
	case err == nil:
		return "", fmt.Errorf("%w: user %s", ErrAlreadyExists, login)
	case !errors.Is(err, ErrNotFound):
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &ds.User{
		Login:    login,
		Password: string(hash),
		Roles:    role.Join(roles...),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if err = fromRepository(err); errors.Is(err, ErrAlreadyExists) {
			return "", fmt.Errorf("%w: user %s", ErrAlreadyExists, login)
		}
		return "", err
	}
	return user.Login, nil
}

// Authenticate проверяет логин и пароль
func (s *UserService) Authenticate(ctx context.Context, login, password string) (Principal, error) {
	user, err := s.FindByLogin(ctx, login)
	if errors.Is(err, ErrNotFound) {
		return Principal{}, ErrUnauthorized
	}
	if err != nil {
		return Principal{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Principal{}, ErrUnauthorized
	}

	return Principal{
		Login: user.Login,
		Roles: role.Parse(user.Roles),
	}, nil
}

func (s *UserService) Authorize(p Principal, r role.Role) bool {
	return p.Has(r)
}
