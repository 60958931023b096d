package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sayanabha/snowConnect/internal/domain"
	"github.com/Sayanabha/snowConnect/internal/repository"
)

// ErrInvalidUser wraps validation failures on user input.
var ErrInvalidUser = errors.New("invalid user")

// UserService describes user CRUD operations exposed to the API.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int32) (domain.User, bool, error)
	CreateUser(ctx context.Context, name, email string) (domain.User, int64, error)
	UpdateUser(ctx context.Context, id int32, name, email string) (bool, error)
	DeleteUser(ctx context.Context, id int32) (bool, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id int32) (domain.User, bool, error) {
	return s.users.GetByID(ctx, id)
}

// CreateUser stores name and email as given. The returned user carries an id
// only when the warehouse reports one.
func (s *userService) CreateUser(ctx context.Context, name, email string) (domain.User, int64, error) {
	if err := validate(name, email); err != nil {
		return domain.User{}, 0, err
	}

	user := domain.User{Name: name, Email: email}
	affected, err := s.users.Create(ctx, &user)
	if err != nil {
		return domain.User{}, 0, err
	}
	return user, affected, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int32, name, email string) (bool, error) {
	if err := validate(name, email); err != nil {
		return false, err
	}
	return s.users.Update(ctx, id, domain.User{Name: name, Email: email})
}

func (s *userService) DeleteUser(ctx context.Context, id int32) (bool, error) {
	return s.users.Delete(ctx, id)
}

func validate(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	return nil
}
