package repository

import (
	"context"

	"github.com/Sayanabha/snowConnect/internal/domain"
)

// UserRepository defines persistence operations for User entities.
//
// Lookups and writes that match no row report found=false instead of an error.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int32) (domain.User, bool, error)
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, id int32, user domain.User) (bool, error)
	Delete(ctx context.Context, id int32) (bool, error)
}
