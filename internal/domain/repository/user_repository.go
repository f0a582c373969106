package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
var ErrDuplicateEmail = errors.New("duplicate email")

// UserRepository defines the credential store.
//
// FindByEmail returns (nil, nil) when no user matches. Create fills ID and
// CreatedAt on success.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
