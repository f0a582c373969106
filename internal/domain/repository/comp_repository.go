package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
)

var ErrCompNotFound = errors.New("comp not found")

// CompRepository stores comps. Every read and write is scoped to the owner.
type CompRepository interface {
	Create(ctx context.Context, c *entity.Comp) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Comp, error)
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Comp, error)
	Update(ctx context.Context, c *entity.Comp) error
	Delete(ctx context.Context, id, ownerID string) error
	SearchByName(ctx context.Context, ownerID, query string, limit int) ([]entity.Comp, error)
}
