package repository

import (
	"context"

	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/pkg/paginate"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID devuelve (nil, nil) si el usuario no existe; Update y Delete devuelven domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Paginate(ctx context.Context, filter paginate.Filter, opts paginate.Options) (*paginate.QueryResult[entity.Document], error)
}
