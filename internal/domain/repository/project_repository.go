package repository

import (
	"context"

	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/pkg/paginate"
)

// ProjectRepository puerto de persistencia para Project. Paginate admite populate=owner.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	DeleteAll(ctx context.Context) error
	Paginate(ctx context.Context, filter paginate.Filter, opts paginate.Options) (*paginate.QueryResult[entity.Document], error)
}
