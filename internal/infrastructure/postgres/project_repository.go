package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/pkg/paginate"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

type projectDoc struct {
	Name       string    `json:"name"`
	Milestones int       `json:"milestones"`
	Owner      string    `json:"owner"`
	CreatedAt  timestamp `json:"createdAt"`
	UpdatedAt  timestamp `json:"updatedAt"`
}

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL; "owner" se puebla desde users.
type ProjectRepo struct {
	q    Querier
	docs *Collection
}

// NewProjectRepository construye el adaptador con la relación owner -> users.id registrada.
func NewProjectRepository(q Querier) *ProjectRepo {
	users := NewCollection(q, UsersTable)
	docs := NewCollection(q, ProjectsTable).WithRelation("owner", Relation{LocalField: "owner", Target: users})
	return &ProjectRepo{q: q, docs: docs}
}

// Create persiste un proyecto y asigna su ID.
func (r *ProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	if err := validateID(project.Owner); err != nil {
		return err
	}
	id := uuid.New().String()
	doc := projectDoc{
		Name:       project.Name,
		Milestones: project.Milestones,
		Owner:      project.Owner,
		CreatedAt:  timestamp(project.CreatedAt),
		UpdatedAt:  timestamp(project.UpdatedAt),
	}
	if _, err := r.q.Exec(ctx, `INSERT INTO projects (id, doc) VALUES ($1, $2)`, id, doc); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	project.ID = id
	return nil
}

// GetByID obtiene un proyecto; (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var doc projectDoc
	err := r.q.QueryRow(ctx, `SELECT doc FROM projects WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return &entity.Project{
		ID:         id,
		Name:       doc.Name,
		Milestones: doc.Milestones,
		Owner:      doc.Owner,
		CreatedAt:  time.Time(doc.CreatedAt),
		UpdatedAt:  time.Time(doc.UpdatedAt),
	}, nil
}

// DeleteAll vacía la tabla (seeder).
func (r *ProjectRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("delete projects: %w", err)
	}
	return nil
}

// Paginate lista proyectos; admite populate=owner.
func (r *ProjectRepo) Paginate(ctx context.Context, filter paginate.Filter, opts paginate.Options) (*paginate.QueryResult[entity.Document], error) {
	return paginate.Paginate[entity.Document](ctx, filter, opts, r.docs)
}
