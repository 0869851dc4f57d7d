package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/pkg/paginate"
)

// ProjectUseCase casos de uso de proyectos; el dueño debe ser un usuario existente.
type ProjectUseCase struct {
	repo  repository.ProjectRepository
	users repository.UserRepository
	now   func() time.Time
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, users repository.UserRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, users: users, now: now}
}

// Create crea un proyecto. Devuelve domain.ErrUserNotFound si owner no existe.
func (uc *ProjectUseCase) Create(ctx context.Context, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Milestones < 0 {
		return nil, domain.ErrInvalidInput
	}
	owner, err := uc.users.GetByID(ctx, in.Owner)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	milestones := in.Milestones
	if milestones == 0 {
		milestones = 1
	}
	ts := uc.now()
	project := &entity.Project{
		Name:       name,
		Milestones: milestones,
		Owner:      owner.ID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := uc.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return entityToProjectResponse(project), nil
}

// GetByID obtiene un proyecto; (nil, nil) si no existe.
func (uc *ProjectUseCase) GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToProjectResponse(project), nil
}

// Query lista proyectos paginados filtrando por owner y/o name.
func (uc *ProjectUseCase) Query(ctx context.Context, q dto.ProjectListQuery) (*paginate.QueryResult[entity.Document], error) {
	filter := paginate.Filter{}
	if q.Owner != "" {
		filter["owner"] = q.Owner
	}
	if q.Name != "" {
		filter["name"] = q.Name
	}
	return uc.repo.Paginate(ctx, filter, q.Options())
}

func entityToProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:         p.ID,
		Name:       p.Name,
		Milestones: p.Milestones,
		Owner:      p.Owner,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
