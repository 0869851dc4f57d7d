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

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: now}
}

// Create crea un usuario. Devuelve domain.ErrEmailAlreadyExists si el email ya está en uso.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := &entity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Age:       in.Age,
	}
	if user.FirstName == "" || user.LastName == "" || user.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if user.Age < entity.MinUserAge || user.Age > entity.MaxUserAge {
		return nil, domain.ErrInvalidInput
	}

	taken, err := uc.repo.IsEmailTaken(ctx, user.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailAlreadyExists
	}

	ts := uc.now()
	user.Created = ts
	if in.Created != nil {
		user.Created = in.Created.UTC().Truncate(time.Millisecond)
	}
	user.CreatedAt = ts
	user.UpdatedAt = ts
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

// Update aplica una actualización parcial. El email debe seguir siendo único (excluyendo al propio usuario).
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	changes := entity.UserChanges{FirstName: in.FirstName, LastName: in.LastName, Age: in.Age}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		changes.Email = &email
	}
	if changes.Empty() {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if changes.Email != nil && *changes.Email != user.Email {
		taken, err := uc.repo.IsEmailTaken(ctx, *changes.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	changes.Apply(user)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Delete elimina un usuario. Devuelve domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// IsEmailTaken indica si el email ya pertenece a otro usuario distinto de excludeID.
func (uc *UserUseCase) IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	return uc.repo.IsEmailTaken(ctx, normalizeEmail(email), excludeID)
}

// Query lista usuarios paginados. Solo email y created se usan como filtro.
func (uc *UserUseCase) Query(ctx context.Context, q dto.UserListQuery) (*paginate.QueryResult[entity.Document], error) {
	filter := paginate.Filter{}
	if q.Email != "" {
		filter["email"] = normalizeEmail(q.Email)
	}
	if q.Created != "" {
		created, err := parseTime(q.Created)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter["created"] = created
	}
	return uc.repo.Paginate(ctx, filter, q.Options())
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Created:   u.Created,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// now hora UTC truncada a milisegundos (precisión de las fechas BSON).
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Truncate(time.Millisecond), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
