package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/pkg/paginate"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// userDoc forma JSONB de un usuario (el id vive en su columna).
type userDoc struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Created   timestamp `json:"created"`
	CreatedAt timestamp `json:"createdAt"`
	UpdatedAt timestamp `json:"updatedAt"`
}

func newUserDoc(u *entity.User) userDoc {
	return userDoc{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Created:   timestamp(u.Created),
		CreatedAt: timestamp(u.CreatedAt),
		UpdatedAt: timestamp(u.UpdatedAt),
	}
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (JSONB).
type UserRepo struct {
	q    Querier
	docs *Collection
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q, docs: NewCollection(q, UsersTable)}
}

// Create persiste un nuevo usuario y asigna su ID (UUID).
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	id := uuid.New().String()
	_, err := r.q.Exec(ctx, `INSERT INTO users (id, doc) VALUES ($1, $2)`, id, newUserDoc(user))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var doc userDoc
	err := r.q.QueryRow(ctx, `SELECT doc FROM users WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &entity.User{
		ID:        id,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Email:     doc.Email,
		Age:       doc.Age,
		Created:   time.Time(doc.Created),
		CreatedAt: time.Time(doc.CreatedAt),
		UpdatedAt: time.Time(doc.UpdatedAt),
	}, nil
}

// IsEmailTaken indica si otro usuario (distinto de excludeID) ya usa el email.
func (r *UserRepo) IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var taken bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE doc->>'email' = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return taken, nil
}

// Update reemplaza el documento del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	if err := validateID(user.ID); err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `UPDATE users SET doc = $2 WHERE id = $1`, user.ID, newUserDoc(user))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteAll vacía la tabla (seeder).
func (r *UserRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

// Paginate lista usuarios con el motor de paginación. Los errores del driver se devuelven sin envolver.
func (r *UserRepo) Paginate(ctx context.Context, filter paginate.Filter, opts paginate.Options) (*paginate.QueryResult[entity.Document], error) {
	return paginate.Paginate[entity.Document](ctx, filter, opts, r.docs)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}
