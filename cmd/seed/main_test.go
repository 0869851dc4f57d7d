package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/infrastructure/store"
	"github.com/jhoicas/users-api/pkg/config"
	"github.com/jhoicas/users-api/pkg/logger"
	"github.com/jhoicas/users-api/pkg/paginate"
)

type memUsers struct {
	users map[string]*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = fmt.Sprintf("u%d", len(r.users)+1)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) IsEmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	for id, u := range r.users {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsers) Update(context.Context, *entity.User) error { return nil }
func (r *memUsers) Delete(context.Context, string) error       { return nil }

func (r *memUsers) DeleteAll(context.Context) error {
	r.users = map[string]*entity.User{}
	return nil
}

func (r *memUsers) Paginate(context.Context, paginate.Filter, paginate.Options) (*paginate.QueryResult[entity.Document], error) {
	return &paginate.QueryResult[entity.Document]{}, nil
}

type memProjects struct {
	projects []*entity.Project
	failOn   int // falla al crear el proyecto número failOn (1-based); 0 nunca
}

func (r *memProjects) Create(_ context.Context, p *entity.Project) error {
	if r.failOn > 0 && len(r.projects)+1 == r.failOn {
		return errors.New("conexión perdida")
	}
	p.ID = fmt.Sprintf("p%d", len(r.projects)+1)
	cp := *p
	r.projects = append(r.projects, &cp)
	return nil
}

func (r *memProjects) GetByID(context.Context, string) (*entity.Project, error) { return nil, nil }

func (r *memProjects) DeleteAll(context.Context) error {
	r.projects = nil
	return nil
}

func (r *memProjects) Paginate(context.Context, paginate.Filter, paginate.Options) (*paginate.QueryResult[entity.Document], error) {
	return &paginate.QueryResult[entity.Document]{}, nil
}

type fakeStore struct {
	users    *memUsers
	projects *memProjects
	resets   int
	resetErr error
	closed   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: &memUsers{users: map[string]*entity.User{}}, projects: &memProjects{}}
}

func (s *fakeStore) open(context.Context, *config.Config) (*store.Repositories, error) {
	return &store.Repositories{
		Users:    s.users,
		Projects: s.projects,
		Reset: func(ctx context.Context) error {
			s.resets++
			if s.resetErr != nil {
				return s.resetErr
			}
			if err := s.projects.DeleteAll(ctx); err != nil {
				return err
			}
			return s.users.DeleteAll(ctx)
		},
		Close: func() { s.closed++ },
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test", DBDriver: config.DriverMongo}}
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error", Out: io.Discard})
}

func TestRun_CargaUsuariosYProyectos(t *testing.T) {
	s := newFakeStore()
	s.users.users["viejo"] = &entity.User{ID: "viejo", Email: "viejo@example.com"}

	err := run(context.Background(), testConfig(), quietLogger(), s.open, seedOptions{users: 6}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 1, s.resets)
	assert.Len(t, s.users.users, 6, "los datos previos se vacían")
	// 0:1, 1:2, 2:-, 3:1, 4:2, 5:-
	assert.Len(t, s.projects.projects, 6)
	assert.Equal(t, 1, s.closed)
}

func TestRun_KeepNoVacia(t *testing.T) {
	s := newFakeStore()
	s.users.users["viejo"] = &entity.User{ID: "viejo", Email: "viejo@example.com"}

	err := run(context.Background(), testConfig(), quietLogger(), s.open, seedOptions{users: 2, keep: true}, io.Discard)
	require.NoError(t, err)

	assert.Zero(t, s.resets)
	assert.Len(t, s.users.users, 3)
	assert.Equal(t, 1, s.closed)
}

func TestRun_ErrorCierraElAlmacen(t *testing.T) {
	t.Run("al vaciar", func(t *testing.T) {
		s := newFakeStore()
		s.resetErr = errors.New("sin permisos")

		err := run(context.Background(), testConfig(), quietLogger(), s.open, seedOptions{users: 3}, io.Discard)
		require.Error(t, err)
		assert.ErrorIs(t, err, s.resetErr)
		assert.Contains(t, err.Error(), "vaciar colecciones")
		assert.Equal(t, 1, s.closed)
	})

	t.Run("al crear proyecto", func(t *testing.T) {
		s := newFakeStore()
		s.projects.failOn = 2

		err := run(context.Background(), testConfig(), quietLogger(), s.open, seedOptions{users: 3}, io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "crear proyecto")
		assert.Len(t, s.projects.projects, 1)
		assert.Equal(t, 1, s.closed)
	})
}

func TestRun_FallaAlAbrir(t *testing.T) {
	openErr := errors.New("connection refused")
	open := func(context.Context, *config.Config) (*store.Repositories, error) { return nil, openErr }

	err := run(context.Background(), testConfig(), quietLogger(), open, seedOptions{users: 1}, io.Discard)
	assert.ErrorIs(t, err, openErr)
}

func TestRun_ImprimeTokenConJWT(t *testing.T) {
	s := newFakeStore()
	cfg := testConfig()
	cfg.JWT = config.JWTConfig{Secret: "secreto-de-prueba", Expiration: 5, Issuer: "users-api"}

	var out bytes.Buffer
	err := run(context.Background(), cfg, quietLogger(), s.open, seedOptions{users: 1}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Authorization: Bearer ")
	assert.Equal(t, 1, s.closed)
}
