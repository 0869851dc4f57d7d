package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/application/usecase"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/pkg/paginate"
)

// fakeUserRepo repositorio en memoria; registra el último filtro/opciones de Paginate.
type fakeUserRepo struct {
	users      map[string]*entity.User
	seq        int
	lastFilter paginate.Filter
	lastOpts   paginate.Options
	err        error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if r.err != nil {
		return r.err
	}
	r.seq++
	u.ID = fmt.Sprintf("u%d", r.seq)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) IsEmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	for id, u := range r.users {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) DeleteAll(_ context.Context) error {
	r.users = map[string]*entity.User{}
	return nil
}

func (r *fakeUserRepo) Paginate(_ context.Context, filter paginate.Filter, opts paginate.Options) (*paginate.QueryResult[entity.Document], error) {
	r.lastFilter = filter
	r.lastOpts = opts
	if r.err != nil {
		return nil, r.err
	}
	return &paginate.QueryResult[entity.Document]{Results: []entity.Document{}, Page: 1, Limit: 10}, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validCreate() dto.CreateUserRequest {
	return dto.CreateUserRequest{FirstName: " Ana ", LastName: "Pérez", Email: "Ana@Example.COM", Age: 30}
}

func TestUserUseCase_Create(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, "u1", out.ID)
	assert.Equal(t, "Ana", out.FirstName)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.False(t, out.Created.IsZero(), "created por defecto es la hora actual")
	assert.Equal(t, time.UTC, out.Created.Location())
	assert.Len(t, repo.users, 1)
}

func TestUserUseCase_Create_CreatedExplicito(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)
	created := time.Date(2020, 5, 1, 10, 0, 0, 123456789, time.FixedZone("COT", -5*3600))
	in := validCreate()
	in.Created = &created

	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 5, 1, 15, 0, 0, 123000000, time.UTC), out.Created)
}

func TestUserUseCase_Create_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)
	_, err := uc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	in := validCreate()
	in.Email = "ana@example.com"
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, repo.users, 1)
}

func TestUserUseCase_Create_EntradaInvalida(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	in := validCreate()
	in.FirstName = "   "
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validCreate()
	in.Age = 14
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_GetByID_NoExiste(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	out, err := uc.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUserUseCase_Update_Parcial(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)
	created, err := uc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), created.ID, dto.UpdateUserRequest{Age: intPtr(31)})
	require.NoError(t, err)
	assert.Equal(t, 31, out.Age)
	assert.Equal(t, "Ana", out.FirstName, "los campos no enviados se conservan")
	assert.Equal(t, "ana@example.com", out.Email)
}

func TestUserUseCase_Update_MismoEmailPermitido(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)
	created, err := uc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), created.ID, dto.UpdateUserRequest{Email: strPtr("ANA@example.com")})
	assert.NoError(t, err)
}

func TestUserUseCase_Update_EmailDeOtroUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)
	_, err := uc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	in := validCreate()
	in.Email = "bob@example.com"
	bob, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), bob.ID, dto.UpdateUserRequest{Email: strPtr("ana@example.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUseCase_Update_SinCambios(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	_, err := uc.Update(context.Background(), "u1", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_Update_NoExiste(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	_, err := uc.Update(context.Background(), "u9", dto.UpdateUserRequest{Age: intPtr(20)})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUseCase_Delete(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)
	created, err := uc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.users)
	assert.ErrorIs(t, uc.Delete(context.Background(), created.ID), domain.ErrUserNotFound)
}

func TestUserUseCase_Query_Filtros(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	q := dto.UserListQuery{
		PageQuery: dto.PageQuery{SortBy: "age:desc", Limit: 5, Page: 2, ProjectBy: "email"},
		Email:     " Ana@Example.com ",
		Created:   "2021-03-04",
	}
	_, err := uc.Query(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, paginate.Filter{
		"email":   "ana@example.com",
		"created": time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
	}, repo.lastFilter)
	assert.Equal(t, paginate.Options{SortBy: "age:desc", Limit: 5, Page: 2, ProjectBy: "email"}, repo.lastOpts)
}

func TestUserUseCase_Query_SinFiltros(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Query(context.Background(), dto.UserListQuery{})
	require.NoError(t, err)
	assert.Empty(t, repo.lastFilter)
}

func TestUserUseCase_Query_CreatedInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	_, err := uc.Query(context.Background(), dto.UserListQuery{Created: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_Query_PropagaError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("db caída")
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Query(context.Background(), dto.UserListQuery{})
	assert.EqualError(t, err, "db caída")
}
