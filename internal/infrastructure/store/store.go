// Package store abre el almacén configurado (DB_DRIVER) y expone sus repositorios.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/users-api/internal/infrastructure/postgres"
	"github.com/jhoicas/users-api/pkg/config"
)

// Repositories repositorios del almacén abierto.
type Repositories struct {
	Users    repository.UserRepository
	Projects repository.ProjectRepository
	// Reset vacía proyectos y usuarios (seeder).
	Reset func(ctx context.Context) error
	// Close libera la conexión.
	Close func()
}

// Open conecta al driver configurado, prepara índices/esquema y construye los repositorios.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.App.DBDriver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		users := mongodb.NewUserRepository(db)
		projects := mongodb.NewProjectRepository(db)
		return &Repositories{
			Users:    users,
			Projects: projects,
			Reset: func(ctx context.Context) error {
				if err := projects.DeleteAll(ctx); err != nil {
					return err
				}
				return users.DeleteAll(ctx)
			},
			Close: func() { _ = client.Disconnect(context.Background()) },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Repositories{
			Users:    postgres.NewUserRepository(pool),
			Projects: postgres.NewProjectRepository(pool),
			Reset:    postgres.NewTxRunner(pool).Reset,
			Close:    pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("store: driver no soportado %q", cfg.App.DBDriver)
}
