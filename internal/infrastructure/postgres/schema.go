package postgres

import (
	"context"
	"fmt"
)

// Tablas de documentos: id de texto, seq para el orden de inserción y el documento en JSONB.
const (
	UsersTable    = "users"
	ProjectsTable = "projects"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id  TEXT PRIMARY KEY,
		seq BIGSERIAL NOT NULL,
		doc JSONB NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique ON users ((doc->>'email'))`,
	`CREATE INDEX IF NOT EXISTS users_doc_gin ON users USING GIN (doc jsonb_path_ops)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id  TEXT PRIMARY KEY,
		seq BIGSERIAL NOT NULL,
		doc JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS projects_doc_gin ON projects USING GIN (doc jsonb_path_ops)`,
}

// Migrate crea las tablas e índices si no existen.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
