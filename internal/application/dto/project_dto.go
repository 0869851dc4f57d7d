package dto

import "time"

// CreateProjectRequest entrada para crear un proyecto. Milestones 0 -> 1.
type CreateProjectRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Milestones int    `json:"milestones" validate:"omitempty,min=1"`
	Owner      string `json:"owner" validate:"required"`
}

// ProjectListQuery filtros admitidos en GET /v1/projects.
type ProjectListQuery struct {
	PageQuery
	Owner string
	Name  string
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Milestones int       `json:"milestones"`
	Owner      string    `json:"owner"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
