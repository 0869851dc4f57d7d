package dto

import "github.com/jhoicas/users-api/pkg/paginate"

// PageQuery opciones de listado leídas del query string (?sortBy=email:desc&limit=10&page=2).
type PageQuery struct {
	SortBy    string
	Limit     int
	Page      int
	ProjectBy string
	Populate  string
}

// Options convierte la consulta en opciones del motor de paginación.
func (q PageQuery) Options() paginate.Options {
	return paginate.Options{
		SortBy:    q.SortBy,
		Limit:     q.Limit,
		Page:      q.Page,
		ProjectBy: q.ProjectBy,
		Populate:  q.Populate,
	}
}

// ListResponse forma del sobre de listados (documentación Swagger).
type ListResponse struct {
	Results      []map[string]any `json:"results"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	TotalPages   int              `json:"totalPages"`
	TotalResults int64            `json:"totalResults"`
}

// ErrorResponse cuerpo de error HTTP. Details lista campo -> regla incumplida en errores de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
