package dto

import "time"

// CreateUserRequest entrada para crear un usuario.
type CreateUserRequest struct {
	FirstName string     `json:"firstName" validate:"required,max=100"`
	LastName  string     `json:"lastName" validate:"required,max=100"`
	Email     string     `json:"email" validate:"required,email"`
	Age       int        `json:"age" validate:"required,min=15,max=100"`
	Created   *time.Time `json:"created,omitempty"`
}

// UpdateUserRequest entrada para actualización parcial; al menos un campo.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,min=15,max=100"`
}

// UserListQuery filtros admitidos en GET /v1/users (además de PageQuery).
type UserListQuery struct {
	PageQuery
	Email   string
	Created string // RFC3339 o YYYY-MM-DD
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Created   time.Time `json:"created"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
