package entity

import "time"

// Límites de edad aceptados para User.
const (
	MinUserAge = 15
	MaxUserAge = 100
)

// Document documento ya normalizado (id en lugar de _id) tal como lo devuelven los listados.
type Document = map[string]any

// User representa un usuario del sistema.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string // único, en minúsculas
	Age       int
	Created   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserChanges campos opcionales para una actualización parcial.
type UserChanges struct {
	FirstName *string
	LastName  *string
	Email     *string
	Age       *int
}

// Empty indica si no hay ningún cambio.
func (c UserChanges) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Email == nil && c.Age == nil
}

// Apply aplica los cambios sobre u.
func (c UserChanges) Apply(u *User) {
	if c.FirstName != nil {
		u.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		u.LastName = *c.LastName
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.Age != nil {
		u.Age = *c.Age
	}
}
