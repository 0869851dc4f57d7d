package entity

import "time"

// Project agrupa hitos de un usuario dueño; Owner guarda el id del User (poblable como "owner").
type Project struct {
	ID         string
	Name       string
	Milestones int
	Owner      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
