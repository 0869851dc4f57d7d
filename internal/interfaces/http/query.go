package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/application/dto"
)

// pageQuery lee las opciones de listado. limit/page mal formados quedan en 0 y el motor
// aplica los valores por defecto.
func pageQuery(c *fiber.Ctx) dto.PageQuery {
	return dto.PageQuery{
		SortBy:    c.Query("sortBy"),
		Limit:     c.QueryInt("limit", 0),
		Page:      c.QueryInt("page", 0),
		ProjectBy: c.Query("projectBy"),
		Populate:  c.Query("populate"),
	}
}
