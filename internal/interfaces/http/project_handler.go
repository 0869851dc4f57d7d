package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/application/usecase"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/pkg/logger"
)

// ProjectHandler maneja las peticiones HTTP de /v1/projects.
type ProjectHandler struct {
	uc  *usecase.ProjectUseCase
	log *logger.Logger
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "Datos del proyecto"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		// owner inexistente o mal formado -> 400
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "owner debe ser un usuario existente",
				Details: map[string]string{"owner": "exists"},
			})
		}
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Produce      json
// @Param        owner      query  string  false  "Filtro por ID del dueño"
// @Param        name       query  string  false  "Filtro exacto por nombre"
// @Param        sortBy     query  string  false  "campo:asc|desc separados por coma"
// @Param        limit      query  int     false  "Resultados por página"  default(10)
// @Param        page       query  int     false  "Página (desde 1)"       default(1)
// @Param        projectBy  query  string  false  "campo,-otro"
// @Param        populate   query  string  false  "Relaciones a poblar (owner)"
// @Success      200  {object}  dto.ListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Query(c.UserContext(), dto.ProjectListQuery{
		PageQuery: pageQuery(c),
		Owner:     c.Query("owner"),
		Name:      c.Query("name"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proyecto por ID
// @Tags         projects
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/projects/{projectId} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("projectId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "Project not found")
	}
	return c.JSON(out)
}
