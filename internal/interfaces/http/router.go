package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/application/usecase"
	"github.com/jhoicas/users-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC    *usecase.UserUseCase
	ProjectUC *usecase.ProjectUseCase
	JWTSecret string // vacío -> escrituras sin autenticación
	Log       *logger.Logger
}

// Router registra las rutas de la API bajo /v1.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	v1 := app.Group("/v1")

	// Lecturas públicas; escrituras protegidas con Bearer Token si hay secreto configurado.
	write := func(h fiber.Handler) []fiber.Handler {
		if deps.JWTSecret == "" {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{AuthMiddleware(deps.JWTSecret), h}
	}

	users := v1.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, log)
	users.Post("/", write(userHandler.Create)...)
	users.Get("/", userHandler.List)
	users.Get("/:userId", userHandler.GetByID)
	users.Patch("/:userId", write(userHandler.Update)...)
	users.Delete("/:userId", write(userHandler.Delete)...)

	projects := v1.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC, log)
	projects.Post("/", write(projectHandler.Create)...)
	projects.Get("/", projectHandler.List)
	projects.Get("/:projectId", projectHandler.GetByID)
}
