package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/users-api/docs"
	"github.com/jhoicas/users-api/internal/application/usecase"
	"github.com/jhoicas/users-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/users-api/internal/interfaces/http"
	"github.com/jhoicas/users-api/pkg/config"
	"github.com/jhoicas/users-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.App.DBDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.App.DBDriver).Msg("conexión al almacén")
	}
	defer repos.Close()

	userUC := usecase.NewUserUseCase(repos.Users)
	projectUC := usecase.NewProjectUseCase(repos.Projects, repos.Users)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: httpRouter.LocalRequestID,
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI solo en desarrollo: http://localhost:<port>/docs
	if cfg.App.IsDevelopment() {
		if _, err := os.Stat(swaggerFile); err == nil {
			docs.SwaggerInfo.Title = cfg.App.Name
			docs.SwaggerInfo.Host = cfg.HTTP.Addr()
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: swaggerFile,
				Path:     "docs",
				Title:    cfg.App.Name,
			}))
		} else {
			log.Warn().Str("file", swaggerFile).Msg("documento swagger no encontrado; /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:    userUC,
		ProjectUC: projectUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
