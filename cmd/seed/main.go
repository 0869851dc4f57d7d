// seed vacía las colecciones y carga usuarios y proyectos de ejemplo para probar los listados
// (ordenamiento, paginación, proyección y populate=owner).
//
// Uso: go run ./cmd/seed [-users 25] [-keep]
// Si JWT_SECRET está definido imprime un token de desarrollo para las rutas de escritura.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/application/usecase"
	"github.com/jhoicas/users-api/internal/infrastructure/store"
	"github.com/jhoicas/users-api/pkg/config"
	"github.com/jhoicas/users-api/pkg/jwt"
	"github.com/jhoicas/users-api/pkg/logger"
)

var (
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elena", "Felipe", "Gloria", "Hugo", "Isabel", "Jorge"}
	lastNames  = []string{"Pérez", "Gómez", "Rodríguez", "López", "Martínez", "Sánchez", "Ramírez"}
)

// openFunc abre el almacén; en main es store.Open.
type openFunc func(ctx context.Context, cfg *config.Config) (*store.Repositories, error)

type seedOptions struct {
	users int
	keep  bool
}

func main() {
	count := flag.Int("users", 25, "cantidad de usuarios a crear")
	keep := flag.Bool("keep", false, "no borrar los datos existentes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	err = run(ctx, cfg, log, store.Open, seedOptions{users: *count, keep: *keep}, os.Stdout)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.App.DBDriver).Msg("seed")
	}
}

// run abre el almacén, carga los datos y lo cierra siempre antes de volver.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, open openFunc, opts seedOptions, out io.Writer) error {
	repos, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("conexión al almacén: %w", err)
	}
	defer repos.Close()

	if !opts.keep {
		if err := repos.Reset(ctx); err != nil {
			return fmt.Errorf("vaciar colecciones: %w", err)
		}
	}

	userUC := usecase.NewUserUseCase(repos.Users)
	projectUC := usecase.NewProjectUseCase(repos.Projects, repos.Users)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var ownerIDs []string
	for i := 0; i < opts.users; i++ {
		created := base.AddDate(0, 0, i)
		u, err := userUC.Create(ctx, dto.CreateUserRequest{
			FirstName: firstNames[i%len(firstNames)],
			LastName:  lastNames[i%len(lastNames)],
			Email:     fmt.Sprintf("user%02d@example.com", i+1),
			Age:       18 + (i*7)%60,
			Created:   &created,
		})
		if err != nil {
			return fmt.Errorf("crear usuario %d: %w", i, err)
		}
		ownerIDs = append(ownerIDs, u.ID)
	}

	projects := 0
	for i, ownerID := range ownerIDs {
		// uno de cada tres usuarios sin proyectos
		if i%3 == 2 {
			continue
		}
		for m := 1; m <= 1+i%2; m++ {
			if _, err := projectUC.Create(ctx, dto.CreateProjectRequest{
				Name:       fmt.Sprintf("Proyecto %02d-%d", i+1, m),
				Milestones: 1 + (i+m)%5,
				Owner:      ownerID,
			}); err != nil {
				return fmt.Errorf("crear proyecto de %s: %w", ownerID, err)
			}
			projects++
		}
	}

	log.Info().
		Str("driver", cfg.App.DBDriver).
		Int("users", len(ownerIDs)).
		Int("projects", projects).
		Msg("datos de ejemplo cargados")

	if cfg.JWT.Enabled() {
		token, err := jwt.Generate(cfg.JWT.Secret, "seed", cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			return fmt.Errorf("generar token: %w", err)
		}
		fmt.Fprintln(out, "Authorization: Bearer "+token)
	}
	return nil
}
