// migrate aplica las migraciones embebidas (goose) sobre la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|status|version|redo|reset] [args...]
package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/Vitrine-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Vitrine-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/Vitrine-api/pkg/config"
	"github.com/jhoicas/Vitrine-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrations.Run(ctx, db, command, args...); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migraciones")
	}
	log.Info().Str("command", command).Msg("migraciones completadas")
}
