package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/usuarios-api/internal/infrastructure/postgres"
	migrations "github.com/jhoicas/usuarios-api/migrations/postgres"
	"github.com/jhoicas/usuarios-api/pkg/config"
	"github.com/jhoicas/usuarios-api/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	var steps int

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Migraciones del esquema PostgreSQL (usuarios, domicilios)",
		SilenceUsage: true,
	}
	root.PersistentFlags().IntVar(&steps, "steps", 0, "Cantidad de migraciones (up: 0 = todas; down: 0 = la última)")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, m *postgres.Migrator) ([]string, error) {
				return m.Up(ctx, steps)
			}, "aplicada")
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revierte las últimas migraciones aplicadas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, m *postgres.Migrator) ([]string, error) {
				return m.Down(ctx, steps)
			}, "revertida")
		},
	}

	root.AddCommand(upCmd, downCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, fn func(context.Context, *postgres.Migrator) ([]string, error), verb string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return err
	}
	defer pool.Close()

	versions, err := fn(ctx, postgres.NewMigrator(pool, migrations.FS))
	if err != nil {
		log.Error().Err(err).Msg("migración fallida")
		return err
	}
	if len(versions) == 0 {
		log.Info().Msg("sin cambios")
		return nil
	}
	for _, v := range versions {
		log.Info().Str("version", v).Msgf("migración %s", verb)
	}
	return nil
}
