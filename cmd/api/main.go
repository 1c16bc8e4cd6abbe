package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
	"github.com/jhoicas/usuarios-api/internal/infrastructure/memory"
	"github.com/jhoicas/usuarios-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/usuarios-api/internal/interfaces/http"
	migrations "github.com/jhoicas/usuarios-api/migrations/postgres"
	"github.com/jhoicas/usuarios-api/pkg/config"
	"github.com/jhoicas/usuarios-api/pkg/logger"
	"github.com/jhoicas/usuarios-api/pkg/validator"
)

// @title        Usuarios API
// @version      1.0
// @description  API REST para la gestión de usuarios y sus domicilios.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		usuarioRepo   repository.UsuarioRepository
		domicilioRepo repository.DomicilioRepository
		txRunner      usecase.TxRunner
		pinger        httpRouter.Pinger
		poolStats     httpRouter.PoolStater
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		usuarioRepo, domicilioRepo, txRunner, pinger = store.Usuarios(), store.Domicilios(), store, store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.Migrations.Auto {
			applied, err := postgres.NewMigrator(pool, migrations.FS).Up(ctx, 0)
			if err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
			log.Info().Strs("applied", applied).Msg("migraciones al día")
		}

		usuarioRepo = postgres.NewUsuarioRepository(pool)
		domicilioRepo = postgres.NewDomicilioRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
		pinger, poolStats = pool, pool
	}

	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, txRunner)
	domicilioUC := usecase.NewDomicilioUseCase(usuarioRepo, domicilioRepo)

	metrics, err := httpRouter.NewMetrics(poolStats)
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas")
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		Logger:       log,
		Metrics:      metrics,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Usuarios API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", httpRouter.Health(cfg.App.Name, cfg.Storage.Driver, pinger))

	httpRouter.Router(app, httpRouter.RouterDeps{
		UsuarioUC:   usuarioUC,
		DomicilioUC: domicilioUC,
		Validator:   validator.New(),
		Logger:      log,
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
