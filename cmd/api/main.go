package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"github.com/jhoicas/marketplace-identity/internal/application/account"
	"github.com/jhoicas/marketplace-identity/internal/domain/repository"
	"github.com/jhoicas/marketplace-identity/internal/infrastructure/memory"
	"github.com/jhoicas/marketplace-identity/internal/infrastructure/metrics"
	"github.com/jhoicas/marketplace-identity/internal/infrastructure/postgres"
	"github.com/jhoicas/marketplace-identity/internal/infrastructure/security"
	"github.com/jhoicas/marketplace-identity/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/marketplace-identity/internal/interfaces/http"
	"github.com/jhoicas/marketplace-identity/pkg/config"
	"github.com/jhoicas/marketplace-identity/pkg/logger"
)

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
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	m := metrics.New(prometheus.DefaultRegisterer)

	var accountRepo repository.AccountRepository
	switch cfg.DB.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("STORE_DRIVER=memory: las cuentas no se persisten")
		accountRepo = memory.NewAccountRepository()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		accountRepo = postgres.NewAccountRepository(pool)
	}

	// El adaptador de documentos se decide una sola vez, aquí.
	store, err := storage.New(cfg.Cloudinary, cfg.Upload, afero.NewOsFs(), log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de documentos")
	}
	attachments := storage.Instrument(store, m)

	accountUC := account.NewLifecycleUseCase(
		accountRepo,
		attachments,
		security.NewBcryptHasher(cfg.Security.BcryptCost),
		security.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiresIn),
		m,
		log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.MaxBytes,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Marketplace Identity API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": attachments.Backend()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if attachments.Backend() == storage.BackendLocal {
		app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AccountUC: accountUC,
		JWTSecret: cfg.JWT.Secret,
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
