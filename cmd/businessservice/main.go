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

	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	"github.com/jhoicas/catalogo-stock/internal/application/report"
	"github.com/jhoicas/catalogo-stock/internal/infrastructure/cache"
	"github.com/jhoicas/catalogo-stock/internal/infrastructure/dataclient"
	infrapdf "github.com/jhoicas/catalogo-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-stock/internal/interfaces/business"
	"github.com/jhoicas/catalogo-stock/pkg/config"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
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
		Str("data_service", cfg.DataService.BaseURL).
		Msg("iniciando business service")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio para hablar con el data tier")
	}

	var client remote.CatalogClient = dataclient.New(cfg.DataService, cfg.JWT, log)

	// REDIS_ADDR vacío deja el business tier sin caché.
	if cfg.Redis.Addr != "" {
		client = cache.New(client, cfg.Redis, log)
		log.Info().Str("redis", cfg.Redis.Addr).Msg("caché de lecturas habilitada")
	}

	facade := remote.NewFacade(client, log)
	renderer := infrapdf.NewAlertReportRenderer()
	reports := report.NewService(facade, renderer, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/businessservice/swagger.json",
		Path:     "docs",
		Title:    "Catálogo-Stock Business API",
	}))

	business.Router(app, business.RouterDeps{
		Facade:  facade,
		Reports: reports,
		AppName: cfg.App.Name,
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

	log.Info().Msg("business service detenido")
}
