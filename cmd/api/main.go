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

	"github.com/emmebi/gestione-ore/internal/application/auth"
	"github.com/emmebi/gestione-ore/internal/application/registry"
	"github.com/emmebi/gestione-ore/internal/application/report"
	"github.com/emmebi/gestione-ore/internal/application/timeentry"
	infraexcel "github.com/emmebi/gestione-ore/internal/infrastructure/excel"
	infrapdf "github.com/emmebi/gestione-ore/internal/infrastructure/pdf"
	"github.com/emmebi/gestione-ore/internal/infrastructure/postgres"
	httpRouter "github.com/emmebi/gestione-ore/internal/interfaces/http"
	"github.com/emmebi/gestione-ore/pkg/config"
	"github.com/emmebi/gestione-ore/pkg/logger"
)

// Periodo di quiete dell'autosalvataggio delle giornate.
const autosaveDebounce = time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("caricamento configurazione: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("tenant", cfg.Tenant.ID).
		Msg("avvio applicazione")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connessione a PostgreSQL")
	}
	defer pool.Close()

	settingsRepo := postgres.NewSettingsRepository(pool, cfg.Tenant.ID)
	employeeRepo := postgres.NewEmployeeRepository(pool, cfg.Tenant.ID)
	siteRepo := postgres.NewSiteRepository(pool, cfg.Tenant.ID)
	recordRepo := postgres.NewDailyRecordRepository(pool, cfg.Tenant.ID)
	txRunner := postgres.NewTxRunner(pool, cfg.Tenant.ID)

	authUC := auth.NewAuthUseCase(settingsRepo, employeeRepo, auth.SessionConfig{
		Secret:   cfg.Session.Secret,
		ExpHours: cfg.Session.Duration,
		Issuer:   cfg.Session.Issuer,
	})
	registryUC := registry.NewUseCase(employeeRepo, siteRepo, txRunner)
	timeEntryUC := timeentry.NewUseCase(recordRepo, siteRepo, timeentry.RealClock{}, autosaveDebounce)
	reportUC := report.NewUseCase(employeeRepo, siteRepo, recordRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in locale: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestione Ore API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		RegistryUC:    registryUC,
		TimeEntryUC:   timeEntryUC,
		ReportUC:      reportUC,
		ExcelExporter: infraexcel.NewRiepilogoExporter(),
		PDFExporter:   infrapdf.NewRiepilogoGenerator(),
		SessionSecret: cfg.Session.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP terminato")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("segnale di arresto ricevuto, chiusura del server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arresto del server")
	}

	log.Info().Msg("applicazione fermata")
}
