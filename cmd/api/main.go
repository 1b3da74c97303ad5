package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/cloud-billing/internal/application/billing"
	"github.com/tu-usuario/cloud-billing/internal/application/catalog"
	"github.com/tu-usuario/cloud-billing/internal/application/reports"
	"github.com/tu-usuario/cloud-billing/internal/application/usage"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/ingest"
	infrapdf "github.com/tu-usuario/cloud-billing/internal/infrastructure/pdf"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/xmlstore"
	httpRouter "github.com/tu-usuario/cloud-billing/internal/interfaces/http"
	"github.com/tu-usuario/cloud-billing/internal/store"
	"github.com/tu-usuario/cloud-billing/pkg/config"
	"github.com/tu-usuario/cloud-billing/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	st := store.New()

	xmlStore, err := xmlstore.New(cfg.Store.DataDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia XML")
	}
	if err := xmlStore.Cargar(st); err != nil {
		log.Fatal().Err(err).Msg("cargar estado persistido")
	}
	log.Info().
		Int("recursos", len(st.Recursos())).
		Int("clientes", len(st.Clientes())).
		Int("facturas", len(st.Facturas())).
		Msg("estado cargado")

	catalogUC := catalog.New(st, log)
	usageUC := usage.New(st, log)
	procesador := ingest.NewProcesador(st, log)
	billingSvc := billing.New(st, log, billing.Options{
		LexicographicDates: cfg.Billing.LexicographicDates,
	})
	reportsSvc := reports.New(st, billingSvc, log)

	pdfGenerator, err := infrapdf.NewGenerator(cfg.Store.ReportsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar generador de PDFs")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:    st,
		XMLStore: xmlStore,
		Catalog:  catalogUC,
		Usage:    usageUC,
		Ingest:   procesador,
		Billing:  billingSvc,
		Reports:  reportsSvc,
		PDF:      pdfGenerator,
		Log:      log,
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
