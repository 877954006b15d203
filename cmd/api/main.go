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

	"github.com/jhoicas/billera-api/docs"
	"github.com/jhoicas/billera-api/internal/application/export"
	"github.com/jhoicas/billera-api/internal/application/wizard"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
	"github.com/jhoicas/billera-api/internal/infrastructure/archive"
	"github.com/jhoicas/billera-api/internal/infrastructure/money"
	infrapdf "github.com/jhoicas/billera-api/internal/infrastructure/pdf"
	"github.com/jhoicas/billera-api/internal/infrastructure/render"
	"github.com/jhoicas/billera-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/billera-api/internal/interfaces/http"
	"github.com/jhoicas/billera-api/pkg/config"
	"github.com/jhoicas/billera-api/pkg/logger"
)

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
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	session := wizard.NewSession(invoice.Defaults{
		Currency: cfg.Invoice.Currency,
		Language: cfg.Invoice.Language,
		Locale:   cfg.Invoice.Locale,
		Terms:    cfg.Invoice.Terms,
		DueDays:  cfg.Invoice.DueDays,
	}, log.Zerolog())

	// Superficie de render: sigue cada versión de la factura activa.
	formatter := money.NewFormatter()
	surface := render.NewSurface(render.NewHTMLRenderer(formatter), log.Zerolog())
	defer surface.Close()
	session.OnActiveChange(surface.Mount)

	// Destino de los documentos: disco si hay directorio configurado, si no solo descarga.
	var saver export.Saver = storage.DiscardSaver{}
	if cfg.Export.OutputDir != "" {
		dirSaver, err := storage.NewDirSaver(cfg.Export.OutputDir, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Export.OutputDir).Msg("directorio de exportación")
		}
		saver = dirSaver
	}

	rasterizer := infrapdf.NewMarotoRasterizer(formatter, infrapdf.Margins{
		Top:    cfg.Export.MarginTop,
		Right:  cfg.Export.MarginRight,
		Bottom: cfg.Export.MarginBottom,
		Left:   cfg.Export.MarginLeft,
	})
	exporter := export.NewOrchestrator(
		func() (export.Navigator, error) {
			lease, err := session.BeginExport()
			if err != nil {
				return nil, err
			}
			return lease, nil
		},
		surface,
		rasterizer,
		func() export.Archive { return archive.NewZipBuilder() },
		saver,
		export.Config{
			SettleDelay:      cfg.Export.SettleDelay,
			RenderDelay:      cfg.Export.RenderDelay,
			MinDocumentBytes: cfg.Export.MinDocumentBytes,
		},
		log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		// Logo (5 MB) o CSV más el overhead multipart.
		BodyLimit: int(max(cfg.Upload.LogoMaxBytes, cfg.Upload.ImportMaxBytes)) + 1024*1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	swaggerCfg := swagger.Config{
		BasePath: "/",
		Path:     "docs",
		Title:    "Billera API",
	}
	if cfg.HTTP.SwaggerFile != "" {
		swaggerCfg.FilePath = cfg.HTTP.SwaggerFile
	} else {
		swaggerCfg.FileContent = docs.SwaggerJSON
	}
	app.Use(swagger.New(swaggerCfg))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:        session,
		Exporter:       exporter,
		LogoMaxBytes:   cfg.Upload.LogoMaxBytes,
		ImportMaxBytes: cfg.Upload.ImportMaxBytes,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	exporter.Abort()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
