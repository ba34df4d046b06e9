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

	"github.com/jhoicas/sakti-pos/internal/application/auth"
	"github.com/jhoicas/sakti-pos/internal/application/expense"
	"github.com/jhoicas/sakti-pos/internal/application/inventory"
	"github.com/jhoicas/sakti-pos/internal/application/receivable"
	"github.com/jhoicas/sakti-pos/internal/application/reporting"
	"github.com/jhoicas/sakti-pos/internal/application/sales"
	"github.com/jhoicas/sakti-pos/internal/application/supplier"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/credential"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/sakti-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/sakti-pos/internal/interfaces/http"
	"github.com/jhoicas/sakti-pos/pkg/config"
	"github.com/jhoicas/sakti-pos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	txRunner, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeStore()

	verifier := credential.NewBcryptVerifier(
		credential.Account{Username: cfg.Auth.OwnerUser, PasswordHash: cfg.Auth.OwnerPasswordHash, Role: entity.RoleOwner},
		credential.Account{Username: cfg.Auth.CashierUser, PasswordHash: cfg.Auth.CashierPasswordHash, Role: entity.RoleCashier},
	)
	if !verifier.Enabled() {
		log.Warn().Msg("sin cuentas configuradas (AUTH_*_PASSWORD_HASH): nadie podrá iniciar sesión")
	}

	inventoryUC := inventory.NewUseCase(txRunner)
	salesUC := sales.NewUseCase(txRunner, inventoryUC, infrapdf.NewMarotoReceiptGenerator(), cfg.App.ShopName)
	authUC := auth.NewAuthUseCase(verifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Sakti POS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InventoryUC:  inventoryUC,
		SalesUC:      salesUC,
		SupplierUC:   supplier.NewUseCase(txRunner),
		ReceivableUC: receivable.NewUseCase(txRunner),
		ExpenseUC:    expense.NewUseCase(txRunner),
		ReportingUC:  reporting.NewUseCase(txRunner, excel.NewWorkbookExporter()),
		JWTSecret:    cfg.JWT.Secret,
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
