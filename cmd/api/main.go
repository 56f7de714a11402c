package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dukapos/dukapos-api/internal/application/auth"
	"github.com/dukapos/dukapos-api/internal/application/discounts"
	"github.com/dukapos/dukapos-api/internal/application/inventory"
	"github.com/dukapos/dukapos-api/internal/application/loyalty"
	"github.com/dukapos/dukapos-api/internal/application/sales"
	"github.com/dukapos/dukapos-api/internal/application/shifts"
	"github.com/dukapos/dukapos-api/internal/domain/fiscal"
	"github.com/dukapos/dukapos-api/internal/infrastructure/cache"
	"github.com/dukapos/dukapos-api/internal/infrastructure/postgres"
	httpRouter "github.com/dukapos/dukapos-api/internal/interfaces/http"
	"github.com/dukapos/dukapos-api/pkg/config"
	"github.com/dukapos/dukapos-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	discountRepo := postgres.NewDiscountRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	loyaltyTxRunner := postgres.NewLoyaltyTxRunner(pool)

	// Caché de recibos fiscales: opcional, degrada en silencio si Redis no está.
	var receipts sales.ReceiptCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisReceiptCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, recibos sin caché")
		} else {
			receipts = redisCache
			defer redisCache.Close()
		}
	}

	saleUC := sales.NewSaleUseCase(
		txRunner, saleRepo, productRepo, customerRepo, shiftRepo, paymentRepo,
		fiscal.NewSignerService(), receipts,
	)
	inventoryUC := inventory.NewInventoryUseCase(txRunner, productRepo, movementRepo)
	loyaltyUC := loyalty.NewLoyaltyUseCase(loyaltyTxRunner, customerRepo, postgres.NewLoyaltyRepository(pool))
	shiftUC := shifts.NewShiftUseCase(txRunner, shiftRepo)
	discountUC := discounts.NewDiscountUseCase(discountRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SaleUC:      saleUC,
		InventoryUC: inventoryUC,
		LoyaltyUC:   loyaltyUC,
		ShiftUC:     shiftUC,
		DiscountUC:  discountUC,
		JWTSecret:   cfg.JWT.Secret,
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
