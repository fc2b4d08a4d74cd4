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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-console/internal/application/partners"
	"github.com/jhoicas/Inventario-console/internal/application/transactions"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/backend"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/redisstore"
	httpRouter "github.com/jhoicas/Inventario-console/internal/interfaces/http"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/logger"
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
		Str("backend", cfg.Backend.BaseURL).
		Str("session_store", cfg.Session.Store).
		Msg("iniciando consola")

	client := backend.NewClient(backend.Config{
		BaseURL:           cfg.Backend.BaseURL,
		CSRFToken:         cfg.Backend.CSRFToken,
		Timeout:           cfg.Backend.Timeout,
		RequestsPerSecond: cfg.Backend.RequestsPerSecond,
		Burst:             cfg.Backend.Burst,
	})
	productRepo := backend.NewProductRepository(client)
	customerRepo := backend.NewCustomerRepository(client)
	supplierRepo := backend.NewSupplierRepository(client)
	movementRepo := backend.NewStockMovementRepository(client)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var sessions repository.SessionRepository
	switch cfg.Session.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		store := redisstore.NewSessionRepository(rdb, cfg.Session.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := store.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		sessions = store
	default:
		store := memory.NewSessionRepository(cfg.Session.TTL)
		go purgeSessions(ctx, store, log)
		sessions = store
	}

	transactionsUC := transactions.NewUseCase(transactions.Deps{
		Sessions:      sessions,
		Products:      productRepo,
		Customers:     customerRepo,
		Suppliers:     supplierRepo,
		Movements:     movementRepo,
		Logger:        log,
		SubmitTimeout: cfg.Backend.SubmitTimeout,
	})
	partnersUC := partners.NewUseCase(customerRepo, supplierRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.SubmitTimeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "Inventario Console API",
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TransactionsUC: transactionsUC,
		PartnersUC:     partnersUC,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}

// purgeSessions elimina periódicamente las sesiones vencidas del almacén en memoria.
func purgeSessions(ctx context.Context, store *memory.SessionRepository, log *logger.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Purge(); n > 0 {
				log.Debug().Int("sessions", n).Msg("sesiones vencidas eliminadas")
			}
		}
	}
}
