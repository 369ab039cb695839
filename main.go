package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"restopos/internal/cache"
	"restopos/internal/config"
	"restopos/internal/database"
	"restopos/internal/effects"
	"restopos/internal/handlers"
	applogger "restopos/internal/logger"
	"restopos/internal/middleware"
	"restopos/internal/models"
	"restopos/internal/repositories"
	"restopos/internal/services"
	"restopos/pkg/printer"
	"restopos/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	logger, err := applogger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	app, cleanup, err := buildApp(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}

	// --- Start HTTP Server ---
	logger.Info("Starting server", zap.String("port", cfg.App.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.App.Port); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Error during Fiber shutdown", zap.Error(err))
	}
	// Pending writes are drained before the database is closed.
	cleanup()
	logger.Info("Server gracefully stopped")
}

// repositorySet holds one implementation of every repository.
type repositorySet struct {
	items        repositories.ItemRepository
	grid         repositories.GridRepository
	tickets      repositories.TicketRepository
	receipts     repositories.ReceiptRepository
	settings     repositories.SettingsRepository
	paymentTypes repositories.PaymentTypeRepository
	db           *gorm.DB
}

func newRepositories(cfg config.DatabaseConfig) (*repositorySet, error) {
	if cfg.Driver == "memory" {
		return &repositorySet{
			items:        repositories.NewMemoryItemRepository(),
			grid:         repositories.NewMemoryGridRepository(),
			tickets:      repositories.NewMemoryTicketRepository(),
			receipts:     repositories.NewMemoryReceiptRepository(),
			settings:     repositories.NewMemorySettingsRepository(),
			paymentTypes: repositories.NewMemoryPaymentTypeRepository(),
		}, nil
	}

	db, err := database.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return &repositorySet{
		items:        repositories.NewGORMItemRepository(db),
		grid:         repositories.NewGORMGridRepository(db),
		tickets:      repositories.NewGORMTicketRepository(db),
		receipts:     repositories.NewGORMReceiptRepository(db),
		settings:     repositories.NewGORMSettingsRepository(db),
		paymentTypes: repositories.NewGORMPaymentTypeRepository(db),
		db:           db,
	}, nil
}

func newItemCache(cfg config.CacheConfig, logger *zap.Logger) (cache.ItemCache, func(), error) {
	if cfg.Driver != "redis" {
		return cache.NewMemoryItemCache(cfg.TTL), func() {}, nil
	}
	rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Item cache backed by Redis", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedisItemCache(rdb, cfg.TTL), func() { rdb.Close() }, nil
}

func defaultSettings(cfg config.DefaultsConfig) (models.Settings, error) {
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return models.Settings{}, fmt.Errorf("invalid DEFAULT_TAX_RATE %q: %w", cfg.TaxRate, err)
	}
	return models.Settings{
		TaxEnabled:   !rate.IsZero(),
		TaxRate:      rate,
		MorningStart: cfg.MorningStart,
		MorningEnd:   cfg.MorningEnd,
		NightEnd:     cfg.NightEnd,
	}, nil
}

// releaser runs drain first and then the closers, newest first. Queued
// effects still need every connection while they drain.
type releaser struct {
	drain   func()
	closers []func()
}

func (r *releaser) add(closer func()) {
	r.closers = append(r.closers, closer)
}

func (r *releaser) release() {
	if r.drain != nil {
		r.drain()
		r.drain = nil
	}
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

// buildApp wires every layer. The returned cleanup drains the effect queue
// and then releases connections.
func buildApp(cfg *config.Config, logger *zap.Logger) (*fiber.App, func(), error) {
	res := &releaser{}
	fail := func(err error) (*fiber.App, func(), error) {
		res.release()
		return nil, nil, err
	}

	// --- Initialize Repositories ---
	repos, err := newRepositories(cfg.Database)
	if err != nil {
		return fail(err)
	}
	if repos.db != nil {
		res.add(func() {
			if sqlDB, err := repos.db.DB(); err == nil {
				sqlDB.Close()
			}
		})
	}

	itemCache, closeCache, err := newItemCache(cfg.Cache, logger)
	if err != nil {
		return fail(err)
	}
	res.add(closeCache)

	queue := effects.NewQueue(256, 10*time.Second, logger.Named("effects"))
	res.drain = queue.Close

	defaults, err := defaultSettings(cfg.Defaults)
	if err != nil {
		return fail(err)
	}

	// --- Initialize Services ---
	loc := cfg.Location()
	catalogService := services.NewCatalogService(repos.items, repos.grid, itemCache, cfg.Grid.SlotsPerPage(), logger.Named("catalog"))
	settingsService := services.NewSettingsService(repos.settings, defaults, logger.Named("settings"))
	paymentTypeService := services.NewPaymentTypeService(repos.paymentTypes, logger.Named("payment_types"))
	receiptService := services.NewReceiptService(repos.receipts)
	reportService := services.NewReportService(repos.receipts, settingsService, loc, logger.Named("reports"))
	pinService := services.NewPinService(settingsService, cfg.Reports.TokenSecret, cfg.Reports.TokenTTL, cfg.Reports.PINAttemptsPerMin, logger.Named("pin"))

	receiptPrinter, err := printer.FromConfig(cfg.Printer.Type, cfg.Printer.Address)
	if err != nil {
		return fail(err)
	}
	res.add(func() { receiptPrinter.Close() })
	printerService := services.NewPrinterService(receiptPrinter, repos.receipts, settingsService, cfg.Printer.Type, cfg.Printer.Width, loc, logger.Named("printer"))

	// --- Initialize RabbitMQ Client ---
	// Receipt events are optional; without a broker receipts are only stored.
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL}, logger.Named("rabbitmq"))
		if err != nil {
			logger.Warn("RabbitMQ unavailable, receipt events disabled", zap.Error(err))
		} else {
			res.add(func() { mqClient.Close() })
			publisher = mqClient
			err := mqClient.Consume(rabbitmq.ReceiptQueue, func(body []byte) error {
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				return printerService.HandleReceiptEvent(ctx, body)
			})
			if err != nil {
				logger.Warn("Failed to start receipt consumer", zap.Error(err))
			}
		}
	}

	salesService := services.NewSalesService(services.SalesDeps{
		Items:     catalogService,
		Tickets:   repos.tickets,
		Receipts:  repos.receipts,
		Settings:  settingsService,
		Methods:   paymentTypeService,
		Queue:     queue,
		Publisher: publisher,
		Logger:    logger.Named("sales"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := paymentTypeService.EnsureCash(ctx); err != nil {
		return fail(err)
	}
	if err := salesService.Restore(ctx); err != nil {
		return fail(err)
	}

	// --- Initialize Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	salesHandler := handlers.NewSalesHandler(salesService, logger)
	receiptHandler := handlers.NewReceiptHandler(receiptService, printerService, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, paymentTypeService, logger)
	reportHandler := handlers.NewReportHandler(reportService, pinService, logger)
	notificationHandler := handlers.NewNotificationHandler(queue)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{AppName: "restopos"})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	salesHandler.RegisterRoutes(apiV1)
	receiptHandler.RegisterRoutes(apiV1)
	settingsHandler.RegisterRoutes(apiV1)
	reportHandler.RegisterRoutes(apiV1, middleware.ReportsUnlocked(pinService, logger))
	notificationHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": cfg.Database.Driver,
			"events":   publisher != nil,
			"printer":  printerService.Status(),
		})
	})

	return app, res.release, nil
}
