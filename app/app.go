package app

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pookadai/app/controller"
	"pookadai/app/router"
	"pookadai/config"
	"pookadai/db"
	"pookadai/events"
	"pookadai/repository"
	"pookadai/service"
)

// App holds the wired application
type App struct {
	Router    *gin.Engine
	Snapshots *service.SnapshotService
	closers   []io.Closer
	logger    *zap.Logger
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	// Snapshot storage
	var snapshotRepo repository.SnapshotRepositoryInterface
	if cfg.Database.Enabled() {
		conn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, conn)
		if err := db.EnsureSchema(ctx, conn); err != nil {
			a.Close()
			return nil, err
		}
		snapshotRepo = repository.NewPostgresSnapshotRepository(conn, logger)
		logger.Info("database connection established")
	} else {
		snapshotRepo = repository.NewMemorySnapshotRepository()
		logger.Warn("no database configured, snapshots are kept in memory")
	}

	// Order notifications
	var notifier service.Notifier
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		kafkaNotifier := events.NewKafkaNotifier(brokers, cfg.Kafka.Topic, logger)
		a.closers = append(a.closers, kafkaNotifier)
		notifier = kafkaNotifier
		logger.Info("publishing order events to kafka", zap.Strings("brokers", brokers), zap.String("topic", cfg.Kafka.Topic))
	} else {
		notifier = events.NewLogNotifier(logger)
	}

	// Stores and services
	identity := service.ContextIdentity{}
	productRepo := repository.NewProductRepository(logger)
	catalog := service.NewProductCatalog(productRepo, identity, logger)
	orders := service.NewOrderStore(notifier, logger)
	// Closed before the kafka writer so queued events are flushed first
	a.closers = append(a.closers, orders)
	payments := service.NewPaymentSimulator(orders, logger,
		service.WithDecider(service.RandomDecider{SuccessRate: cfg.Payment.SuccessRate}),
		service.WithDelay(service.UniformDelay(cfg.Payment.MinDelay, cfg.Payment.MaxDelay)),
		service.WithTimeout(cfg.Payment.Timeout),
	)
	carts := service.NewCartRegistry(orders, payments, cfg.DefaultLanguage, logger, service.WithIdleTTL(cfg.CartIdleTTL))
	admin := service.NewOrderAdmin(orders, identity, logger)

	a.Snapshots = service.NewSnapshotService(snapshotRepo, carts, orders, productRepo, logger)
	if err := a.Snapshots.Restore(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to restore snapshots: %w", err)
	}

	// Create controllers
	controllers := &router.Controllers{
		Product:  controller.NewProductController(catalog, logger),
		Cart:     controller.NewCartController(carts, catalog, logger),
		Checkout: controller.NewCheckoutController(carts, logger),
		Order:    controller.NewOrderController(admin, logger),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = router.SetupRoutes(controllers, router.Options{
		OwnerTokens:     cfg.OwnerTokens,
		DefaultLanguage: cfg.DefaultLanguage,
		Logger:          logger,
	})

	return a, nil
}

// Close flushes order notifications, then releases the kafka writer and the database connection
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
