package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	cartevent "github.com/rohanbadgujar20011/food-delivery-app/internal/cart/event"
	carthandler "github.com/rohanbadgujar20011/food-delivery-app/internal/cart/handler/http"
	cartredis "github.com/rohanbadgujar20011/food-delivery-app/internal/cart/repository/redis"
	cartservice "github.com/rohanbadgujar20011/food-delivery-app/internal/cart/service"
	checkoutclient "github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/client"
	checkouthandler "github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/handler/http"
	checkoutservice "github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/service"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/config"
	menuhandler "github.com/rohanbadgujar20011/food-delivery-app/internal/menu/handler/http"
	menumongo "github.com/rohanbadgujar20011/food-delivery-app/internal/menu/repository/mongo"
	menuservice "github.com/rohanbadgujar20011/food-delivery-app/internal/menu/service"
	orderevent "github.com/rohanbadgujar20011/food-delivery-app/internal/order/event"
	orderhandler "github.com/rohanbadgujar20011/food-delivery-app/internal/order/handler/http"
	orderpostgres "github.com/rohanbadgujar20011/food-delivery-app/internal/order/repository/postgres"
	orderservice "github.com/rohanbadgujar20011/food-delivery-app/internal/order/service"
	paymentevent "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/event"
	paymenthandler "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/handler/http"
	paymentmock "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/provider/mock"
	paymentpostgres "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/repository/postgres"
	paymentservice "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/service"
	"github.com/rohanbadgujar20011/food-delivery-app/migrations"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/database"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/health"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httpclient"
	pkgkafka "github.com/rohanbadgujar20011/food-delivery-app/pkg/kafka"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/tracing"
)

// App wires together all dependencies and runs the food delivery server.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	redisClient     *redis.Client
	mongoClient     *mongo.Client
	pool            *pgxpool.Pool
	producer        *pkgkafka.Producer
	paymentConsumer *pkgkafka.Consumer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Tracing (no-op unless enabled).
	tracingCfg := tracing.DefaultConfig("food-delivery")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.TracingEndpoint
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Redis holds the cart store.
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	// MongoDB holds the menu.
	mongoClient, err := database.NewMongoClient(ctx, database.MongoConfig{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDB,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	logger.Info("connected to MongoDB", slog.String("database", cfg.MongoDB))

	// PostgreSQL holds orders and payments.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPass
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSL

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "food-delivery")

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Kafka producer, shared by all event publishers.
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Cart.
	cartRepo := cartredis.NewCartRepository(redisClient, cfg.CartTTL)
	cartSvc := cartservice.NewCartService(cartRepo, cartevent.NewProducer(producer, logger), logger)

	// Menu.
	menuRepo := menumongo.NewMenuRepository(mongoClient.Database(cfg.MongoDB))
	if err := menuRepo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure menu indexes: %w", err)
	}
	menuSvc := menuservice.NewMenuService(menuRepo, logger)

	// Orders.
	orderRepo := orderpostgres.NewOrderRepository(pool)
	orderSvc := orderservice.NewOrderService(orderRepo, orderevent.NewProducer(producer, logger), logger)

	// A successful payment confirms its order via the payment.succeeded
	// subscription.
	paymentConsumer := pkgkafka.NewConsumer(
		pkgkafka.DefaultConsumerConfig(cfg.KafkaBrokers, orderevent.ConsumerGroupOrder, paymentevent.TopicPaymentSucceeded),
		orderevent.PaymentSucceededHandler(orderSvc, logger),
		logger,
	)

	// Payments.
	paymentRepo := paymentpostgres.NewPaymentRepository(pool)
	paymentSvc := paymentservice.NewPaymentService(
		paymentRepo,
		paymentmock.NewProvider(),
		paymentevent.NewProducer(producer, logger),
		logger,
	)

	// Checkout calls the order and payment endpoints over HTTP through a
	// circuit breaker, even when they are this same process.
	httpc := httpclient.New(httpclient.DefaultConfig())
	orderClient := checkoutclient.NewOrderClient(
		httpclient.NewCircuitBreakerClient(httpc, httpclient.DefaultCircuitBreakerConfig("order-service"), logger),
		cfg.OrderServiceURL,
	)
	paymentClient := checkoutclient.NewPaymentClient(
		httpclient.NewCircuitBreakerClient(httpc, httpclient.DefaultCircuitBreakerConfig("payment-service"), logger),
		cfg.PaymentServiceURL,
	)
	checkoutSvc := checkoutservice.NewCheckoutService(cartSvc, orderClient, paymentClient, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.Register("mongo", func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	})
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	router := newRouter(routerDeps{
		cfg:             cfg,
		logger:          logger,
		health:          healthHandler,
		cartHandler:     carthandler.NewCartHandler(cartSvc, logger),
		menuHandler:     menuhandler.NewMenuHandler(menuSvc, logger),
		orderHandler:    orderhandler.NewOrderHandler(orderSvc, logger),
		paymentHandler:  paymenthandler.NewPaymentHandler(paymentSvc, logger),
		checkoutHandler: checkouthandler.NewCheckoutHandler(checkoutSvc, logger),
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		redisClient:     redisClient,
		mongoClient:     mongoClient,
		pool:            pool,
		producer:        producer,
		paymentConsumer: paymentConsumer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and the payment event consumer, blocking until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		if err := a.paymentConsumer.Start(ctx); err != nil {
			a.logger.Error("payment consumer stopped", slog.String("error", err.Error()))
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.paymentConsumer.Close(); err != nil {
		a.logger.Error("payment consumer close error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.logger.Error("mongo disconnect error", slog.String("error", err.Error()))
	}

	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
