package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/lignum-storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/lignum-storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/lignum-storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/lignum-storefront/internal/infrastructure/minio"
	"github.com/DRSN-tech/lignum-storefront/internal/infrastructure/payment"
	s3Repo "github.com/DRSN-tech/lignum-storefront/internal/repository/minio"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/redis"
	redisConv "github.com/DRSN-tech/lignum-storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/clients"
	"github.com/DRSN-tech/lignum-storefront/pkg/closer"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/DRSN-tech/lignum-storefront/pkg/postgres"
	"github.com/DRSN-tech/lignum-storefront/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

type App struct {
	cfg    *config.Config
	logger logger.Logger

	httpSrv      *v1Http.Server
	grpcSrv      *v1Grpc.GRPCServer
	outboxWorker *kafka.OutboxWorker
	imagesInfra  *minioInfra.MinioInfrastructure
	closer       *closer.Closer

	// отменяется при остановке, прерывает фоновые задачи (очистка MinIO, outbox)
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// NewApp поднимает все зависимости: PostgreSQL (с миграциями), Redis, MinIO, Kafka,
// клиент платёжного шлюза, и собирает из них use case'ы и серверы.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}
	a.bgCtx, a.bgCancel = context.WithCancel(context.Background())

	if err := a.init(); err != nil {
		a.bgCancel()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := a.closer.Close(ctx); closeErr != nil {
			log.Warnf("close after failed init: %v", closeErr)
		}
		return nil, err
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := initPGDB(ctx, a.logger, a.cfg)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	if err := redisClient.Ping(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(startupTimeout); err != nil {
		// топик мог быть создан администратором, продолжаем без него
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })

	gateway, err := payment.NewGateway(a.cfg.Payment, a.logger)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("payment gateway", func(context.Context) error { return gateway.Close() })

	// Репозитории
	pgConv := pgdbConv.New()
	productRepo := pgdb.NewProductRepo(db.Pool, pgConv.Product())
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgConv.Category())
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgConv.Order())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgConv.OutboxEvent(), a.cfg.Kafka.OutboxStaleAfter)
	settingsRepo := pgdb.NewSettingsRepo(db.Pool, pgConv.Settings())

	cacheRepo := redis.NewCacheRepo(redisClient.Client, redisConv.NewProductConverter(), a.cfg.Redis, a.logger)
	cartRepo := redis.NewCartRepo(redisClient.Client, redisConv.NewCartConverter(), a.cfg.Redis, a.logger)
	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio.BucketName)

	// Инфраструктура
	a.imagesInfra = minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio, a.logger, a.bgCtx)
	a.outboxWorker = kafka.NewOutboxWorker(
		outboxRepo,
		a.logger,
		producer,
		postgres.DSN(a.cfg.Db),
		a.cfg.Kafka.OutboxBatchSize,
		a.cfg.Kafka.OutboxPollInterval,
	)
	txManager := tr.NewManager(db.Pool)

	// Use case'ы
	defaults := domain.StoreSettings{
		Currency:                    a.cfg.Pricing.Currency,
		B2BPartialPaymentPercentage: a.cfg.Pricing.B2BPartialPaymentPercent,
	}
	settingsUC := usecase.NewSettingsUC(settingsRepo, defaults, a.logger)
	catalogUC := usecase.NewCatalogUC(productRepo, categoryRepo, txManager, a.imagesInfra, a.logger, cacheRepo)
	cartUC := usecase.NewCartUC(cartRepo, catalogUC, settingsUC, a.logger)
	checkoutUC := usecase.NewCheckoutUC(
		cartRepo,
		orderRepo,
		outboxRepo,
		kafka.NewProtoEventEncoder(),
		gateway,
		settingsUC,
		txManager,
		a.logger,
	)

	// Серверы
	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices(catalogUC, cartUC)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger, a.cfg.Http.SwaggerURL).Init(catalogUC, cartUC, checkoutUC, settingsUC)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	return nil
}

// Run запускает серверы и outbox-воркер и блокируется до сигнала или ошибки сервера.
func (a *App) Run() error {
	a.outboxWorker.Start(a.bgCtx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.shutdown()
	return appErr
}

func (a *App) shutdown() {
	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		a.logger.Errorf(err, "gRPC server shutdown error")
	}

	a.outboxWorker.Stop()

	if err := a.imagesInfra.WaitForCleanup(shutdownCtx); err != nil {
		a.logger.Warnf("MinIO cleanup did not finish before shutdown, some temporary objects may remain: %v", err)
	} else {
		a.logger.Infof("MinIO cleanup completed")
	}
	a.bgCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("close resources: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(ctx); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
