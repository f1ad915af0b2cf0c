package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docmanager-api/config"
	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/application/services"
	"docmanager-api/internal/infrastructure/db/postgres"
	"docmanager-api/internal/infrastructure/db/postgres/document"
	"docmanager-api/internal/infrastructure/db/postgres/user"
	"docmanager-api/internal/infrastructure/jwt"
	"docmanager-api/internal/infrastructure/metrics"
	"docmanager-api/internal/infrastructure/mq"
	"docmanager-api/internal/infrastructure/s3"
	"docmanager-api/internal/interface/api/rest"
	"docmanager-api/internal/interface/api/rest/middleware"
	"docmanager-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	storage    ports.ObjectStorage
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	events     ports.EventPublisher
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
	reconciler *services.BlobReconciler
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	envErr := godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// logger
	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	if envErr != nil {
		logger.Warn("no .env file loaded, using process environment", zap.Error(envErr))
	}
	if err = cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn, cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err = postgres.Migrate(ctx, logger, dbPool); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	// s3
	s3Client, err := s3.New(ctx, logger, cfg.S3)
	if err != nil {
		logger.Fatal("failed to connect to S3", zap.Error(err))
	}

	app := &App{
		logger:   logger,
		cfg:      cfg,
		db:       dbPool,
		storage:  s3Client,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
		events:   mq.Nop{},
	}

	if !cfg.MQ.Enabled {
		logger.Info("rabbitMQ disabled, document events are not published")
		return app, nil
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger, mCounter)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	app.mq = rbMQ
	app.events = rbMQ
	app.mqConsumer = rmqConsumer

	return app, nil
}

func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case "dev", "development", "local":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mqConsumer != nil {
		if err := a.mqConsumer.Close(); err != nil {
			a.logger.Warn("rabbitMQ consumer close", zap.Error(err))
		}
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	if a.reconciler != nil {
		g.Go(func() error {
			a.reconciler.Worker(ctx, a.cfg.App.OrphanSweepInterval)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers(ctx context.Context) error {
	// repos
	userRepo := user.NewRepository(a.db)
	documentRepo := document.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(userRepo, jwtService, a.cfg.App.SessionTTL, a.mCounter)
	userService := services.NewUserService(userRepo, a.mCounter, a.logger)
	documentService := services.NewDocumentService(documentRepo, userRepo, a.storage, a.events, a.mCounter, a.logger)
	uploadService := services.NewUploadService(
		a.storage, documentRepo, documentRepo, a.events, a.mCounter, a.logger, a.cfg.App.MaxUploadSize,
	)
	a.reconciler = services.NewBlobReconciler(documentRepo, a.storage, a.mCounter, a.logger)

	if err := userService.EnsureAdmin(ctx, a.cfg.App.AdminUsername, a.cfg.App.AdminName, a.cfg.App.AdminPassword); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	// controllers
	rest.NewAuthController(a.router, a.logger, userService, authService)
	rest.NewDocumentController(a.router, documentService, a.logger, jwtService)
	rest.NewUploadController(
		a.router, uploadService, a.logger, jwtService, a.cfg.App.MaxUploadSize, a.cfg.App.MaxUploadFiles,
	)
	rest.NewAdminController(a.router, documentService, userService, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))

	return nil
}

func (a *App) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := a.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) Logger() *zap.Logger { return a.logger }
