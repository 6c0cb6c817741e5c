package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medirec-service/internal/app/config"
	"medirec-service/internal/app/delivery/http/middlewares"
	"medirec-service/internal/app/delivery/http/routers"
	"medirec-service/internal/app/drivers/database"
	"medirec-service/internal/app/drivers/logger"
	"medirec-service/internal/app/drivers/messaging"
	"medirec-service/internal/app/drivers/storage"
	"medirec-service/internal/app/services/core/healthcheck"
	corePatients "medirec-service/internal/app/services/core/patients"
	recordsHealth "medirec-service/internal/app/services/records/health"
	recordsPatients "medirec-service/internal/app/services/records/patients"
	"medirec-service/internal/app/services/shared/archive"
	"medirec-service/internal/app/services/shared/events"
	"medirec-service/internal/app/services/shared/redis"
	"medirec-service/internal/app/services/shared/transport"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logrusLogger := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrusLogger.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()

	bootstrapTheApp(bootstrap{
		Router:             chiRouter,
		RedisClient:        redisClient,
		RabbitMQConnection: rabbitMQConnection,
		MinioClient:        minioClient,
		Logger:             zapLogger,
		LogrusLogger:       logrusLogger,
		DriverConfig:       driverConfig,
		InternalConfig:     internalConfig,
		PollerContext:      pollerCtx,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrusLogger.Fatalf("Server failed to start: %v", err)
		}
	}()
	zapLogger.Info("server started", zap.String("address", internalConfig.App.Port))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrusLogger.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	stopPoller()
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrusLogger.Fatalf("Server forced to shutdown: %v", err)
	}

	logrusLogger.Println("Server exiting")
}

type bootstrap struct {
	Router             *chi.Mux
	RedisClient        *goredis.Client
	RabbitMQConnection *amqp091.Connection
	MinioClient        *minio.Client
	Logger             *zap.Logger
	LogrusLogger       *logrus.Logger
	DriverConfig       *config.DriverConfig
	InternalConfig     *config.InternalConfig
	PollerContext      context.Context
}

func bootstrapTheApp(b bootstrap) {
	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(b.RedisClient)
	eventPublisher, err := events.NewRabbitMQPublisher(b.RabbitMQConnection)
	if err != nil {
		b.LogrusLogger.Fatalf("Failed to open RabbitMQ channel: %v", err)
	}
	archiveStorage := archive.NewMinioArchive(b.MinioClient, b.DriverConfig.Minio.BucketName)

	// Records backend transport
	requestTimeout := time.Duration(b.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	httpSender := transport.NewHTTPSender(b.Logger, requestTimeout)
	retryingTransport := transport.NewRetryingTransport(httpSender, b.InternalConfig.Records.MaxRetries, b.Logger)

	// Records backend services
	healthService := recordsHealth.NewRecordsHealthService(
		b.InternalConfig.Records.BaseUrl,
		httpSender,
		redisRepository,
		time.Duration(b.InternalConfig.Records.HealthCacheTTLInSeconds)*time.Second,
		time.Duration(b.InternalConfig.Records.HealthPollIntervalInSeconds)*time.Second,
		b.Logger,
	)
	healthService.StartPoller(b.PollerContext)

	patientRecordsClient := recordsPatients.NewPatientRecordsClient(
		b.InternalConfig.Records.BaseUrl,
		b.InternalConfig.Records.APIToken,
		retryingTransport,
		b.Logger,
	)

	// Patient editor
	patientUsecase := corePatients.NewPatientUsecase(
		patientRecordsClient,
		healthService,
		redisRepository,
		eventPublisher,
		archiveStorage,
		b.InternalConfig,
		b.Logger,
	)
	patientController := corePatients.NewPatientController(b.Logger, patientUsecase, b.InternalConfig.App.RequestTimeoutInSeconds)
	healthController := healthcheck.NewHealthController(b.Logger, healthService)

	// Middlewares and routes
	appMiddlewares := middlewares.NewMiddlewares(b.Logger, b.InternalConfig)
	routers.SetupRoutes(b.Router, b.InternalConfig, appMiddlewares, patientController, healthController)
}
