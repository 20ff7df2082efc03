package main

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/transcribeservice"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mengeshaster/transcriber-twilio/application/services"
	"github.com/mengeshaster/transcriber-twilio/config"
	"github.com/mengeshaster/transcriber-twilio/infrastructure/adapters"
	"github.com/mengeshaster/transcriber-twilio/infrastructure/gin_interface/controllers"
	"github.com/mengeshaster/transcriber-twilio/middleware"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"net/http"
	"os"
)

func main() {
	// Optional .env for local runs; deployed slots get real env vars.
	_ = godotenv.Load()

	storageConfig, err := config.GetStorageConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get storage config")
	}

	transcribeConfig, err := config.GetTranscribeConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get transcribe config")
	}

	twilioConfig, err := config.GetTwilioConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get twilio config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(32, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	s3Client := s3.New(sess)
	transcribeClient := transcribeservice.New(sess)

	artifactStore := adapters.NewS3ArtifactStore(s3Client, zeroLogger)
	contentFetcher := adapters.NewContentFetcher(zeroLogger)
	jobSubmitter := adapters.NewTranscribeJobSubmitter(transcribeClient, storageConfig, transcribeConfig)
	resultReader := adapters.NewTranscribeResultReader(artifactStore, storageConfig, zeroLogger)
	twimlResponder := adapters.NewTwimlResponder()

	orchestrator := services.NewCallEventOrchestrator(
		zeroLogger,
		artifactStore,
		contentFetcher,
		jobSubmitter,
		resultReader,
		twimlResponder,
		workerPool,
		storageConfig,
		twilioConfig,
	)

	listingReader := services.NewCallListingReader(zeroLogger, artifactStore, resultReader, storageConfig)

	webhookController := controllers.NewCallWebhookController(zeroLogger, orchestrator)
	listingController := controllers.NewCallListingController(zeroLogger, listingReader)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.RequestLogger(zeroLogger))

	if twilioConfig.AuthToken != "" {
		authHandler := middleware.NewWebhookAuthHandler(twilioConfig, zeroLogger)
		router.Use(authHandler.AuthMiddleware())
	} else {
		zeroLogger.Warn("TWILIO_AUTH_TOKEN not set, webhook signature validation disabled")
	}

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	webhookController.RegisterRoutes(router)
	listingController.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
