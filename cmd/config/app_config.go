package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"Food-Tracker/domain"
	"Food-Tracker/internal/api/handlers"
	"Food-Tracker/internal/api/routes"
	"Food-Tracker/internal/middleware"
	"Food-Tracker/internal/utils"
	"Food-Tracker/internal/utils/cache"
	"Food-Tracker/internal/utils/logger"
	"Food-Tracker/internal/utils/storage"
	"Food-Tracker/pkg/assistant"
	"Food-Tracker/pkg/food"
	"Food-Tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

const (
	defaultMaxItemsPerUser = 50
	defaultGeminiModel     = "gemini-1.5-flash"
	TokenTTL               = 24 * time.Hour
)

// NewApp wires the HTTP application. The returned func releases the clients
// opened here and must be called on shutdown.
func NewApp(ctx context.Context, db *gorm.DB, log *logger.Logger) (*fiber.App, func(), error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: domain.MaxAudioSize + 1<<20,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOW_ORIGINS"))
	validator := utils.Validate

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, cleanup, fmt.Errorf("creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, cleanup, fmt.Errorf("opening access log: %w", err)
	}
	closers = append(closers, func() { _ = file.Close() })
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Rome",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	opts, optClosers := assistantOptions(ctx, log)
	closers = append(closers, optClosers...)

	// Repository
	foodRepository := food.NewFoodRepository(db)
	voiceSessionRepository := assistant.NewVoiceSessionRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), TokenTTL)
	foodService := food.NewFoodService(
		foodRepository,
		utils.GetConfigInt("MAX_ITEMS_PER_USER", defaultMaxItemsPerUser),
		log,
	)
	assistantService := assistant.NewAssistantService(foodService, voiceSessionRepository, opts, log)

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	voiceHandler := handlers.NewVoiceHandler(assistantService, validator)

	// routes
	routesConfig := routes.Config{
		App:          app,
		FoodHandler:  foodHandler,
		VoiceHandler: voiceHandler,
		Middleware:   middlewares,
		JWTService:   jwtService,
	}
	routesConfig.Setup()
	return app, cleanup, nil
}

// assistantOptions enables each optional voice collaborator whose settings
// are present. A collaborator that fails to start is logged and left off.
func assistantOptions(ctx context.Context, log *logger.Logger) (assistant.Options, []func()) {
	var (
		opts    assistant.Options
		closers []func()
	)

	if utils.GetConfigBool("SPEECH_ENABLED") {
		transcriber, err := assistant.NewSpeechTranscriber(ctx, utils.GetConfig("GOOGLE_SPEECH_LANGUAGE"), log)
		if err != nil {
			log.Warn("speech transcription disabled", "error", err)
		} else {
			opts.Transcriber = transcriber
			closers = append(closers, func() { _ = transcriber.Close() })
		}
	}

	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		rdb := cache.NewRedis(addr, utils.GetConfig("REDIS_PASSWORD"), utils.GetConfigInt("REDIS_DB", 0))
		if err := rdb.Ping(ctx); err != nil {
			log.Warn("transcript cache disabled", "error", err)
			_ = rdb.Close()
		} else {
			opts.Cache = assistant.NewTranscriptCache(rdb, assistant.DefaultTranscriptTTL)
			closers = append(closers, func() { _ = rdb.Close() })
		}
	}

	if apiKey := utils.GetConfig("GEMINI_API_KEY"); apiKey != "" {
		model := utils.GetConfig("GEMINI_MODEL")
		if model == "" {
			model = defaultGeminiModel
		}
		opts.Extractor = assistant.NewGeminiExtractor(assistant.GeminiConfig{
			APIKey:  apiKey,
			Model:   model,
			BaseURL: utils.GetConfig("GEMINI_BASE_URL"),
		})
	}

	if utils.GetConfig("AWS_S3_BUCKET") != "" {
		s3, err := storage.NewAwsS3(ctx)
		if err != nil {
			log.Warn("audio archive disabled", "error", err)
		} else {
			opts.Archive = s3
		}
	}

	return opts, closers
}
