package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/mockmate/internal/config"
	"github.com/fadilmartias/mockmate/internal/domain/fiber/handler"
	"github.com/fadilmartias/mockmate/internal/metrics"
	"github.com/fadilmartias/mockmate/internal/middleware"
	"github.com/fadilmartias/mockmate/internal/repository"
	"github.com/fadilmartias/mockmate/internal/service"
	"github.com/fadilmartias/mockmate/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	appConfig := config.LoadAppConfig()
	dbConfig := config.LoadDBConfig()
	authConfig := config.LoadAuthConfig()

	db, err := connectDB()
	if err != nil {
		return err
	}
	if dbConfig.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	questionLLM, feedbackLLM, err := newLLMs(ctx, m)
	if err != nil {
		return err
	}

	if authConfig.JWTSecret == "" {
		log.Warn("AUTH_JWT_SECRET not set, every protected request will be redirected to sign-in")
	}
	gate := middleware.NewAuthGate(
		middleware.NewJWTVerifier(authConfig.JWTSecret),
		authConfig.SessionCookie,
		authConfig.SignInURL,
	)

	interviewUC := usecase.NewInterviewUsecase(repository.NewInterviewRepository(db), questionLLM, m)
	feedbackUC := usecase.NewFeedbackUsecase(repository.NewFeedbackRepository(db), feedbackLLM, m)

	app := newApp(appConfig, db)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")
	handler.NewGenerateHandler(interviewUC).RegisterRoutes(api)
	handler.NewInterviewHandler(interviewUC, feedbackUC).RegisterRoutes(api, gate.Require())

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server running on %s", appConfig.Port)
		errCh <- app.Listen(appConfig.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

func newApp(appConfig *config.AppConfig, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(c.UserContext()) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	return app
}

// newLLMs builds the question and feedback generators from the configured
// providers. A Gemini client is shared when both roles use it.
func newLLMs(ctx context.Context, m *metrics.Metrics) (service.TextGenerator, service.StructuredGenerator, error) {
	llmConfig := config.LoadLLMConfig()

	var gemini *service.GeminiService
	getGemini := func() (*service.GeminiService, error) {
		if gemini != nil {
			return gemini, nil
		}
		g, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), llmConfig.RequestTimeout, m)
		if err != nil {
			return nil, err
		}
		gemini = g
		return gemini, nil
	}

	var question service.TextGenerator
	switch llmConfig.QuestionProvider {
	case config.ProviderGemini:
		g, err := getGemini()
		if err != nil {
			return nil, nil, err
		}
		question = g
	case config.ProviderOpenRouter:
		question = service.NewOpenRouterService(config.LoadOpenRouterConfig(), llmConfig.RequestTimeout, m)
	case config.ProviderOpenAI:
		cfg := config.LoadOpenAIConfig()
		question = service.NewOpenAIService(cfg, cfg.QuestionModel, llmConfig.RequestTimeout, m)
	default:
		return nil, nil, fmt.Errorf("unknown QUESTION_PROVIDER %q", llmConfig.QuestionProvider)
	}

	var feedback service.StructuredGenerator
	switch llmConfig.FeedbackProvider {
	case config.ProviderGemini:
		g, err := getGemini()
		if err != nil {
			return nil, nil, err
		}
		feedback = g
	case config.ProviderOpenRouter:
		feedback = service.NewOpenRouterService(config.LoadOpenRouterConfig(), llmConfig.RequestTimeout, m)
	case config.ProviderOpenAI:
		cfg := config.LoadOpenAIConfig()
		feedback = service.NewOpenAIService(cfg, cfg.FeedbackModel, llmConfig.RequestTimeout, m)
	default:
		return nil, nil, fmt.Errorf("unknown FEEDBACK_PROVIDER %q", llmConfig.FeedbackProvider)
	}

	log.WithFields(log.Fields{
		"questionProvider": llmConfig.QuestionProvider,
		"feedbackProvider": llmConfig.FeedbackProvider,
	}).Info("LLM providers configured")
	return question, feedback, nil
}
