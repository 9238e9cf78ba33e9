package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"ai-assistant-be/internal/config"
	"ai-assistant-be/internal/controller"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/pkg/mailer"
	"ai-assistant-be/internal/repository/implementation"
	"ai-assistant-be/internal/repository/memory"
	redisrepo "ai-assistant-be/internal/repository/redis"
	"ai-assistant-be/internal/service"
	"ai-assistant-be/pkg/dataset"
	"ai-assistant-be/pkg/emailflow"
	"ai-assistant-be/pkg/intent"
	"ai-assistant-be/pkg/llm/factory"
	"ai-assistant-be/pkg/vision"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := initLLMLogger()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Sender,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewCompletionProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.ChatModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s / %s)", cfg.Ai.LLMProvider, cfg.Ai.ChatModel, cfg.Ai.VisionModel)

	// 4. Durable Analysis Cache Backend
	var cacheStore vision.Store
	if cfg.Cache.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		cacheStore = redisrepo.NewAnalysisCacheRepository(rdb)
		log.Printf("[INFO] Using Analysis Cache Backend: REDIS")
	} else {
		cacheStore = implementation.NewAnalysisCacheRepository(db)
		log.Printf("[INFO] Using Analysis Cache Backend: POSTGRES")
	}

	analysisCache, err := vision.NewCache(vision.MemoCapacity, cacheStore, llmLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize analysis cache: %v", err)
	}

	// 5. Domain Components
	sessionRepo := memory.NewSessionRepository()
	classifier := intent.NewClassifier(llmProvider, llmLogger)
	analyzer := vision.NewAnalyzer(llmProvider, analysisCache, cfg.Ai.VisionModel, llmLogger)
	insightGenerator := dataset.NewInsightGenerator(llmProvider, llmLogger)
	emailWorkflow := emailflow.NewWorkflow(llmProvider, emailService, llmLogger)

	// 6. Services
	eventRepo := implementation.NewSystemEventRepository(db)
	publisherService := service.NewPublisherService(cfg.Topics.SystemEvents, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.SystemEvents,
		eventRepo,
	)

	assistantService := service.NewAssistantService(
		sessionRepo,
		classifier,
		llmProvider,
		emailWorkflow,
		analyzer,
		insightGenerator,
		publisherService,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, cfg.App.UploadsDir),

		ConsumerService: consumerService,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
