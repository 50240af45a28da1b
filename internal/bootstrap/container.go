package bootstrap

import (
	"context"
	"log"

	"course-copilot-be/internal/config"
	"course-copilot-be/internal/controller"
	"course-copilot-be/internal/handler"
	"course-copilot-be/internal/pkg/logger"
	"course-copilot-be/internal/pkg/mailer"
	"course-copilot-be/internal/repository/adapter"
	"course-copilot-be/internal/repository/memory"
	redisrepo "course-copilot-be/internal/repository/redis"
	"course-copilot-be/internal/repository/unitofwork"
	"course-copilot-be/internal/service"
	"course-copilot-be/internal/websocket"
	"course-copilot-be/pkg/conversation"
	"course-copilot-be/pkg/dialog"
	"course-copilot-be/pkg/embedding"
	"course-copilot-be/pkg/extraction"
	"course-copilot-be/pkg/llm/factory"
	"course-copilot-be/pkg/moderation"
	"course-copilot-be/pkg/retrieval"
	"course-copilot-be/pkg/storage"
	"course-copilot-be/pkg/store"

	pkgNats "course-copilot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const indexingTopic = "document_indexing"

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	AuthController     controller.IAuthController
	CourseController   controller.ICourseController
	DocumentController controller.IDocumentController
	UpdateController   controller.IUpdateController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// S3 object storage for course material
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load AWS config: %v", err)
	}
	var s3Opts []func(*s3.Options)
	if cfg.Storage.Endpoint != "" {
		// MinIO in dev needs path-style addressing
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		})
	}
	s3Client := s3.NewFromConfig(awsCfg, s3Opts...)
	bucket, err := storage.NewBucket(s3Client, cfg.Storage.Bucket)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize storage bucket: %v", err)
	}

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session Storage
	var sessionStore store.SessionStore
	if cfg.Dialog.SessionStore == "redis" {
		sessionStore = redisrepo.NewSessionRepository(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionStore = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 5. Retrieval Pipeline
	extractors := extraction.NewRegistry()
	chunkStore := adapter.NewChunkStore(uowFactory)
	engine := retrieval.NewEngine(chunkStore, embeddingProvider, retrieval.Config{
		ChunkSize:      cfg.Retrieval.ChunkSize,
		ChunkOverlap:   cfg.Retrieval.ChunkOverlap,
		TopK:           cfg.Retrieval.TopK,
		ScoreThreshold: cfg.Retrieval.ScoreThreshold,
	})

	// 6. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, indexingTopic)
	courseService := service.NewCourseService(uowFactory)
	documentService := service.NewDocumentService(uowFactory, bucket, extractors, publisherService, sysLogger)
	updateService := service.NewUpdateService(uowFactory, llmProvider, natsPub, sysLogger)
	indexerService := service.NewIndexerService(
		pubSub,
		indexingTopic,
		uowFactory,
		bucket,
		extractors,
		engine,
		natsPub,
		emailService,
		cfg.SMTP.ReportEmail,
		cfg.Retrieval.MaxAttempts,
		sysLogger,
	)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret)
	flagReportService := service.NewFlagReportService(uowFactory, emailService, cfg.SMTP.ReportEmail, sysLogger)

	// 8. Dialog Core
	gate := moderation.NewGate(moderation.NewLLMClassifier(llmProvider), cfg.Moderation.Timeout, sysLogger)
	resolver := dialog.NewLLMCourseResolver(courseService, llmProvider, sysLogger)
	machine := conversation.NewMachine(conversation.Config{
		IdleTimeout: cfg.Dialog.IdleTimeout,
		MenuKeyword: cfg.Dialog.MenuKeyword,
	}, resolver)
	answerer := dialog.NewLLMAnswerer(llmProvider)

	// A nil typed pointer must not reach the interface fields.
	var eventPublisher dialog.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	orchestrator := dialog.NewOrchestrator(dialog.OrchestratorDeps{
		Sessions:  sessionStore,
		Machine:   machine,
		Courses:   resolver,
		Gate:      gate,
		Searcher:  engine,
		Documents: documentService,
		Updates:   updateService,
		Answerer:  answerer,
		Publisher: eventPublisher,
		Reporter:  flagReportService,
		Logger:    sysLogger,
	})
	dialogService := service.NewDialogService(orchestrator)

	// 9. Staff Operations Feed
	if natsSub != nil {
		notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 10. Controllers
	return &Container{
		ChatController:     controller.NewChatController(dialogService),
		AuthController:     controller.NewAuthController(authService),
		CourseController:   controller.NewCourseController(courseService),
		DocumentController: controller.NewDocumentController(documentService),
		UpdateController:   controller.NewUpdateController(updateService),

		IndexerService: indexerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
