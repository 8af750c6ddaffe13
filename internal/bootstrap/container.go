package bootstrap

import (
	"context"
	"log"

	"persona-chat-be/internal/config"
	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/controller"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/pkg/mailer"
	"persona-chat-be/internal/pkg/sms"
	"persona-chat-be/internal/repository/memory"
	"persona-chat-be/internal/repository/unitofwork"
	"persona-chat-be/internal/service"
	"persona-chat-be/internal/websocket"
	"persona-chat-be/pkg/convo/apply"
	"persona-chat-be/pkg/convo/execute"
	"persona-chat-be/pkg/convo/generate"
	"persona-chat-be/pkg/convo/pipeline"
	"persona-chat-be/pkg/convo/retrieve"
	"persona-chat-be/pkg/convo/signal"
	"persona-chat-be/pkg/embedding"
	"persona-chat-be/pkg/llm/factory"
	"persona-chat-be/pkg/signedurl"

	pktNats "persona-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	ResourceController controller.IResourceController
	ReportController   controller.IReportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Seeding / maintenance
	KnowledgeService service.IKnowledgeService

	// WebSockets
	AlertHandler *websocket.AlertHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
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
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	var rdb *redis.Client
	var sessionStore memory.SessionStore
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis, falling back to in-process sessions: %v", err)
			rdb = nil
		}
	}
	if rdb != nil {
		sessionStore = memory.NewRedisSessionRepository(rdb)
	} else {
		sessionStore = memory.NewSessionRepository()
	}

	// WebSocket Hub for owner alerts
	wsLogger := logger.NewIsolatedLogger("logs/alerts.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Side-effect channels
	linkIssuer := signedurl.NewIssuer(cfg.Resource.SigningSecret, cfg.App.BaseURL, cfg.Resource.LinkTTL)

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.OwnerEmail,
		)
	} else {
		log.Printf("[WARN] SMTP not configured, resource email delivery disabled")
	}

	var smsService sms.ISmsService
	if cfg.Sms.WebhookURL != "" {
		smsService = sms.NewSmsService(cfg.Sms.WebhookURL, cfg.Sms.APIKey, cfg.Sms.OwnerPhone)
	}

	messageService := service.NewMessageService(uowFactory)
	reportService := service.NewReportService(uowFactory)

	// 6. Turn pipeline
	// Reads go straight through the shared connection; no transaction needed.
	chunkRepo := uowFactory.NewUnitOfWork(context.Background()).KnowledgeChunkRepository()
	searcher := retrieve.NewSearcher(embeddingProvider, chunkRepo, sysLogger)

	notifiers := buildNotifiers(emailService, smsService, wsHub)

	var eventSink execute.EventSink
	if natsPub != nil {
		eventSink = pktNats.NewEventSink(natsPub)
	}

	turnPipeline := pipeline.NewPipeline(
		retrieve.NewAdapter(searcher, cfg.Chat.RetrievalTopK, sysLogger),
		generate.NewGenerator(llmProvider, cfg.Chat.FallbackThreshold, sysLogger),
		signal.NewDetector(cfg.Chat.SignalKindsRequired),
		apply.NewApplier(searcher, reportService, linkIssuer, sysLogger),
		execute.NewExecutor(emailSender(emailService), notifiers, messageService, linkIssuer, eventSink, sysLogger),
		sysLogger,
	)

	// 7. Services
	chatService := service.NewChatService(uowFactory, sessionStore, turnPipeline, pubSub, cfg.Chat.HistoryWindow, sysLogger)
	consumerService := service.NewConsumerService(pubSub, constant.TopicTurnCompleted, uowFactory, natsPub)
	knowledgeService := service.NewKnowledgeService(uowFactory, embeddingProvider, sysLogger)

	// 8. Controllers
	resourcePaths := map[string]string{
		"resume": cfg.Resource.ResumePath,
	}

	return &Container{
		ChatController:     controller.NewChatController(chatService),
		ResourceController: controller.NewResourceController(linkIssuer, resourcePaths),
		ReportController:   controller.NewReportController(reportService),
		ConsumerService:    consumerService,
		KnowledgeService:   knowledgeService,
		AlertHandler:       websocket.NewAlertHandler(wsHub),
		WebSocketHub:       wsHub,
	}
}

// buildNotifiers assembles the owner-alert fan-out from whichever channels
// are configured. The hub is always present; email and SMS join when set up.
func buildNotifiers(email mailer.IEmailService, smsSvc sms.ISmsService, hub *websocket.Hub) []execute.OwnerNotifier {
	notifiers := []execute.OwnerNotifier{hub}
	if email != nil {
		notifiers = append(notifiers, email)
	}
	if smsSvc != nil {
		notifiers = append(notifiers, smsSvc)
	}
	return notifiers
}

// emailSender narrows the mail service to the executor's resource-delivery
// contract, keeping the nil check in one place.
func emailSender(email mailer.IEmailService) execute.ResourceSender {
	if email == nil {
		return nil
	}
	return email
}
