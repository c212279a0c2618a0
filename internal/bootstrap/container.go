package bootstrap

import (
	"context"
	"log"
	"time"

	"doc-engine-be/internal/config"
	"doc-engine-be/internal/controller"
	"doc-engine-be/internal/handler"
	"doc-engine-be/internal/pkg/logger"
	"doc-engine-be/internal/repository/memory"
	"doc-engine-be/internal/repository/unitofwork"
	"doc-engine-be/internal/service"
	"doc-engine-be/internal/websocket"

	pkgNats "doc-engine-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Streaming
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	renderCache := memory.NewRenderCacheRepository(time.Duration(cfg.Events.RenderCacheTTLMin) * time.Minute)

	publisherService := service.NewPublisherService(cfg.Events.DocumentUpdatedTopic, pubSub)

	documentService, err := service.NewDocumentService(
		uowFactory,
		publisherService,
		natsPub,
		renderCache,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize document service: %v", err)
	}

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.DocumentUpdatedTopic,
		uowFactory,
		documentService,
		renderCache,
	)

	// 3.5 Streaming Infrastructure
	streamService := service.NewStreamService(natsSub, wsHub, sysLogger) // Hub implements StreamDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go streamService.Start()
	}

	// Handler
	streamHandler := handler.NewStreamHandler(documentService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		StreamHandler:      streamHandler,
		WebSocketHub:       wsHub,
		DocumentController: controller.NewDocumentController(documentService),

		ConsumerService: consumerService,
	}
}
