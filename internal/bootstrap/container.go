package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"realtime-chat-be/internal/config"
	"realtime-chat-be/internal/controller"
	"realtime-chat-be/internal/handler"
	"realtime-chat-be/internal/pkg/logger"
	"realtime-chat-be/internal/pkg/mailer"
	"realtime-chat-be/internal/pkg/ratelimit"
	"realtime-chat-be/internal/repository/unitofwork"
	"realtime-chat-be/internal/service"
	internalWS "realtime-chat-be/internal/websocket"
	pktNats "realtime-chat-be/pkg/nats"
)

// chatEventsTopic is the in-process bus topic the publisher and consumer meet on.
const chatEventsTopic = "chat.events"

type Container struct {
	// Controllers
	RoomController    controller.IRoomController
	MessageController controller.IMessageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Realtime feed
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *internalWS.Hub

	// Shared logger for server middleware
	Logger logger.ILogger
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
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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
		log.Printf("[WARN] Failed to connect to Redis: %v. Running single-node fan-out", err)
		rdb = nil
	}

	// 3. Services
	publisherService := service.NewPublisherService(chatEventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		chatEventsTopic,
		uowFactory,
		natsPub,
		emailService,
	)

	chatService := service.NewChatService(uowFactory, publisherService, cfg.Chat)
	presenceService := service.NewPresenceService(uowFactory, publisherService)

	// 4. Realtime feed
	limiter := ratelimit.NewLimiter(map[string]ratelimit.Rule{
		internalWS.EventSendMessage:  ratelimit.Rule(cfg.Rate.SendMessage),
		internalWS.EventTyping:       ratelimit.Rule(cfg.Rate.Typing),
		internalWS.EventJoinRoom:     ratelimit.Rule(cfg.Rate.JoinRoom),
		internalWS.EventLeaveRoom:    ratelimit.Rule(cfg.Rate.LeaveRoom),
		internalWS.EventMessageRead:  ratelimit.Rule(cfg.Rate.MessageRead),
		internalWS.EventUpdateStatus: ratelimit.Rule(cfg.Rate.UpdateStatus),
	})

	wsLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	wsHub := internalWS.NewHub(rdb, wsLogger)
	go wsHub.Run()

	wsRouter := internalWS.NewRouter(wsHub, chatService, presenceService, limiter, wsLogger)
	chatStreamHandler := handler.NewChatStreamHandler(wsHub, wsRouter, wsLogger)

	// 5. Controllers
	return &Container{
		RoomController:    controller.NewRoomController(chatService),
		MessageController: controller.NewMessageController(chatService),

		ConsumerService: consumerService,

		ChatStreamHandler: chatStreamHandler,
		WebSocketHub:      wsHub,

		Logger: sysLogger,
	}
}
