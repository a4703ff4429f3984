package bootstrap

import (
	"context"
	"log"
	"time"

	"mindwell-be/internal/config"
	"mindwell-be/internal/constant"
	"mindwell-be/internal/controller"
	"mindwell-be/internal/handler"
	"mindwell-be/internal/pkg/logger"
	"mindwell-be/internal/pkg/mailer"
	"mindwell-be/internal/repository/implementation"
	"mindwell-be/internal/repository/memory"
	"mindwell-be/internal/repository/unitofwork"
	"mindwell-be/internal/service"
	"mindwell-be/internal/websocket"
	"mindwell-be/pkg/assistant/remote"

	pktNats "mindwell-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	OAuthController   controller.IOAuthController
	UserController    controller.IUserController
	ChatbotController controller.IChatbotController
	ForumController   controller.IForumController

	// Background services, run by main.go
	ConsumerService service.IConsumerService

	// WebSockets & notifications
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(&cfg.SMTP)

	// In-process queue for the content safety scanner
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Remote assistant provider
	assistantProvider := remote.NewRemoteProvider(
		cfg.Assistant.BaseURL,
		cfg.Assistant.APIKey,
		time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second,
	)

	turnRegistry := memory.NewTurnRegistry()

	// NATS event bus
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis backs cross-instance WebSocket fan-out
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

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Services
	publisherService := service.NewPublisherService(pubSub, constant.PostScanTopicName)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.PostScanTopicName,
		uowFactory,
		natsPub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, cfg, sysLogger)
	userService := service.NewUserService(uowFactory)

	chatbotService := service.NewChatbotService(
		uowFactory,
		assistantProvider,
		turnRegistry,
		sysLogger,
	)

	forumService := service.NewForumService(uowFactory, publisherService, natsPub, sysLogger)

	// Notification domain
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		OAuthController:   controller.NewOAuthController(oauthService, cfg),
		UserController:    controller.NewUserController(userService),
		ChatbotController: controller.NewChatbotController(chatbotService),
		ForumController:   controller.NewForumController(forumService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
