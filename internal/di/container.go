package di

import (
	"github.com/servibook/servibook/internal/cache"
	"github.com/servibook/servibook/internal/database"
	"github.com/servibook/servibook/internal/gateway"
	"github.com/servibook/servibook/internal/handler"
	"github.com/servibook/servibook/internal/repository"
	"github.com/servibook/servibook/internal/service"
)

// Container holds all wired dependencies of the application
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *cache.Client

	// Repositories
	UserRepo         repository.UserRepository
	ServiceRepo      repository.ServiceRepository
	BookingRepo      repository.BookingRepository
	PaymentRepo      repository.PaymentRepository
	FeedbackRepo     repository.FeedbackRepository
	NotificationRepo repository.NotificationRepository

	// Services
	AuthService         service.AuthService
	UserService         service.UserService
	CatalogService      service.CatalogService
	BookingService      service.BookingService
	PaymentService      service.PaymentService
	FeedbackService     service.FeedbackService
	NotificationService service.NotificationService

	// Handlers
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	ServiceHandler      *handler.ServiceHandler
	BookingHandler      *handler.BookingHandler
	PaymentHandler      *handler.PaymentHandler
	WebhookHandler      *handler.WebhookHandler
	FeedbackHandler     *handler.FeedbackHandler
	NotificationHandler *handler.NotificationHandler
	HealthHandler       *handler.HealthHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *cache.Client
	TokenBlacklist cache.TokenBlacklist
	PaymentGateway gateway.PaymentGateway
	AuthConfig     *service.AuthServiceConfig
}

// NewContainer wires repositories, services and handlers together
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	pool := cfg.DB.Pool()
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.ServiceRepo = repository.NewPostgresServiceRepository(pool)
	c.BookingRepo = repository.NewPostgresBookingRepository(pool)
	c.PaymentRepo = repository.NewPostgresPaymentRepository(pool)
	c.FeedbackRepo = repository.NewPostgresFeedbackRepository(pool)
	c.NotificationRepo = repository.NewPostgresNotificationRepository(pool)

	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
	c.AuthService = service.NewAuthService(c.UserRepo, cfg.TokenBlacklist, cfg.AuthConfig)
	c.UserService = service.NewUserService(c.UserRepo)
	c.CatalogService = service.NewCatalogService(c.ServiceRepo)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.UserRepo, c.ServiceRepo, c.NotificationService)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.BookingRepo, c.UserRepo, c.ServiceRepo, cfg.PaymentGateway, c.NotificationService)
	c.FeedbackService = service.NewFeedbackService(c.FeedbackRepo, c.ServiceRepo)

	c.AuthHandler = handler.NewAuthHandler(c.AuthService, c.UserService)
	c.UserHandler = handler.NewUserHandler(c.UserService)
	c.ServiceHandler = handler.NewServiceHandler(c.CatalogService)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)
	c.PaymentHandler = handler.NewPaymentHandler(c.PaymentService)
	c.WebhookHandler = handler.NewWebhookHandler(c.PaymentService)
	c.FeedbackHandler = handler.NewFeedbackHandler(c.FeedbackService)
	c.NotificationHandler = handler.NewNotificationHandler(c.NotificationService)
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)

	return c
}
