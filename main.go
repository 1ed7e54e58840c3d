package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servibook/servibook/internal/cache"
	"github.com/servibook/servibook/internal/config"
	"github.com/servibook/servibook/internal/database"
	"github.com/servibook/servibook/internal/di"
	"github.com/servibook/servibook/internal/gateway"
	"github.com/servibook/servibook/internal/logger"
	"github.com/servibook/servibook/internal/middleware"
	"github.com/servibook/servibook/internal/service"
	"github.com/servibook/servibook/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info(fmt.Sprintf("Starting %s...", cfg.App.Name))

	ctx := context.Background()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Warn(fmt.Sprintf("Telemetry initialization failed: %v", err))
	} else {
		defer telemetry.Shutdown(ctx)
	}

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info("Database connected")

	redisClient, err := cache.NewClient(ctx, &cache.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Redis connection failed: %v", err))
	}
	defer redisClient.Close()
	appLog.Info("Redis connected")

	var paymentGateway gateway.PaymentGateway
	if cfg.Paystack.SecretKey != "" {
		paymentGateway = gateway.NewPaystackGateway(&gateway.PaystackConfig{
			SecretKey:   cfg.Paystack.SecretKey,
			BaseURL:     cfg.Paystack.BaseURL,
			CallbackURL: cfg.Paystack.CallbackURL,
			Timeout:     cfg.Paystack.Timeout,
		})
		appLog.Info("Using Paystack payment gateway")
	} else {
		paymentGateway = gateway.NewMockGateway("mock-secret")
		appLog.Warn("PAYSTACK_SECRET_KEY not set, using mock payment gateway")
	}

	container := di.NewContainer(&di.ContainerConfig{
		DB:             db,
		Redis:          redisClient,
		TokenBlacklist: cache.NewRedisTokenBlacklist(redisClient),
		PaymentGateway: paymentGateway,
		AuthConfig: &service.AuthServiceConfig{
			JWTSecret:         cfg.JWT.Secret,
			AccessTokenExpiry: cfg.JWT.AccessTokenTTL,
		},
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(container)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		appLog.Info(fmt.Sprintf("Listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}

func setupRouter(c *di.Container) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.GET("/health", c.HealthHandler.Ready)
	router.GET("/health/live", c.HealthHandler.Live)
	router.GET("/health/ready", c.HealthHandler.Ready)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/logout", middleware.Auth(c.AuthService), c.AuthHandler.Logout)
		auth.GET("/me", middleware.Auth(c.AuthService), c.AuthHandler.Me)
	}

	authed := v1.Group("")
	authed.Use(middleware.Auth(c.AuthService))

	users := authed.Group("/users")
	{
		users.GET("", middleware.RequireAdmin(), c.UserHandler.List)
		users.GET("/:id", c.UserHandler.Get)
		users.PUT("/:id", c.UserHandler.Update)
		users.DELETE("/:id", middleware.RequireAdmin(), c.UserHandler.Delete)
	}

	v1.GET("/services", c.ServiceHandler.List)
	v1.GET("/services/:id", c.ServiceHandler.Get)
	v1.GET("/services/:id/feedback", c.FeedbackHandler.ListByService)
	services := authed.Group("/services")
	{
		services.POST("", middleware.RequireAdmin(), c.ServiceHandler.Create)
		services.PUT("/:id", middleware.RequireAdmin(), c.ServiceHandler.Update)
		services.DELETE("/:id", middleware.RequireAdmin(), c.ServiceHandler.Delete)
	}

	bookings := authed.Group("/bookings")
	{
		bookings.POST("", c.BookingHandler.Create)
		bookings.GET("", c.BookingHandler.List)
		bookings.GET("/:id", c.BookingHandler.Get)
		bookings.PATCH("/:id", middleware.RequireAdmin(), c.BookingHandler.Update)
		bookings.POST("/:id/approve", middleware.RequireAdmin(), c.BookingHandler.Approve)
		bookings.POST("/:id/reject", middleware.RequireAdmin(), c.BookingHandler.Reject)
		bookings.POST("/:id/price", middleware.RequireAdmin(), c.BookingHandler.AssignPrice)
		bookings.DELETE("/:id", middleware.RequireAdmin(), c.BookingHandler.Delete)
		bookings.GET("/:id/payment", c.PaymentHandler.GetByBooking)
	}

	payments := authed.Group("/payments")
	{
		payments.GET("", middleware.RequireAdmin(), c.PaymentHandler.List)
		payments.POST("/initialize", c.PaymentHandler.Initialize)
		payments.GET("/confirm", c.PaymentHandler.Confirm)
		payments.GET("/:id", c.PaymentHandler.Get)
	}

	feedback := authed.Group("/feedback")
	{
		feedback.POST("", c.FeedbackHandler.Create)
		feedback.GET("/:id", c.FeedbackHandler.Get)
		feedback.DELETE("/:id", middleware.RequireAdmin(), c.FeedbackHandler.Delete)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", c.NotificationHandler.List)
		notifications.POST("/:id/read", c.NotificationHandler.MarkRead)
	}

	// Webhook is authenticated by its signature, not a bearer token
	v1.POST("/webhooks/paystack", c.WebhookHandler.Handle)

	return router
}
