package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"walkup/internal/cache"
	"walkup/internal/config"
	"walkup/internal/handlers"
	"walkup/internal/middleware"
	"walkup/internal/models"
	"walkup/internal/payment"
	"walkup/internal/repositories"
	"walkup/internal/services"
	"walkup/pkg/mailer"
	"walkup/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order events will not be published")
	}

	// --- Mailer (optional) ---
	var mailSender services.Mailer
	mailClient, err := mailer.New(mailer.Config{
		APIKey:        cfg.SendGridAPIKey,
		Sender:        cfg.EmailSender,
		ClientBaseURL: cfg.ClientBaseURL,
	})
	if err != nil {
		log.Printf("Mailer disabled: %v", err)
	} else {
		mailSender = mailClient
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	addressRepo := repositories.NewGORMAddressRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Payment providers ---
	providers := map[string]payment.Provider{
		models.PaymentMethodMock: payment.NewMockProvider(payment.MockConfig{
			ClientBaseURL: cfg.ClientBaseURL,
			SuccessRate:   cfg.MockPaymentSuccessRate,
			CreateDelay:   time.Second,
			CaptureDelay:  1500 * time.Millisecond,
		}),
		models.PaymentMethodPayPal: payment.NewPayPalProvider(payment.PayPalConfig{
			ClientID:      cfg.PayPalClientID,
			ClientSecret:  cfg.PayPalClientSecret,
			BaseURL:       cfg.PayPalBaseURL,
			ClientBaseURL: cfg.ClientBaseURL,
		}),
	}

	// --- Services ---
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	listCache := cache.New(5 * time.Minute)

	authService := services.NewAuthService(userRepo, mailSender, cfg.JWTSecret, cfg.JWTExpiry)
	productService := services.NewProductService(productRepo, listCache)
	cartService := services.NewCartService(cartRepo, productRepo)
	addressService := services.NewAddressService(addressRepo)
	orderService := services.NewOrderService(orderRepo, providers, publisher)
	analyticsService := services.NewAnalyticsService(orderRepo, userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTExpiry)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	addressHandler := handlers.NewAddressHandler(addressService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(orderService, analyticsService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientBaseURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	authMW := middleware.AuthRequired(authService)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authMW)

	shop := api.Group("/shop", authMW)
	productHandler.RegisterShopRoutes(shop)
	cartHandler.RegisterRoutes(shop)
	addressHandler.RegisterRoutes(shop)
	orderHandler.RegisterRoutes(shop)

	admin := api.Group("/admin", authMW, middleware.AdminOnly())
	productHandler.RegisterAdminRoutes(admin)
	adminHandler.RegisterRoutes(admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	// Sends order confirmation emails off the message bus so the checkout
	// response does not wait on SendGrid.
	if mqClient != nil && mailSender != nil {
		go func() {
			log.Println("Starting order confirmation consumer...")
			handler := func(msg amqp.Delivery) error {
				var event services.OrderEvent
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					log.Printf("Discarding malformed order event: %v", err)
					return nil
				}
				user, err := userRepo.GetByID(event.UserID)
				if err != nil {
					log.Printf("Cannot resolve user %s for order %s: %v", event.UserID, event.OrderID, err)
					return nil
				}
				return mailSender.SendOrderConfirmationEmail(user.Email, user.Username, event.OrderID, event.TotalAmount)
			}
			if err := mqClient.Consume("order-confirmation-emails", rabbitmq.RoutingOrderConfirmed, handler); err != nil {
				log.Printf("Failed to start order event consumer: %v", err)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	listCache.Stop()
	log.Println("Server gracefully stopped")
}
