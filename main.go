package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/viper"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/handlers"
	"inventory/internal/middleware"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"
)

func main() {
	v := viper.New()
	v.AutomaticEnv()
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, cleanup, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer cleanup()

	log.Printf("Starting server on port %s", cfg.AppPort)

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
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// NewApp wires storage, notifications, auth and routes from cfg. The
// returned cleanup releases the database and broker connections.
func NewApp(cfg config.Config) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var productRepo repositories.ProductRepository
	switch cfg.Storage {
	case config.StorageMemory:
		productRepo = repositories.NewMemoryProductRepository()
	default:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := database.Close(db); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		})
		productRepo = repositories.NewGORMProductRepository(db)
	}

	// The service takes an interface; leave it nil unless a broker is set.
	var notifier services.ChangeNotifier
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		closers = append(closers, func() {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		})
		if err := mqClient.ConsumeProductEvents(rabbitmq.LogProductEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
		notifier = mqClient
	}

	productService := services.NewProductService(productRepo, notifier)
	if cfg.SeedSampleData {
		seedProducts(productService)
	}

	app := fiber.New(fiber.Config{
		AppName: "inventory",
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":        "healthy",
			"time":          time.Now().Format(time.RFC3339),
			"storage":       cfg.Storage,
			"notifications": notifier != nil,
		})
	})

	apiV1 := app.Group("/api/v1")

	guard := middleware.Open()
	if cfg.Auth.Enabled() {
		authService := services.NewAuthService(cfg.Auth.Username, cfg.Auth.PasswordHash, cfg.Auth.JWTSecret)
		handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
		guard = middleware.AuthRequired(authService)
	}
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1, guard)

	return app, cleanup, nil
}

// seedProducts inserts a few sample products.
func seedProducts(service *services.ProductService) {
	samples := []map[string]string{
		{"name": "Toto the wonderdog guidebook", "price": "4.99", "quantity": "1", "supplier_name": "Barns & Noble", "supplier_phone": "2125555555"},
		{"name": "Field notebook", "price": "12.50", "quantity": "20", "supplier_name": "Paper Co", "supplier_phone": "555-0199"},
		{"name": "Fountain pen", "price": "35", "quantity": "0", "supplier_name": "Inkwell Ltd", "supplier_phone": "555-0142"},
	}

	for _, s := range samples {
		name, price, quantity, supplierName, supplierPhone := s["name"], s["price"], s["quantity"], s["supplier_name"], s["supplier_phone"]
		product, err := service.CreateProduct(models.ProductInput{
			Name:          &name,
			Price:         &price,
			Quantity:      &quantity,
			SupplierName:  &supplierName,
			SupplierPhone: &supplierPhone,
		})
		if err != nil {
			log.Printf("Error seeding product %s: %v", name, err)
			continue
		}
		log.Printf("Seeded product: %s (ID: %d)", product.Name, product.ID)
	}
}
