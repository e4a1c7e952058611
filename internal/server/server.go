package server

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ochoaluis/gymkeeper/internal/config"
	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/ochoaluis/gymkeeper/internal/handler"
	"github.com/ochoaluis/gymkeeper/internal/middleware"
	"github.com/ochoaluis/gymkeeper/internal/repository"
	"github.com/ochoaluis/gymkeeper/internal/service"
	"github.com/ochoaluis/gymkeeper/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	memberRepo := repository.NewMongoMemberRepository(deps.MongoDB)
	pkgRepo := repository.NewMongoPackageRepository(deps.MongoDB)
	membershipRepo := repository.NewMongoMembershipRepository(deps.MongoDB)
	categoryRepo := repository.NewMongoCategoryRepository(deps.MongoDB)
	productRepo := repository.NewMongoProductRepository(deps.MongoDB)
	saleRepo := repository.NewMongoSaleRepository(deps.MongoDB)
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)

	var fileRepo domain.FileRepository
	if deps.Config.S3.Endpoint != "" {
		s3Repo, err := repository.NewPhotoS3Repository(context.Background(), deps.Config.S3)
		if err != nil {
			log.Printf("Warning: failed to initialize photo storage: %v", err)
		} else {
			fileRepo = s3Repo
		}
	}

	// Initialize services
	authService := service.NewAuthService(
		deps.Config.Staff.AdminUser,
		deps.Config.Staff.AdminPassword,
		deps.Config.JWT.Secret,
		time.Duration(deps.Config.JWT.TTLHours)*time.Hour,
	)
	membershipService := service.NewMembershipService(memberRepo, pkgRepo, membershipRepo, cacheRepo)
	admissionService := service.NewAdmissionService(memberRepo, membershipRepo, cacheRepo)
	salesService := service.NewSalesService(productRepo, saleRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberRepo, admissionService, fileRepo, deps.Config.Server.MaxUploadSizeMB)
	packageHandler := handler.NewPackageHandler(pkgRepo)
	productHandler := handler.NewProductHandler(productRepo, categoryRepo)
	membershipHandler := handler.NewMembershipHandler(membershipService)
	salesHandler := handler.NewSalesHandler(salesService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Gymkeeper API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "gymkeeper",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")

	// Auth endpoints (public)
	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// Everything below is front-desk staff only
	desk := v1.Group("/", middleware.VerifyStaffToken(deps.Config.JWT.Secret))
	desk.Use(middleware.AuthorizeRole(domain.RoleAdmin, domain.RoleDesk))

	members := desk.Group("/members")
	members.Post("/", memberHandler.Create)
	members.Get("/", memberHandler.List)
	members.Get("/:id", memberHandler.Get)
	members.Put("/:id", memberHandler.Update)
	members.Delete("/:id", memberHandler.Delete)
	members.Get("/:id/admission", memberHandler.Admission)
	members.Post("/:id/photo", memberHandler.UploadPhoto)
	members.Get("/:id/memberships", membershipHandler.History)
	members.Get("/:id/memberships/active", membershipHandler.Active)

	packages := desk.Group("/packages")
	packages.Post("/", packageHandler.Create)
	packages.Get("/", packageHandler.List)
	packages.Get("/:id", packageHandler.Get)
	packages.Put("/:id", packageHandler.Update)
	packages.Delete("/:id", packageHandler.Delete)

	memberships := desk.Group("/memberships")
	memberships.Post("/enroll", membershipHandler.Enroll)
	memberships.Post("/renew", membershipHandler.Renew)
	memberships.Delete("/:id", membershipHandler.Delete)

	categories := desk.Group("/categories")
	categories.Post("/", productHandler.CreateCategory)
	categories.Get("/", productHandler.ListCategories)
	categories.Delete("/:id", productHandler.DeleteCategory)
	categories.Get("/:id/products", productHandler.ListByCategory)

	products := desk.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// A double-submitted checkout with the same X-Correlation-ID replays
	// the recorded sale instead of decrementing stock twice.
	sales := desk.Group("/sales")
	sales.Post("/", middleware.IdempotencyMiddleware(deps.RedisClient, 24*time.Hour), salesHandler.Checkout)
	sales.Get("/", salesHandler.List)
	sales.Get("/:id", salesHandler.Get)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
