package main

import (
	"context"
	"time"

	"github.com/devcamper/api/internal/config"
	"github.com/devcamper/api/internal/db"
	"github.com/devcamper/api/internal/geocoder"
	"github.com/devcamper/api/internal/handlers"
	"github.com/devcamper/api/internal/middleware"
	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/repo"
	"github.com/devcamper/api/internal/services"
	"github.com/devcamper/api/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg := config.Load()

	// Connect to MongoDB
	database, err := db.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logrus.WithError(err).Fatal("index creation failed")
	}
	cancel()

	// Photo object storage
	photos, err := storage.NewPhotoBucket(storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		logrus.WithError(err).Fatal("photo storage setup failed")
	}

	// Geocoding provider
	gc := geocoder.NewOpenCage(geocoder.Config{
		APIKey:  cfg.GeocoderAPIKey,
		Timeout: cfg.GeocoderTimeout,
	})

	// Repositories and services
	bootcampRepo := repo.NewBootcampRepo(database)
	courseRepo := repo.NewCourseRepo(database)
	reviewRepo := repo.NewReviewRepo(database)
	userRepo := repo.NewUserRepo(database)

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)
	bootcampSvc := services.NewBootcampService(bootcampRepo, courseRepo, reviewRepo, photos, gc, cfg.StrictGeocoding)
	courseSvc := services.NewCourseService(courseRepo, bootcampRepo)
	reviewSvc := services.NewReviewService(reviewRepo, bootcampRepo)

	authHandler := handlers.NewAuthHandler(authSvc)
	bootcampHandler := handlers.NewBootcampHandler(bootcampSvc)
	courseHandler := handlers.NewCourseHandler(courseSvc)
	reviewHandler := handlers.NewReviewHandler(reviewSvc)

	// Initialize Fiber
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	protect := middleware.Protect(cfg.JWTSecret)
	publishers := middleware.Authorize(models.RolePublisher, models.RoleAdmin)

	// Auth routes
	auth := app.Group("/api/v1/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Bootcamp routes
	bootcamps := app.Group("/api/v1/bootcamps")
	bootcamps.Get("/", bootcampHandler.List)
	bootcamps.Get("/:id", bootcampHandler.Get)
	bootcamps.Post("/", protect, publishers, bootcampHandler.Create)
	bootcamps.Put("/:id", protect, publishers, bootcampHandler.Update)
	bootcamps.Delete("/:id", protect, publishers, bootcampHandler.Delete)
	bootcamps.Put("/:id/photo", protect, publishers, bootcampHandler.UploadPhoto)

	// Nested course and review routes
	bootcamps.Get("/:bootcampId/courses", courseHandler.ListByBootcamp)
	bootcamps.Post("/:bootcampId/courses", protect, publishers, courseHandler.Create)
	bootcamps.Get("/:bootcampId/reviews", reviewHandler.ListByBootcamp)
	bootcamps.Post("/:bootcampId/reviews", protect, reviewHandler.Create)

	// Course routes
	courses := app.Group("/api/v1/courses")
	courses.Get("/:id", courseHandler.Get)
	courses.Put("/:id", protect, publishers, courseHandler.Update)
	courses.Delete("/:id", protect, publishers, courseHandler.Delete)

	// Review routes
	reviews := app.Group("/api/v1/reviews")
	reviews.Get("/:id", reviewHandler.Get)
	reviews.Put("/:id", protect, reviewHandler.Update)
	reviews.Delete("/:id", protect, reviewHandler.Delete)

	// Start server
	logrus.Fatal(app.Listen(":" + cfg.Port))
}
