// @title         dwatson.pk storefront API
// @version       1.0
// @description   Storefront and admin backend: authentication, catalog, cart, orders, media, and site content.
// @BasePath      /api
// @schemes       http
// @host          localhost:3000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Authorization token. Accepted formats: "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	swagger "github.com/gofiber/swagger"

	_ "github.com/dwatsonpk/storefront/docs"

	"github.com/dwatsonpk/storefront/api/http"
	"github.com/dwatsonpk/storefront/api/http/handlers"
	"github.com/dwatsonpk/storefront/pkg/auth"
	"github.com/dwatsonpk/storefront/pkg/cart"
	"github.com/dwatsonpk/storefront/pkg/catalog"
	"github.com/dwatsonpk/storefront/pkg/cms"
	"github.com/dwatsonpk/storefront/pkg/config"
	"github.com/dwatsonpk/storefront/pkg/contact"
	"github.com/dwatsonpk/storefront/pkg/health"
	healthpg "github.com/dwatsonpk/storefront/pkg/health/checkers"
	"github.com/dwatsonpk/storefront/pkg/media"
	"github.com/dwatsonpk/storefront/pkg/order"
	"github.com/dwatsonpk/storefront/pkg/report"
	pgrepo "github.com/dwatsonpk/storefront/pkg/repository/postgres"
	"github.com/dwatsonpk/storefront/pkg/security/jwt"
	"github.com/dwatsonpk/storefront/pkg/storage/postgres"
	"github.com/dwatsonpk/storefront/pkg/storage/s3"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: media.MaxUploadBytes + 1<<20,
	})
	app.Use(logger.New())
	app.Use(cors.New())

	// Load configuration from env/.env
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	dev := cfg.Development()

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()

	// Initialize repositories (each ensures its own DB schema).
	userRepo, err := pgrepo.NewUserRepository(pool)
	if err != nil {
		log.Fatalf("init user repo: %v", err)
	}
	departmentRepo, err := pgrepo.NewDepartmentRepository(pool)
	if err != nil {
		log.Fatalf("init department repo: %v", err)
	}
	categoryRepo, err := pgrepo.NewCategoryRepository(pool)
	if err != nil {
		log.Fatalf("init category repo: %v", err)
	}
	productRepo, err := pgrepo.NewProductRepository(pool)
	if err != nil {
		log.Fatalf("init product repo: %v", err)
	}
	cartRepo, err := pgrepo.NewCartRepository(pool)
	if err != nil {
		log.Fatalf("init cart repo: %v", err)
	}
	orderRepo, err := pgrepo.NewOrderRepository(pool)
	if err != nil {
		log.Fatalf("init order repo: %v", err)
	}
	mediaRepo, err := pgrepo.NewMediaRepository(pool)
	if err != nil {
		log.Fatalf("init media repo: %v", err)
	}
	sectionRepo, err := pgrepo.NewSectionRepository(pool)
	if err != nil {
		log.Fatalf("init section repo: %v", err)
	}
	sliderRepo, err := pgrepo.NewSliderRepository(pool)
	if err != nil {
		log.Fatalf("init slider repo: %v", err)
	}
	bannerRepo, err := pgrepo.NewBannerRepository(pool)
	if err != nil {
		log.Fatalf("init banner repo: %v", err)
	}
	contactRepo, err := pgrepo.NewContactRepository(pool)
	if err != nil {
		log.Fatalf("init contact repo: %v", err)
	}
	reportRepo := pgrepo.NewReportRepository(pool)

	// Object storage for media uploads
	objects, err := s3.New(ctx, s3.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatalf("s3 client: %v", err)
	}

	// Health service: compose checkers
	readiness := health.NewService(healthpg.NewPostgresChecker(pool))

	// Token generator and use cases
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	authUC := auth.NewAuthService(userRepo, jwtGen, readiness)
	catalogUC := catalog.NewService(departmentRepo, categoryRepo, productRepo)
	cartUC := cart.NewService(cartRepo, productRepo)
	orderUC := order.NewService(orderRepo, cartRepo, productRepo)
	mediaUC := media.NewService(mediaRepo, objects)
	cmsUC := cms.NewService(sectionRepo, sliderRepo, bannerRepo)
	reportUC := report.NewService(reportRepo)
	contactUC := contact.NewService(contactRepo)

	// Bootstrap admin account from env, if configured.
	if cfg.AdminPassword != "" {
		if err := authUC.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("ensure admin: %v", err)
		}
	}

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	// Swagger UI, mounted before the frontend catch-all
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Register routes
	http.Register(app, http.Handlers{
		Auth:    handlers.NewAuthHandler(authUC, dev),
		Health:  handlers.NewHealthHandler(readiness),
		Catalog: handlers.NewCatalogHandler(catalogUC, dev),
		Cart:    handlers.NewCartHandler(cartUC, dev),
		Orders:  handlers.NewOrderHandler(orderUC, dev),
		Media:   handlers.NewMediaHandler(mediaUC, dev),
		CMS:     handlers.NewCMSHandler(cmsUC, dev),
		Reports: handlers.NewReportHandler(reportUC, dev),
		Contact: handlers.NewContactHandler(contactUC, dev),
		Pages:   handlers.NewPagesHandler(cfg.FrontendDir),
	}, authMW)

	// Start server
	log.Printf("HTTP server listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
