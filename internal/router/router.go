package router

import (
	"database/sql"

	"designhub_backend/internal/handlers"
	"designhub_backend/internal/repositories"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	consultationRepo := repositories.NewConsultationRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	availabilityRepo := repositories.NewAvailabilityRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	blogRepo := repositories.NewBlogRepository(db)

	// Initialize Services
	strictTransitions := utils.GetenvBool("CONSULTATION_STRICT_TRANSITIONS", false)

	notificationService := services.NewNotificationService(notificationRepo, db)
	authService := services.NewAuthService(userRepo, db)
	consultationService := services.NewConsultationService(consultationRepo, userRepo, notificationService, db, strictTransitions)
	designerService := services.NewDesignerService(userRepo, portfolioRepo, availabilityRepo, reviewRepo, db)
	reviewService := services.NewReviewService(reviewRepo, consultationRepo, userRepo, notificationService, db)
	availabilityService := services.NewAvailabilityService(availabilityRepo, db)
	portfolioService := services.NewPortfolioService(portfolioRepo, db)
	productService := services.NewProductService(productRepo, db)
	orderService := services.NewOrderService(orderRepo, productRepo, notificationService, db)
	blogService := services.NewBlogService(blogRepo, db)
	dashboardService := services.NewDashboardService(userRepo, consultationRepo, orderRepo, reviewRepo, productRepo, blogRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	consultationHandler := handlers.NewConsultationHandler(consultationService)
	designerHandler := handlers.NewDesignerHandler(designerService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	blogHandler := handlers.NewBlogHandler(blogService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	api := engine.Group("/api")

	SetupAuthRoutes(api, authHandler)
	SetupDesignerRoutes(api, designerHandler)
	SetupConsultationRoutes(api, consultationHandler)
	SetupReviewRoutes(api, reviewHandler)
	SetupAvailabilityRoutes(api, availabilityHandler)
	SetupPortfolioRoutes(api, portfolioHandler)
	SetupProductRoutes(api, productHandler)
	SetupOrderRoutes(api, orderHandler)
	SetupBlogRoutes(api, blogHandler)
	SetupNotificationRoutes(api, notificationHandler)
	SetupDashboardRoutes(api, dashboardHandler)
}
