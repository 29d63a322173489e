package router

import (
	"designhub_backend/internal/handlers"
	"designhub_backend/internal/middleware"
	"designhub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(api *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.Refresh)

		authRequired := authRoutes.Group("")
		authRequired.Use(middleware.AuthMiddleware())
		{
			authRequired.GET("/me", authHandler.GetProfile)
		}
	}
}

// SetupDesignerRoutes sets up the public designer directory plus the
// self-service profile route.
func SetupDesignerRoutes(api *gin.RouterGroup, designerHandler *handlers.DesignerHandler) {
	designerRoutes := api.Group("/designers")
	{
		designerRoutes.GET("", designerHandler.ListDesigners)
		designerRoutes.GET("/:id", designerHandler.GetDesignerProfile)
		// /designers/:id/availability, /reviews and /portfolio are registered
		// by their own Setup functions below.
	}

	profileRoutes := api.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware())
	{
		profileRoutes.PUT("", designerHandler.UpdateOwnProfile)
	}
}

// SetupConsultationRoutes sets up the consultation routes. Booking is a
// client action; status updates are open to any authenticated caller and the
// service enforces who may apply them.
func SetupConsultationRoutes(api *gin.RouterGroup, consultationHandler *handlers.ConsultationHandler) {
	consultationRoutes := api.Group("/consultations")
	consultationRoutes.Use(middleware.AuthMiddleware())
	{
		consultationRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleClient), consultationHandler.BookConsultation)
		consultationRoutes.GET("/user", consultationHandler.GetOwnConsultations)
		consultationRoutes.GET("/designer", middleware.RoleAuthMiddleware(models.RoleDesigner), consultationHandler.GetDesignerConsultations)
		consultationRoutes.GET("/admin/all", middleware.RoleAuthMiddleware(models.RoleAdmin), consultationHandler.GetAllConsultations)
		consultationRoutes.GET("/:id", consultationHandler.GetConsultationByID)
		consultationRoutes.PUT("/:id/status", consultationHandler.UpdateConsultationStatus)
	}
}

// SetupReviewRoutes sets up the review routes.
func SetupReviewRoutes(api *gin.RouterGroup, reviewHandler *handlers.ReviewHandler) {
	api.GET("/designers/:id/reviews", reviewHandler.GetDesignerReviews)

	reviewRoutes := api.Group("/reviews")
	{
		reviewRoutes.POST("", middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.RoleClient), reviewHandler.CreateReview)
	}
}

// SetupAvailabilityRoutes sets up the availability routes.
func SetupAvailabilityRoutes(api *gin.RouterGroup, availabilityHandler *handlers.AvailabilityHandler) {
	api.GET("/designers/:id/availability", availabilityHandler.GetDesignerSlots)

	availabilityRoutes := api.Group("/availability")
	{
		managed := availabilityRoutes.Group("")
		managed.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.RoleDesigner))
		{
			managed.POST("", availabilityHandler.CreateSlot)
			managed.GET("", availabilityHandler.GetOwnSlots)
			managed.PUT("/:id", availabilityHandler.UpdateSlot)
			managed.DELETE("/:id", availabilityHandler.DeleteSlot)
		}
	}
}

// SetupPortfolioRoutes sets up the portfolio routes.
func SetupPortfolioRoutes(api *gin.RouterGroup, portfolioHandler *handlers.PortfolioHandler) {
	api.GET("/designers/:id/portfolio", portfolioHandler.GetDesignerItems)

	portfolioRoutes := api.Group("/portfolio")
	{
		managed := portfolioRoutes.Group("")
		managed.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.RoleDesigner))
		{
			managed.POST("", portfolioHandler.CreateItem)
			managed.PUT("/:id", portfolioHandler.UpdateItem)
			managed.DELETE("/:id", portfolioHandler.DeleteItem)
		}
	}
}

// SetupProductRoutes sets up the product catalog routes. Reads are public,
// writes are admin only.
func SetupProductRoutes(api *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := api.Group("/products")
	{
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:id", productHandler.GetProductByID)

		adminRoutes := productRoutes.Group("")
		adminRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("", productHandler.CreateProduct)
			adminRoutes.PUT("/:id", productHandler.UpdateProduct)
			adminRoutes.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(api *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := api.Group("/orders")
	orderRoutes.Use(middleware.AuthMiddleware())
	{
		orderRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleClient), orderHandler.CreateOrder)
		orderRoutes.GET("/user", orderHandler.GetOwnOrders)
		orderRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), orderHandler.GetAllOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PUT("/:id/status", middleware.RoleAuthMiddleware(models.RoleAdmin), orderHandler.UpdateOrderStatus)
	}
}

// SetupBlogRoutes sets up the blog routes. Reads are public but recognize an
// admin token so unpublished drafts stay reachable for their authors.
func SetupBlogRoutes(api *gin.RouterGroup, blogHandler *handlers.BlogHandler) {
	blogRoutes := api.Group("/blog")
	{
		blogRoutes.GET("", middleware.OptionalAuthMiddleware(), blogHandler.GetPosts)
		blogRoutes.GET("/:id", middleware.OptionalAuthMiddleware(), blogHandler.GetPostByID)

		adminRoutes := blogRoutes.Group("")
		adminRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("", blogHandler.CreatePost)
			adminRoutes.PUT("/:id", blogHandler.UpdatePost)
			adminRoutes.DELETE("/:id", blogHandler.DeletePost)
		}
	}
}

// SetupNotificationRoutes sets up the notification routes.
func SetupNotificationRoutes(api *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	notificationRoutes := api.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware())
	{
		notificationRoutes.GET("", notificationHandler.GetNotifications)
		notificationRoutes.PATCH("/read-all", notificationHandler.MarkAllRead)
		notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
	}
}

// SetupDashboardRoutes sets up the admin dashboard routes.
func SetupDashboardRoutes(api *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := api.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		dashboardRoutes.GET("/summary", dashboardHandler.GetSummary)
	}
}
