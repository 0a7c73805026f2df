package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/controllers"
	"github.com/campus-link/api-go/middleware"
	"github.com/campus-link/api-go/services"
)

// Deps is everything the HTTP layer needs. RateLimit may be nil.
type Deps struct {
	JWTSecret     string
	DefaultPolicy string
	Users         *services.UserService
	Favors        *services.FavorService
	Ratings       *services.RatingService
	Notifications *services.NotificationService
	Reports       *services.ReportService
	RateLimit     gin.HandlerFunc
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	authController := controllers.NewAuthController(deps.Users)
	userController := controllers.NewUserController(deps.Users)
	favorController := controllers.NewFavorController(deps.Favors, deps.DefaultPolicy)
	ratingController := controllers.NewRatingController(deps.Ratings, deps.DefaultPolicy)
	notificationController := controllers.NewNotificationController(deps.Notifications)
	reportController := controllers.NewReportController(deps.Reports)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret))
	if deps.RateLimit != nil {
		protected.Use(deps.RateLimit)
	}
	{
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupUserRoutes(protected, userController, ratingController)
		SetupFavorRoutes(protected, favorController, ratingController, reportController)
		SetupNotificationRoutes(protected, notificationController)
		SetupReportRoutes(protected, reportController)
	}
}
