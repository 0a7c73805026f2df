package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController, ratingController *controllers.RatingController) {
	users := protected.Group("/users")
	{
		users.GET("/:id", userController.GetUser)
		users.GET("/:id/ratings", ratingController.ListUserRatings)

		// Admin only
		users.PUT("/:id/role", userController.SetRole)
	}
}
