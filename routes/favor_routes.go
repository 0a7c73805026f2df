package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/controllers"
)

func SetupFavorRoutes(protected *gin.RouterGroup, favorController *controllers.FavorController,
	ratingController *controllers.RatingController, reportController *controllers.ReportController) {
	favors := protected.Group("/favors")
	{
		favors.POST("", favorController.CreateFavor)
		favors.GET("", favorController.ListFavors)
		favors.GET("/mine", favorController.ListMyFavors)
		favors.GET("/helping", favorController.ListHelping)
		favors.GET("/:id", favorController.GetFavor)
		favors.DELETE("/:id", favorController.DeleteFavor)

		// Lifecycle
		favors.POST("/:id/offers", favorController.OfferHelp)
		favors.POST("/:id/accept", favorController.AcceptHelper)
		favors.POST("/:id/finalize", favorController.FinalizeFavor)
		favors.POST("/:id/confirm", favorController.ConfirmFavor)
		favors.POST("/:id/pin", favorController.TogglePin)

		// Ratings
		favors.GET("/:id/eligibility", favorController.RatingEligibility)
		favors.POST("/:id/ratings", ratingController.RateFavor)
		favors.GET("/:id/ratings", ratingController.ListFavorRatings)

		favors.POST("/:id/reports", reportController.ReportFavor)
	}
}
