package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/controllers"
)

// SetupReportRoutes mounts the moderation queue. Admin only.
func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := protected.Group("/reports")
	{
		reports.GET("", reportController.ListPending)
		reports.POST("/:id/resolve", reportController.Resolve)
	}
}
