package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/controllers"
)

func SetupNotificationRoutes(protected *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.GET("/unread-count", notificationController.UnreadCount)
		notifications.POST("/read-all", notificationController.MarkAllRead)
		notifications.POST("/:id/read", notificationController.MarkRead)
	}
}
