package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/services"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

func (nc *NotificationController) ListNotifications(c *gin.Context) {
	list, err := nc.Notifications.ListForUser(c.Request.Context(), callerID(c), c.Query("unread") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list, "")
}

func (nc *NotificationController) UnreadCount(c *gin.Context) {
	count, err := nc.Notifications.UnreadCount(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"count": count}, "")
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	if err := nc.Notifications.MarkRead(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Notification marked as read")
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	updated, err := nc.Notifications.MarkAllRead(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"updated": updated}, "")
}
