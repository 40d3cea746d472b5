package handlers

import (
	"net/http"
	"strconv"

	"roadcare/middleware"
	"roadcare/services/notification"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the durable notification inbox over HTTP.
type NotificationHandler struct {
	Inbox notification.Inbox
}

func NewNotificationHandler(inbox notification.Inbox) *NotificationHandler {
	return &NotificationHandler{Inbox: inbox}
}

// ListNotifications handles GET /api/notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	notifications, err := h.Inbox.List(c.Request.Context(), actor.UserID, limit)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	count, err := h.Inbox.UnreadCount(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// MarkRead handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var input struct {
		Read *bool `json:"read" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Inbox.MarkRead(c.Request.Context(), c.Param("id"), actor.UserID, *input.Read); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification updated"})
}
