package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"campustrace/database"
)

// ListMatches returns every match involving one of the caller's items.
func (h *Handlers) ListMatches(c *gin.Context) {
	matches, err := h.service.ListMatchesForUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		log.WithError(err).Error("failed to list matches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list matches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// ListNotifications returns the caller's latest notifications.
func (h *Handlers) ListNotifications(c *gin.Context) {
	notifications, err := h.service.ListNotifications(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		log.WithError(err).Error("failed to list notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead flags one notification as read.
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.MarkNotificationRead(c.Request.Context(), c.GetString("user_id"), req.ID)
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to mark notification read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
