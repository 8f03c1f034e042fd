package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"campustrace/database"
	"campustrace/models"
	"campustrace/utils"
)

// ListMessages returns a match's conversation. Only the two item owners may
// read it.
func (h *Handlers) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	match, err := h.service.GetMatch(ctx, c.Param("matchId"))
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load match")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load messages"})
		return
	}

	userID := c.GetString("user_id")
	if match.LostItem.UserID != userID && match.FoundItem.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	messages, err := h.service.ListMessages(ctx, match.ID)
	if err != nil {
		log.WithError(err).Error("failed to list messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "match": match})
}

// PostMessage stores a chat message after redacting contact details, and
// notifies the receiving party.
func (h *Handlers) PostMessage(c *gin.Context) {
	var req models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	match, err := h.service.GetMatch(ctx, c.Param("matchId"))
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load match")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		return
	}

	userID := c.GetString("user_id")
	var receiverID string
	switch userID {
	case match.LostItem.UserID:
		receiverID = match.FoundItem.UserID
	case match.FoundItem.UserID:
		receiverID = match.LostItem.UserID
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	message, err := h.service.CreateMessage(ctx, models.Message{
		MatchID:    match.ID,
		SenderID:   userID,
		ReceiverID: receiverID,
		Content:    utils.SanitizeSensitiveText(req.Content),
	})
	if err != nil {
		log.WithError(err).Error("failed to store message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		return
	}

	if err := h.service.Notify(ctx, receiverID, "New Chat Message",
		"You received a new message in CampusTrace."); err != nil {
		log.WithError(err).Warn("failed to notify message receiver")
	} else {
		h.rec.RecordNotification()
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
