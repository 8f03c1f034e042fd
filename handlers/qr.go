package handlers

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"campustrace/database"
	"campustrace/models"
)

// GetItemQR returns the scan URL for an item's QR token. Owner or admin
// only.
func (h *Handlers) GetItemQR(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load qr"})
		return
	}

	if item.UserID != c.GetString("user_id") && c.GetString("user_role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if item.QRToken == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "qr not available for this item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       item.ID,
		"title":    item.Title,
		"category": item.Category,
		"scan_url": fmt.Sprintf("%s/api/v1/qr/scan/%s", h.cfg.AppBaseURL, item.QRToken),
	})
}

// ScanQR resolves a scanned token, alerts the owner, and hands back the
// redirect URL for the scanner. Public: the finder holding the item is not
// logged in.
func (h *Handlers) ScanQR(c *gin.Context) {
	ctx := c.Request.Context()
	item, err := h.service.GetItemByQRToken(ctx, c.Param("token"))
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid QR code"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to resolve qr token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve QR code"})
		return
	}

	body := fmt.Sprintf("Your %s (%s) was scanned. Open CampusTrace to connect.", item.Category, item.Title)
	if err := h.service.Notify(ctx, item.UserID, "QR Scan Alert", body); err != nil {
		log.WithError(err).Warn("failed to send scan alert")
	} else {
		h.rec.RecordNotification()
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/login?qrItem=%s", h.cfg.AppBaseURL, item.ID))
}
