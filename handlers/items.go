package handlers

import (
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"campustrace/database"
	"campustrace/models"
)

const (
	// OPEN items older than this are archived lazily before listing.
	itemExpiry = 30 * 24 * time.Hour

	// Reposting the same item within this window is treated as a duplicate.
	duplicateWindow = 5 * time.Minute
)

// CreateItem validates and stores a new report, then runs the matching pass
// synchronously. The response succeeds or fails on the item write itself;
// matching output is only the best-effort count of qualifying candidates.
func (h *Handlers) CreateItem(c *gin.Context) {
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.boundary.Contains(req.Latitude, req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates outside campus boundary"})
		return
	}

	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	duplicate, err := h.service.HasRecentDuplicate(ctx, userID, req.Title, req.Category, req.Kind, duplicateWindow)
	if err != nil {
		log.WithError(err).Error("failed to check for duplicate post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create item"})
		return
	}
	if duplicate {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate post detected"})
		return
	}

	item := models.Item{
		UserID:       userID,
		Kind:         req.Kind,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		ImageHash:    req.ImageHash,
		DateOccurred: req.DateOccurred,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Reward:       req.Reward,
	}
	if req.WithQR {
		item.QRToken = database.NewQRToken()
	}

	item, err = h.service.CreateItem(ctx, item)
	if err != nil {
		log.WithError(err).Error("failed to create item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create item"})
		return
	}
	h.rec.RecordItemCreated()

	potentialMatches, err := h.matcher.Run(ctx, item)
	if err != nil {
		// The item write already succeeded; matching trouble is not the
		// caller's problem.
		log.WithError(err).WithField("item", item.ID).Error("matching pass failed")
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "potential_matches": potentialMatches})
}

// ListItems returns filtered items for browsing, after lazily archiving
// expired OPEN reports.
func (h *Handlers) ListItems(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.service.ArchiveStaleItems(ctx, time.Now().Add(-itemExpiry)); err != nil {
		log.WithError(err).Warn("failed to archive stale items")
	}

	filter := database.ItemFilter{
		Kind:            models.ItemKind(c.Query("kind")),
		Category:        c.Query("category"),
		IncludeArchived: c.Query("include_archived") == "true",
	}
	if day := c.Query("date"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.Day = parsed
	}

	items, err := h.service.ListItems(ctx, filter)
	if err != nil {
		log.WithError(err).Error("failed to list items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list items"})
		return
	}

	if block := c.Query("block"); block != "" && block != "ALL" {
		filtered := make([]models.Item, 0, len(items))
		for _, item := range items {
			if h.boundary.Block(item.Latitude, item.Longitude) == block {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetItem returns a single item by id.
func (h *Handlers) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}
