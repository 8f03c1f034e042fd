package handlers

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"campustrace/database"
	"campustrace/models"
)

// CreateClaim files a claim-verification request on an item and alerts the
// item's reporter.
func (h *Handlers) CreateClaim(c *gin.Context) {
	var req models.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	item, err := h.service.GetItem(ctx, c.Param("id"))
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load item for claim")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create claim"})
		return
	}

	claim, err := h.service.CreateClaim(ctx, models.Claim{
		ItemID:      item.ID,
		RequesterID: c.GetString("user_id"),
		ResolverID:  item.UserID,
		Answers:     req.Answers,
	})
	if err != nil {
		log.WithError(err).Error("failed to create claim")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create claim"})
		return
	}

	if err := h.service.Notify(ctx, item.UserID, "New Claim Request",
		fmt.Sprintf("Someone requested claim for %s", item.Title)); err != nil {
		log.WithError(err).Warn("failed to notify item owner of claim")
	} else {
		h.rec.RecordNotification()
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim})
}

var claimActions = map[string]models.ClaimStatus{
	"APPROVE":  models.ClaimApproved,
	"REJECT":   models.ClaimRejected,
	"COMPLETE": models.ClaimCompleted,
}

// ResolveClaim lets the item's reporter (or an admin) approve, reject or
// complete a claim. Completion marks the item returned.
func (h *Handlers) ResolveClaim(c *gin.Context) {
	var req models.ResolveClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	claim, err := h.service.GetClaim(ctx, req.ClaimID)
	if err == database.ErrNotFound || (err == nil && claim.ItemID != c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load claim")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve claim"})
		return
	}

	if claim.ResolverID != c.GetString("user_id") && c.GetString("user_role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	status := claimActions[req.Action]
	if err := h.service.SetClaimStatus(ctx, claim.ID, status); err != nil {
		log.WithError(err).Error("failed to update claim status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve claim"})
		return
	}
	claim.Status = status

	item, err := h.service.GetItem(ctx, claim.ItemID)
	if err != nil {
		log.WithError(err).Error("failed to load claimed item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve claim"})
		return
	}

	if status == models.ClaimCompleted {
		if err := h.service.SetItemStatus(ctx, item.ID, models.StatusReturned); err != nil {
			log.WithError(err).Error("failed to mark item returned")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve claim"})
			return
		}
	}

	if err := h.service.Notify(ctx, claim.RequesterID, "Claim Status Updated",
		fmt.Sprintf("Claim for %s is now %s", item.Title, status)); err != nil {
		log.WithError(err).Warn("failed to notify claim requester")
	} else {
		h.rec.RecordNotification()
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim})
}
