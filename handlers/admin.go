package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// AdminStats serves aggregate counts for the admin dashboard.
func (h *Handlers) AdminStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("failed to compute stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminExport streams the item register as a CSV attachment.
func (h *Handlers) AdminExport(c *gin.Context) {
	rows, err := h.service.ExportItems(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("failed to export items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export items"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=campustrace-report.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "kind", "title", "category", "status",
		"latitude", "longitude", "userEmail", "createdAt"}); err != nil {
		log.WithError(err).Error("failed to write csv header")
		return
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			string(row.Kind),
			strings.ReplaceAll(row.Title, ",", " "),
			row.Category,
			string(row.Status),
			fmt.Sprintf("%g", row.Latitude),
			fmt.Sprintf("%g", row.Longitude),
			row.UserEmail,
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			log.WithError(err).Error("failed to write csv row")
			return
		}
	}
}
