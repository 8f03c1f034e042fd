// Package handlers wires the HTTP surface to the store and the matching
// engine.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campustrace/auth"
	"campustrace/campus"
	"campustrace/config"
	"campustrace/database"
	"campustrace/matching"
	"campustrace/metrics"
)

type Handlers struct {
	service  *database.Service
	matcher  *matching.Matcher
	signer   *auth.Signer
	boundary campus.Boundary
	cfg      *config.Config
	rec      *metrics.Collector
}

func NewHandlers(service *database.Service, matcher *matching.Matcher, signer *auth.Signer,
	boundary campus.Boundary, cfg *config.Config, rec *metrics.Collector) *Handlers {
	return &Handlers{
		service:  service,
		matcher:  matcher,
		signer:   signer,
		boundary: boundary,
		cfg:      cfg,
		rec:      rec,
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "campustrace"})
}
