package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const monitoringKeyHeader = "X-Monitoring-Key"

func (h *Handler) checkMonitoringToken(c *gin.Context) bool {
	expected := strings.TrimSpace(h.monitoringKey)
	if expected == "" || h.monitor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Monitoring API is disabled"})
		return false
	}

	provided := strings.TrimSpace(c.GetHeader(monitoringKeyHeader))
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid monitoring key"})
		return false
	}
	return true
}

func (h *Handler) MonitorSnapshot(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, h.monitor.Snapshot(c.Request.Context()))
}

func (h *Handler) MonitorReport(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.AllText(c.Request.Context())})
}
