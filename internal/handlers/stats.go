package handlers

import (
	"net/http"

	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Telemetry *telemetry.Registry
}

func NewStatsHandler(reg *telemetry.Registry) *StatsHandler {
	return &StatsHandler{Telemetry: reg}
}

func (h *StatsHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"channels": h.Telemetry.AllStats(),
	})
}
