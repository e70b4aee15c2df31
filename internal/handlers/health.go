package handlers

import (
	"net/http"

	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/analyzer"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/config"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Config   *config.Config
	Analyzer *analyzer.Analyzer
}

func NewHealthHandler(cfg *config.Config, a *analyzer.Analyzer) *HealthHandler {
	return &HealthHandler{Config: cfg, Analyzer: a}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"version":        h.Config.AppVersion,
		"oracle_loaded":  h.Analyzer.HasOracle(),
		"reference_sets": h.Analyzer.ReferenceSizes(),
	})
}
