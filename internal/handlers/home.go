package handlers

import (
	"net/http"

	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/config"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	Config *config.Config
}

func NewHomeHandler(cfg *config.Config) *HomeHandler {
	return &HomeHandler{Config: cfg}
}

func (h *HomeHandler) Index(c *gin.Context) {
	nonce, _ := c.Get("csp_nonce")
	c.HTML(http.StatusOK, "index.html", gin.H{
		"AppVersion":      h.Config.AppVersion,
		"CspNonce":        nonce,
		"DefaultType":     c.DefaultQuery("type", "url"),
		"MaintenanceNote": h.Config.MaintenanceNote,
	})
}
