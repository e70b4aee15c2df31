// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/analyzer"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/config"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyzeHandler struct {
	Config    *config.Config
	Analyzer  *analyzer.Analyzer
	Telemetry *telemetry.Registry
}

func NewAnalyzeHandler(cfg *config.Config, a *analyzer.Analyzer, reg *telemetry.Registry) *AnalyzeHandler {
	return &AnalyzeHandler{Config: cfg, Analyzer: a, Telemetry: reg}
}

type analyzeRequest struct {
	InputType string `json:"input_type"`
	UserInput string `json:"user_input"`
}

// channel maps the caller-declared input-type tag to the matching analyzer
// entry point and its display name.
func (h *AnalyzeHandler) channel(inputType string) (func(string) analyzer.Result, string) {
	switch inputType {
	case "url":
		return h.Analyzer.AnalyzeURL, "URL"
	case "number":
		return h.Analyzer.AnalyzeNumber, "Phone Number"
	case "message":
		return h.Analyzer.AnalyzeMessage, "SMS / Message"
	case "email":
		return h.Analyzer.AnalyzeEmail, "Email Content"
	}
	return nil, ""
}

// Analyze serves the form on GET and dispatches an analysis on POST. POST
// accepts classic form submissions and JSON (AJAX) bodies; JSON callers get
// the result serialized back as JSON.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		h.renderPage(c, c.DefaultQuery("type", "url"), nil, "")
		return
	}

	isJSON := strings.HasPrefix(c.ContentType(), "application/json")
	wantsJSON := isJSON || c.GetHeader("X-Requested-With") == "XMLHttpRequest"

	var req analyzeRequest
	if isJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
	} else {
		req.InputType = c.PostForm("input_type")
		req.UserInput = c.PostForm("user_input")
	}

	run, displayName := h.channel(req.InputType)
	if run == nil {
		if wantsJSON {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Unknown input type",
				"input_type": req.InputType,
			})
			return
		}
		h.renderPage(c, "url", nil, "Unknown input type. Choose URL, phone number, message, or email.")
		return
	}

	start := time.Now()
	result := run(req.UserInput)
	duration := time.Since(start)
	h.Telemetry.Record(req.InputType, string(result.Category), duration)

	traceID, _ := c.Get("trace_id")
	slog.Info("Analysis completed",
		"trace_id", traceID,
		"channel", req.InputType,
		"category", result.Category,
		"risk_score", result.RiskScore,
	)

	payload := gin.H{
		"analysis_id":  uuid.New().String(),
		"input_type":   displayName,
		"input":        req.UserInput,
		"risk_score":   result.RiskScore,
		"category":     result.Category,
		"verdict":      result.Verdict,
		"features":     result.Features,
		"explanations": result.Explanations,
		"mitigations":  result.Mitigations,
		"duration_ms":  float64(duration.Microseconds()) / 1000.0,
	}

	if wantsJSON {
		c.JSON(http.StatusOK, payload)
		return
	}
	h.renderPage(c, req.InputType, payload, "")
}

func (h *AnalyzeHandler) renderPage(c *gin.Context, defaultType string, result gin.H, flash string) {
	nonce, _ := c.Get("csp_nonce")
	data := gin.H{
		"AppVersion":      h.Config.AppVersion,
		"CspNonce":        nonce,
		"DefaultType":     defaultType,
		"MaintenanceNote": h.Config.MaintenanceNote,
		"Result":          result,
	}
	if flash != "" {
		data["FlashMessage"] = flash
	}
	c.HTML(http.StatusOK, "index.html", data)
}
