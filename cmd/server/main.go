package main

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/analyzer"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/config"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/handlers"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/middleware"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/oracle"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/refdata"
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/telemetry"
	tmplFuncs "github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/templates"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ref := refdata.Load(cfg.DataDir)

	var spamOracle analyzer.SpamOracle
	if model, err := oracle.Load(cfg.ModelBundleDir); err != nil {
		slog.Warn("Spam model unavailable, message channel will use keyword fallback", "error", err)
	} else {
		spamOracle = model
		slog.Info("Spam model loaded", "bundle", cfg.ModelBundleDir)
	}

	threatAnalyzer := analyzer.New(ref, spamOracle)
	registry := telemetry.NewRegistry()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recovery(cfg.AppVersion))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(middleware.RequestContext())
	router.Use(middleware.SecurityHeaders())

	rateLimiter := middleware.NewInMemoryRateLimiter()
	slog.Info("Rate limiter initialized", "backend", "in-memory",
		"max_requests", middleware.RateLimitMaxRequests, "window_seconds", middleware.RateLimitWindow)

	templatesDir := findTemplatesDir()
	tmpl := template.Must(
		template.New("").Funcs(tmplFuncs.FuncMap()).ParseGlob(filepath.Join(templatesDir, "*.html")),
	)
	router.SetHTMLTemplate(tmpl)

	homeHandler := handlers.NewHomeHandler(cfg)
	analyzeHandler := handlers.NewAnalyzeHandler(cfg, threatAnalyzer, registry)
	healthHandler := handlers.NewHealthHandler(cfg, threatAnalyzer)
	statsHandler := handlers.NewStatsHandler(registry)

	router.GET("/", homeHandler.Index)
	router.GET("/analyze", analyzeHandler.Analyze)
	router.POST("/analyze", middleware.AnalyzeRateLimit(rateLimiter), analyzeHandler.Analyze)

	router.GET("/api/health", healthHandler.HealthCheck)
	router.GET("/api/stats", statsHandler.Stats)

	router.NoRoute(func(c *gin.Context) {
		nonce, _ := c.Get("csp_nonce")
		c.HTML(404, "index.html", gin.H{
			"AppVersion":  cfg.AppVersion,
			"CspNonce":    nonce,
			"DefaultType": "url",
		})
	})

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	slog.Info("Starting threat detection server", "address", addr, "version", cfg.AppVersion)

	if err := router.Run(addr); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func findTemplatesDir() string {
	candidates := []string{
		"templates",
		"../templates",
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	slog.Warn("Templates directory not found, using default")
	return "templates"
}
