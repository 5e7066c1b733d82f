package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/helmcode/symptomai/pkg/config"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// NewRouter wires middleware, templates and routes around the analyzer.
func NewRouter(a Analyzer, cfg *config.Config) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	if cfg.Origin == "" || cfg.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(tmpl)

	handler := NewAnalysisHandler(a, cfg.GeolocationTimeout)

	router.GET("/", handler.ShowForm)
	router.POST("/analyze", handler.SubmitForm)

	api := router.Group("/api/v1")
	{
		api.POST("/analyses", handler.CreateAnalysis)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	return router, nil
}
