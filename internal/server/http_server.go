package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch/internal/config"
)

// NewRouter builds the gin engine: CORS, health check, static media,
// and the /api route groups every registrar attaches to.
func NewRouter(cfg *config.Config, registrars ...Registrar) *gin.Engine {
	if cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	// uploaded media is served straight from local storage
	if strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		router.Static(cfg.Storage.BaseURL, cfg.Storage.LocalPath)
	}

	public := router.Group("/api")
	protected := router.Group("/api")
	protected.Use(JWTAuth(cfg))

	for _, r := range registrars {
		r.Register(public, protected)
	}

	return router
}

// Start boots the HTTP server on the configured address.
func Start(cfg *config.Config, registrars ...Registrar) error {
	router := NewRouter(cfg, registrars...)
	return router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port)
}
