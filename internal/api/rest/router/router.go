// Package router assembles the HTTP surface of the service.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/notescan/notescan-server/internal/api/rest/handler"
	"github.com/notescan/notescan-server/internal/api/rest/middleware"
	"github.com/notescan/notescan-server/internal/logger"
)

// Config collects the handlers and middleware the router wires together.
type Config struct {
	Health       *handler.Health
	Auth         *handler.Auth
	Note         *handler.Note
	Ingestion    *handler.Ingestion
	Authenticate *middleware.Authenticate

	AllowedOrigins []string
	Logger         *logger.Logger
}

// New builds the gin engine with all routes registered. The health and
// account endpoints are public; everything under /notes requires a valid
// bearer token.
func New(cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.NewLogging(cfg.Logger).Handle())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/health", cfg.Health.Handle)

	auth := r.Group("/auth")
	{
		auth.POST("/register", cfg.Auth.Register)
		auth.POST("/login", cfg.Auth.Login)
	}

	notes := r.Group("/notes")
	notes.Use(cfg.Authenticate.Handle())
	{
		notes.GET("", cfg.Note.List)
		notes.POST("", cfg.Note.Create)
		notes.GET("/:id", cfg.Note.Get)
		notes.PUT("/:id", cfg.Note.Update)
		notes.DELETE("/:id", cfg.Note.Delete)

		notes.POST("/upload", cfg.Ingestion.Upload)
		notes.POST("/scan", cfg.Ingestion.Scan)
		notes.GET("/:id/attachment", cfg.Ingestion.Attachment)
	}

	return r
}
