// Package router sets up the API routes for the application.
// This is used in server mode; the CLI drives the generator directly and does
// not need the API layer.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/scormforge/scormforge/consts"
	"github.com/scormforge/scormforge/internal/api/handler"
	"github.com/scormforge/scormforge/internal/api/middleware"
	"github.com/scormforge/scormforge/internal/config"
	"github.com/scormforge/scormforge/internal/mediastore"
	"github.com/scormforge/scormforge/internal/project"
	"github.com/scormforge/scormforge/internal/scorm"
)

// Setup configures all API routes
func Setup(r *gin.Engine, cfg *config.Config) {
	generator := scorm.NewGenerator(&cfg.Generator)
	projects := project.NewStore(cfg.Storage.ProjectsDir)
	media := mediastore.NewStore(cfg.Storage.MediaDir)
	SetupWithDeps(r, cfg, generator, projects, media)
}

// SetupWithDeps configures all API routes with explicit collaborators
func SetupWithDeps(r *gin.Engine, cfg *config.Config, generator *scorm.Generator, projects *project.Store, media *mediastore.Store) {
	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger(&middleware.LoggerConfig{
		AccessLog: cfg.Logging.AccessLog,
	}))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(cfg.Server.Debug))

	// Health check endpoint (public)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": consts.ServiceName,
			"version": consts.Version,
		})
	})

	v1 := r.Group("/api/v1")

	// Package build and validation
	packageHandler := handler.NewPackageHandler(generator, media)
	packages := v1.Group("/packages")
	{
		packages.POST("", packageHandler.CreatePackage)
		packages.POST("/validate", packageHandler.ValidatePackage)
	}

	// Project persistence
	projectHandler := handler.NewProjectHandler(projects)
	mediaHandler := handler.NewMediaHandler(media)
	projectRoutes := v1.Group("/projects")
	{
		projectRoutes.GET("", projectHandler.ListProjects)
		projectRoutes.GET("/:name", projectHandler.GetProject)
		projectRoutes.PUT("/:name", projectHandler.SaveProject)
		projectRoutes.DELETE("/:name", projectHandler.DeleteProject)

		// Media binaries live under the owning project
		projectRoutes.POST("/:name/media", mediaHandler.UploadMedia)
		projectRoutes.GET("/:name/media/:id", mediaHandler.GetMedia)
		projectRoutes.DELETE("/:name/media/:id", mediaHandler.DeleteMedia)
	}
}
