package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scormforge/scormforge/internal/project"
	"github.com/scormforge/scormforge/pkg/errors"
)

// ProjectHandler serves project CRUD requests backed by the project store
type ProjectHandler struct {
	store *project.Store
}

// NewProjectHandler creates a project handler
func NewProjectHandler(store *project.Store) *ProjectHandler {
	return &ProjectHandler{store: store}
}

// ListProjects handles GET /api/v1/projects. Projects whose files cannot be
// parsed are skipped rather than failing the listing.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	paths, err := h.store.List()
	if err != nil {
		c.Error(err)
		return
	}

	projects := make([]project.Metadata, 0, len(paths))
	for _, path := range paths {
		p, err := h.store.Load(path)
		if err != nil {
			continue
		}
		projects = append(projects, p.Project)
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject handles GET /api/v1/projects/:name
func (h *ProjectHandler) GetProject(c *gin.Context) {
	name := c.Param("name")
	if !validateFilename(name) {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid project name"))
		return
	}

	p, err := h.store.Load(h.store.PathFor(name))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SaveProject handles PUT /api/v1/projects/:name. A missing project is
// created; an existing one is replaced.
func (h *ProjectHandler) SaveProject(c *gin.Context) {
	name := c.Param("name")
	if !validateFilename(name) {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid project name"))
		return
	}

	var p project.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid request body: "+err.Error()))
		return
	}
	if p.Project.ID == "" {
		fresh := project.NewProject(name)
		p.Project = fresh.Project
	}
	p.Project.Name = name

	if err := h.store.Save(&p, h.store.PathFor(name)); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject handles DELETE /api/v1/projects/:name
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	name := c.Param("name")
	if !validateFilename(name) {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid project name"))
		return
	}

	if err := h.store.Delete(h.store.PathFor(name)); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}
