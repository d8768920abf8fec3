package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scormforge/scormforge/internal/mediastore"
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/internal/scorm"
	"github.com/scormforge/scormforge/pkg/errors"
	"github.com/scormforge/scormforge/pkg/logger"
)

// maxValidateBodySize bounds the archive size accepted by the validate
// endpoint (256 MiB)
const maxValidateBodySize = 256 << 20

// PackageHandler serves package build and validation requests
type PackageHandler struct {
	generator *scorm.Generator
	media     *mediastore.Store
}

// NewPackageHandler creates a package handler
func NewPackageHandler(g *scorm.Generator, media *mediastore.Store) *PackageHandler {
	return &PackageHandler{generator: g, media: media}
}

// BuildPackageRequest is the request body for CreatePackage
type BuildPackageRequest struct {
	Course       *model.CourseRequest `json:"course" binding:"required"`
	ScormVersion string               `json:"scormVersion"`
	// ProjectID plus MediaIDs pull stored media binaries into the package
	ProjectID string   `json:"projectId,omitempty"`
	MediaIDs  []string `json:"mediaIds,omitempty"`
	// Artifacts are pre-rendered files that override internal generation for
	// the paths they cover
	Artifacts []model.GeneratedArtifact `json:"artifacts,omitempty"`
}

// CreatePackage handles POST /api/v1/packages. On success the response body
// is the finished ZIP archive.
func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req BuildPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid request body: "+err.Error()))
		return
	}

	version := req.ScormVersion
	if version == "" {
		version = string(scorm.V2004)
	}

	var media []scorm.MediaSource
	if req.ProjectID != "" && len(req.MediaIDs) > 0 {
		resolved, err := h.media.Resolve(req.ProjectID, req.MediaIDs)
		if err != nil {
			c.Error(err)
			return
		}
		media = resolved
	}

	result, err := h.generator.Build(c.Request.Context(), &scorm.BuildRequest{
		Course:    req.Course,
		Version:   scorm.Version(version),
		Artifacts: req.Artifacts,
		Media:     media,
	}, nil)
	if err != nil {
		c.Error(err)
		return
	}

	logger.Info("package built via API",
		zap.String("build_id", result.BuildID),
		zap.String("course", req.Course.Title),
		zap.Int("size_bytes", len(result.Archive)))

	c.Header("X-Package-Identifier", result.Identifier)
	c.Header("X-Build-ID", result.BuildID)
	c.Header("Content-Disposition", `attachment; filename="`+attachmentName(req.Course.Title)+`"`)
	c.Data(http.StatusOK, "application/zip", result.Archive)
}

// ValidatePackage handles POST /api/v1/packages/validate. The request body is
// a finished ZIP archive; the response is the full validation report.
func (h *PackageHandler) ValidatePackage(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxValidateBodySize))
	if err != nil {
		c.Error(errors.Wrap(errors.ErrCodeValidation, "failed to read request body", err))
		return
	}
	if len(body) == 0 {
		c.Error(errors.New(errors.ErrCodeValidation, "empty request body"))
		return
	}

	report := h.generator.Validate(body)
	c.JSON(http.StatusOK, gin.H{
		"valid":   !report.HasErrors(),
		"passes":  report.Passes,
		"errors":  report.Errors,
		"summary": report.Summary(),
	})
}
