package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scormforge/scormforge/internal/mediastore"
	"github.com/scormforge/scormforge/pkg/errors"
)

// MediaHandler serves media upload and retrieval for a project
type MediaHandler struct {
	store *mediastore.Store
}

// NewMediaHandler creates a media handler
func NewMediaHandler(store *mediastore.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// UploadMediaRequest is the request body for UploadMedia. Binary payloads
// arrive base64-encoded inside the JSON envelope.
type UploadMediaRequest struct {
	ID         string               `json:"id" binding:"required"`
	DataBase64 string               `json:"dataBase64" binding:"required"`
	Metadata   *mediastore.Metadata `json:"metadata" binding:"required"`
}

// UploadMedia handles POST /api/v1/projects/:name/media
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	projectID := c.Param("name")
	if !validateFilename(projectID) {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid project id"))
		return
	}

	var req UploadMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid request body: "+err.Error()))
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.DataBase64)
	if err != nil {
		c.Error(errors.Wrap(errors.ErrCodeValidation, "invalid base64 payload", err))
		return
	}

	if err := h.store.Put(projectID, req.ID, data, req.Metadata); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": req.ID, "size": len(data)})
}

// GetMedia handles GET /api/v1/projects/:name/media/:id. The response body is
// the raw binary with its stored MIME type.
func (h *MediaHandler) GetMedia(c *gin.Context) {
	projectID := c.Param("name")
	if !validateFilename(projectID) {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid project id"))
		return
	}

	media, err := h.store.Get(projectID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	contentType := media.Metadata.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, media.Data)
}

// DeleteMedia handles DELETE /api/v1/projects/:name/media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	projectID := c.Param("name")
	if !validateFilename(projectID) {
		c.Error(errors.New(errors.ErrCodeValidation, "invalid project id"))
		return
	}

	if err := h.store.Delete(projectID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
