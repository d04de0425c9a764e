package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/bharatheeyaseva/backend/internal/services"
	"github.com/bharatheeyaseva/backend/pkg/validation"
	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// GetUploadSignature issues a signed credential for a direct
// browser-to-host upload scoped to a destination folder.
// GET /admin/upload-signature?folder=events/Annual_Meeting_2025
func (h *MediaHandler) GetUploadSignature(c *gin.Context) {
	folder := c.Query("folder")
	if folder == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder is required"})
		return
	}

	cred, err := h.mediaService.SignUpload(folder)
	if err != nil {
		if errors.Is(err, services.ErrImageHostNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timestamp": cred.Timestamp,
		"signature": cred.Signature,
		"apiKey":    cred.APIKey,
		"cloudName": cred.CloudName,
	})
}

// ProxyUpload accepts a multipart image and stores it server-side in
// the media bucket, for deployments where direct host uploads are not
// available. The response mirrors the direct-upload result shape.
// POST /admin/media
// Multipart form: file (required), eventName (required), hero (optional)
func (h *MediaHandler) ProxyUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	folder := "events/" + validation.NormalizeFolderKey(c.PostForm("eventName"))
	if c.PostForm("hero") == "true" {
		folder = "slider"
	} else if c.PostForm("eventName") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventName is required"})
		return
	}

	url, publicID, err := h.mediaService.UploadImage(c.Request.Context(), folder, header.Filename, data)
	if err != nil {
		if errors.Is(err, services.ErrNotAnImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":       url,
		"public_id": publicID,
	})
}
