package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/bharatheeyaseva/backend/internal/models"
	"github.com/bharatheeyaseva/backend/internal/services"
	"github.com/bharatheeyaseva/backend/pkg/validation"
	"github.com/gin-gonic/gin"
)

// GalleryStore is the slice of the gallery service the handler needs.
type GalleryStore interface {
	Read() (models.GalleryDocument, error)
	AppendMedia(folderKey string, items []models.MediaItem, hero bool) (models.GalleryDocument, error)
	RenameFolder(oldKey, newKey string) (models.GalleryDocument, error)
	DeleteFolder(folderKey string) (models.GalleryDocument, error)
	DeleteItem(folderKey, url string, hero bool) (models.GalleryDocument, models.MediaItem, bool, error)
	AddYoutubeLink(folderKey, url, title string) (models.GalleryDocument, error)
}

// ObjectStore releases backing media objects after metadata deletes.
type ObjectStore interface {
	OwnsObject(publicID string) bool
	DeleteObject(ctx context.Context, publicID string) error
}

type GalleryHandler struct {
	store   GalleryStore
	objects ObjectStore
}

func NewGalleryHandler(store GalleryStore, objects ObjectStore) *GalleryHandler {
	return &GalleryHandler{store: store, objects: objects}
}

// documentResponse decomposes the full document into the resync
// envelope every read and mutation returns: non-hero folders under
// "gallery", the hero list under "slider".
func documentResponse(doc models.GalleryDocument) gin.H {
	return gin.H{
		"gallery": doc.Events(),
		"slider":  doc.Slider(),
	}
}

// GetGallery returns the current document shape, empty or not.
// GET /event-photos
func (h *GalleryHandler) GetGallery(c *gin.Context) {
	doc, err := h.store.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading gallery: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, documentResponse(doc))
}

type uploadedItem struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type mutateRequest struct {
	Uploaded    []uploadedItem `json:"uploaded"`
	EventName   string         `json:"eventName"`
	Hero        bool           `json:"hero"`
	RenameEvent bool           `json:"renameEvent"`
	OldName     string         `json:"oldName"`
	NewName     string         `json:"newName"`
	AddYoutube  bool           `json:"addYoutube"`
	URL         string         `json:"url"`
	Title       string         `json:"title"`
}

// Mutate handles the POST body variants, discriminated by which keys
// are present: append uploaded images (optionally to the hero slider),
// rename an event, or add a YouTube link.
// POST /event-photos
func (h *GalleryHandler) Mutate(c *gin.Context) {
	var req mutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch {
	case req.RenameEvent:
		h.rename(c, req)
	case req.AddYoutube:
		h.addYoutube(c, req)
	case len(req.Uploaded) > 0:
		h.appendUploaded(c, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "no recognized operation in request"})
	}
}

func (h *GalleryHandler) appendUploaded(c *gin.Context, req mutateRequest) {
	target := validation.NormalizeFolderKey(req.EventName)
	if target == "" && !req.Hero {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventName is required"})
		return
	}

	items := make([]models.MediaItem, 0, len(req.Uploaded))
	for _, u := range req.Uploaded {
		item, err := models.NewImageItem(u.URL, u.PublicID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		items = append(items, item)
	}

	doc, err := h.store.AppendMedia(target, items, req.Hero)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, documentResponse(doc))
}

func (h *GalleryHandler) rename(c *gin.Context, req mutateRequest) {
	oldKey := validation.NormalizeFolderKey(req.OldName)
	newKey := validation.NormalizeFolderKey(req.NewName)
	if oldKey == "" || newKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "oldName and newName are required"})
		return
	}

	doc, err := h.store.RenameFolder(oldKey, newKey)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, documentResponse(doc))
}

func (h *GalleryHandler) addYoutube(c *gin.Context, req mutateRequest) {
	folder := validation.NormalizeFolderKey(req.EventName)
	if folder == "" || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventName and url are required"})
		return
	}

	doc, err := h.store.AddYoutubeLink(folder, req.URL, req.Title)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, documentResponse(doc))
}

type deleteRequest struct {
	EventName   string `json:"eventName"`
	DeleteEvent bool   `json:"deleteEvent"`
	Hero        bool   `json:"hero"`
	URL         string `json:"url"`
}

// Delete removes a whole folder or a single item.
// DELETE /event-photos
func (h *GalleryHandler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	target := validation.NormalizeFolderKey(req.EventName)
	if target == "" && !req.Hero {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventName is required"})
		return
	}

	if req.DeleteEvent {
		doc, err := h.store.DeleteFolder(target)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, documentResponse(doc))
		return
	}

	doc, removed, ok, err := h.store.DeleteItem(target, req.URL, req.Hero)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !ok && req.URL == "" {
		// Nothing to fall back on: empty list and no target URL.
		c.JSON(http.StatusBadRequest, gin.H{"error": "no URL provided"})
		return
	}

	// Release server-hosted objects in the background; the external
	// image host keeps its copies.
	if ok && h.objects != nil && h.objects.OwnsObject(removed.PublicID) {
		go func(publicID string) {
			if err := h.objects.DeleteObject(context.Background(), publicID); err != nil {
				log.Printf("WARN: failed to delete media object %s: %v", publicID, err)
			}
		}(removed.PublicID)
	}

	c.JSON(http.StatusOK, documentResponse(doc))
}

// respondStoreError maps store and business-rule errors onto statuses.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrFolderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrFolderExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrHeroProtected):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidMedia), errors.Is(err, models.ErrInvalidYouTube):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStoreRead):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading gallery: " + err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving gallery: " + err.Error()})
	}
}
