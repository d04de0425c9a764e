package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bharatheeyaseva/backend/internal/config"
	"github.com/bharatheeyaseva/backend/internal/models"
	"gorm.io/gorm"
)

// Store-level failures, distinct from the business-rule errors defined
// on the document itself (models.ErrFolderNotFound and friends).
var (
	ErrStoreRead  = errors.New("failed to read gallery document")
	ErrStoreWrite = errors.New("failed to write gallery document")
)

// galleryStateKey is the row key of the single persisted document.
const galleryStateKey = "event_photos"

// casMaxAttempts bounds the compare-and-swap retry loop. Conflicts only
// occur when two admins mutate simultaneously, so contention is rare.
const casMaxAttempts = 5

// GalleryService persists the GalleryDocument as one versioned JSONB
// row. Every mutation is a load / apply / compare-and-swap cycle, which
// keeps each call atomic without table locks and closes the lost-update
// window between concurrent editors.
type GalleryService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewGalleryService(db *gorm.DB, cfg *config.Config) *GalleryService {
	return &GalleryService{db: db, cfg: cfg}
}

// Read returns the current document. A missing row is an empty
// document, never an error.
func (s *GalleryService) Read() (models.GalleryDocument, error) {
	doc, _, _, err := s.load()
	return doc, err
}

// AppendMedia appends items to folderKey (created if absent) or to the
// hero slider when hero is set.
func (s *GalleryService) AppendMedia(folderKey string, items []models.MediaItem, hero bool) (models.GalleryDocument, error) {
	return s.mutate(func(doc models.GalleryDocument) error {
		return doc.Append(folderKey, items, hero)
	})
}

// RenameFolder moves oldKey's list under newKey and removes oldKey.
func (s *GalleryService) RenameFolder(oldKey, newKey string) (models.GalleryDocument, error) {
	return s.mutate(func(doc models.GalleryDocument) error {
		return doc.Rename(oldKey, newKey)
	})
}

// DeleteFolder removes an entire event folder. The hero slider is
// protected from this path.
func (s *GalleryService) DeleteFolder(folderKey string) (models.GalleryDocument, error) {
	return s.mutate(func(doc models.GalleryDocument) error {
		return doc.DeleteFolder(folderKey)
	})
}

// DeleteItem removes at most one item matched by display URL, or the
// first item when url is empty. The removed item is returned so the
// caller can release backing storage; ok reports whether anything was
// removed.
func (s *GalleryService) DeleteItem(folderKey, url string, hero bool) (models.GalleryDocument, models.MediaItem, bool, error) {
	var (
		removed models.MediaItem
		ok      bool
	)
	doc, err := s.mutate(func(doc models.GalleryDocument) error {
		removed, ok = doc.DeleteItem(folderKey, url, hero)
		return nil
	})
	if err != nil {
		return nil, models.MediaItem{}, false, err
	}
	return doc, removed, ok, nil
}

// AddYoutubeLink appends a YouTube link to folderKey (created if absent).
func (s *GalleryService) AddYoutubeLink(folderKey, url, title string) (models.GalleryDocument, error) {
	return s.mutate(func(doc models.GalleryDocument) error {
		return doc.AddYouTube(folderKey, url, title)
	})
}

// isDuplicateKey distinguishes a lost create race (the unique key on
// the state row already exists, safe to retry) from a genuine write
// failure. Relies on the driver's error translation (db.go).
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// load fetches the persisted row. exists reports whether the row was
// found; version is only meaningful when it was.
func (s *GalleryService) load() (models.GalleryDocument, int64, bool, error) {
	var state models.GalleryState
	err := s.db.Where("key = ?", galleryStateKey).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.GalleryDocument{}, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	doc := models.GalleryDocument{}
	if state.Document != "" {
		if err := json.Unmarshal([]byte(state.Document), &doc); err != nil {
			return nil, 0, false, fmt.Errorf("%w: %v", ErrStoreRead, err)
		}
	}
	return doc, state.Version, true, nil
}

// mutate runs apply against a fresh copy of the document and persists
// the result with an optimistic version check, retrying on conflict.
func (s *GalleryService) mutate(apply func(models.GalleryDocument) error) (models.GalleryDocument, error) {
	for attempt := 0; attempt < casMaxAttempts; attempt++ {
		doc, version, exists, err := s.load()
		if err != nil {
			return nil, err
		}

		if err := apply(doc); err != nil {
			return nil, err
		}

		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
		}

		if !exists {
			state := models.GalleryState{Key: galleryStateKey, Document: string(raw), Version: 1}
			if err := s.db.Create(&state).Error; err != nil {
				if isDuplicateKey(err) {
					// Another writer created the row first; reload and retry.
					continue
				}
				return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
			}
			return doc, nil
		}

		res := s.db.Model(&models.GalleryState{}).
			Where("key = ? AND version = ?", galleryStateKey, version).
			Updates(map[string]interface{}{"document": string(raw), "version": version + 1})
		if res.Error != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreWrite, res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race against a concurrent mutation; retry.
			continue
		}
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrStoreWrite, models.ErrVersionConflict)
}
