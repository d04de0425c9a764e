package models

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/bharatheeyaseva/backend/pkg/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gallery store errors, mapped to HTTP statuses at the handler boundary.
var (
	ErrFolderNotFound  = errors.New("event folder not found")
	ErrFolderExists    = errors.New("event folder already exists")
	ErrHeroProtected   = errors.New("the home slider cannot be modified through this operation")
	ErrInvalidMedia    = errors.New("media item has no resolvable URL")
	ErrInvalidYouTube  = errors.New("not a valid YouTube URL")
	ErrVersionConflict = errors.New("gallery document was modified concurrently")
)

// HeroKey is the canonical folder key for the homepage carousel.
// Legacy documents used the aliases below interchangeably; they are
// recognized on input but never written.
const HeroKey = "home_slider"

var heroAliases = map[string]bool{
	"home_slider": true,
	"home-slider": true,
	"homeSlider":  true,
}

// heroAliasOrder fixes the merge order of legacy alias lists so reads
// are deterministic when more than one alias key survives in a document.
var heroAliasOrder = []string{"home-slider", "homeSlider"}

// IsHeroKey reports whether key names the reserved home slider folder.
func IsHeroKey(key string) bool {
	return heroAliases[key]
}

// MediaKind discriminates the two media item variants.
type MediaKind string

const (
	MediaImage   MediaKind = "image"
	MediaYouTube MediaKind = "youtube"
)

// MediaItem is a tagged union over an image reference and a YouTube
// link. The JSON shape stays wire-compatible with the legacy documents:
// YouTube records carry `"youtube": true`, image records carry
// url/public_id plus optional original/optimized/thumb variants.
type MediaItem struct {
	Kind      MediaKind
	URL       string
	PublicID  string
	Original  string
	Optimized string
	Thumb     string
	Title     string
}

// NewImageItem builds a validated image media item.
func NewImageItem(url, publicID string) (MediaItem, error) {
	item := MediaItem{Kind: MediaImage, URL: url, PublicID: publicID}
	if item.DisplayURL() == "" {
		return MediaItem{}, ErrInvalidMedia
	}
	return item, nil
}

// NewYouTubeItem builds a validated YouTube media item.
func NewYouTubeItem(url, title string) (MediaItem, error) {
	if !validation.ValidateYouTubeURL(url) {
		return MediaItem{}, ErrInvalidYouTube
	}
	return MediaItem{Kind: MediaYouTube, URL: url, Title: title}, nil
}

// DisplayURL resolves the URL consumers should render, using the
// fallback order original -> optimized -> thumb -> url.
func (m MediaItem) DisplayURL() string {
	for _, u := range []string{m.Original, m.Optimized, m.Thumb, m.URL} {
		if u != "" {
			return u
		}
	}
	return ""
}

type mediaItemJSON struct {
	YouTube   bool   `json:"youtube,omitempty"`
	URL       string `json:"url,omitempty"`
	PublicID  string `json:"public_id,omitempty"`
	Original  string `json:"original,omitempty"`
	Optimized string `json:"optimized,omitempty"`
	Thumb     string `json:"thumb,omitempty"`
	Title     string `json:"title,omitempty"`
}

func (m MediaItem) MarshalJSON() ([]byte, error) {
	out := mediaItemJSON{
		URL:       m.URL,
		PublicID:  m.PublicID,
		Original:  m.Original,
		Optimized: m.Optimized,
		Thumb:     m.Thumb,
		Title:     m.Title,
	}
	out.YouTube = m.Kind == MediaYouTube
	return json.Marshal(out)
}

func (m *MediaItem) UnmarshalJSON(data []byte) error {
	// Legacy documents sometimes stored bare URL strings.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = MediaItem{Kind: MediaImage, URL: s}
		return nil
	}

	var raw mediaItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind := MediaImage
	if raw.YouTube {
		kind = MediaYouTube
	}
	*m = MediaItem{
		Kind:      kind,
		URL:       raw.URL,
		PublicID:  raw.PublicID,
		Original:  raw.Original,
		Optimized: raw.Optimized,
		Thumb:     raw.Thumb,
		Title:     raw.Title,
	}
	return nil
}

// GalleryDocument maps folder keys to ordered media lists. It is the
// system's sole persisted gallery state.
type GalleryDocument map[string][]MediaItem

// Clone deep-copies the document so a failed compare-and-swap can retry
// against fresh state without leaking partial mutations.
func (d GalleryDocument) Clone() GalleryDocument {
	out := make(GalleryDocument, len(d))
	for k, items := range d {
		cp := make([]MediaItem, len(items))
		copy(cp, items)
		out[k] = cp
	}
	return out
}

// EventKeys returns the non-hero folder keys in sorted order.
func (d GalleryDocument) EventKeys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		if !IsHeroKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Slider returns the hero list, merging any legacy alias keys after
// the canonical key. Never nil: consumers iterate the result directly,
// so an empty carousel must serialize as [] rather than null.
func (d GalleryDocument) Slider() []MediaItem {
	out := make([]MediaItem, 0, len(d[HeroKey]))
	out = append(out, d[HeroKey]...)
	for _, alias := range heroAliasOrder {
		out = append(out, d[alias]...)
	}
	return out
}

// Events returns only the non-hero folders.
func (d GalleryDocument) Events() map[string][]MediaItem {
	out := make(map[string][]MediaItem)
	for k, items := range d {
		if !IsHeroKey(k) {
			out[k] = items
		}
	}
	return out
}

// Append adds items to folderKey's list, creating the folder on first
// write. When hero is true the folder key is forced to the canonical
// hero key. Caller-supplied order is preserved.
func (d GalleryDocument) Append(folderKey string, items []MediaItem, hero bool) error {
	if hero {
		folderKey = HeroKey
	} else if IsHeroKey(folderKey) {
		folderKey = HeroKey
	}
	if folderKey == "" {
		return ErrFolderNotFound
	}
	for _, item := range items {
		if item.Kind == MediaYouTube {
			if !validation.ValidateYouTubeURL(item.URL) {
				return ErrInvalidYouTube
			}
		} else if item.DisplayURL() == "" {
			return ErrInvalidMedia
		}
	}
	d[folderKey] = append(d[folderKey], items...)
	return nil
}

// Rename moves oldKey's entire list under newKey and removes oldKey.
// Renaming to an existing key is rejected, never merged. The hero
// folder cannot be renamed away from its reserved key.
func (d GalleryDocument) Rename(oldKey, newKey string) error {
	if IsHeroKey(oldKey) || IsHeroKey(newKey) {
		return ErrHeroProtected
	}
	items, ok := d[oldKey]
	if !ok {
		return ErrFolderNotFound
	}
	if _, exists := d[newKey]; exists {
		return ErrFolderExists
	}
	d[newKey] = items
	delete(d, oldKey)
	return nil
}

// DeleteFolder removes a folder and all its items. The hero folder is
// protected from this path.
func (d GalleryDocument) DeleteFolder(folderKey string) error {
	if IsHeroKey(folderKey) {
		return ErrHeroProtected
	}
	if _, ok := d[folderKey]; !ok {
		return ErrFolderNotFound
	}
	delete(d, folderKey)
	return nil
}

// DeleteItem removes at most one item from the target list: the first
// entry whose display URL (or raw URL) equals url, or the first entry
// unconditionally when url is empty. A missing or empty list is a
// no-op. Returns the removed item so callers can release backing
// storage. A non-hero folder emptied by the removal is destroyed.
func (d GalleryDocument) DeleteItem(folderKey, url string, hero bool) (MediaItem, bool) {
	if hero || IsHeroKey(folderKey) {
		folderKey = HeroKey
	}
	items := d[folderKey]
	idx := -1
	if url == "" {
		if len(items) > 0 {
			idx = 0
		}
	} else {
		for i, item := range items {
			if item.DisplayURL() == url || item.URL == url {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return MediaItem{}, false
	}
	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if len(items) == 0 && folderKey != HeroKey {
		delete(d, folderKey)
	} else {
		d[folderKey] = items
	}
	return removed, true
}

// AddYouTube appends a validated YouTube link to folderKey's list,
// creating the folder on first write.
func (d GalleryDocument) AddYouTube(folderKey, url, title string) error {
	if folderKey == "" {
		return ErrFolderNotFound
	}
	if IsHeroKey(folderKey) {
		return ErrHeroProtected
	}
	item, err := NewYouTubeItem(url, title)
	if err != nil {
		return err
	}
	d[folderKey] = append(d[folderKey], item)
	return nil
}

// GalleryState is the persisted form of a GalleryDocument: a single
// versioned JSONB row. Version backs the optimistic compare-and-swap
// that makes each mutation atomic with respect to concurrent editors.
type GalleryState struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key      string    `gorm:"uniqueIndex;not null" json:"key"`
	Document string    `gorm:"type:jsonb;not null;default:'{}'" json:"document"`
	Version  int64     `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *GalleryState) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
