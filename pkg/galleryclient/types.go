// Package galleryclient is a Go client for the gallery API. It covers
// the admin workflows (uploads, renames, deletes, YouTube links) and
// the read-side helpers a gallery front end needs.
package galleryclient

import (
	"encoding/json"
	"strings"
)

// Media is one gallery entry on the wire. Historical documents stored
// images as bare URL strings, so unmarshalling accepts both forms.
type Media struct {
	URL       string `json:"url"`
	Youtube   bool   `json:"youtube,omitempty"`
	PublicID  string `json:"public_id,omitempty"`
	Original  string `json:"original,omitempty"`
	Optimized string `json:"optimized,omitempty"`
	Thumb     string `json:"thumb,omitempty"`
	Title     string `json:"title,omitempty"`
}

func (m *Media) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Media{URL: s}
		return nil
	}

	type alias Media
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = Media(a)
	return nil
}

// DisplayURL picks the best renderable URL for an entry.
func (m Media) DisplayURL() string {
	for _, u := range []string{m.Original, m.Optimized, m.Thumb, m.URL} {
		if u != "" {
			return u
		}
	}
	return ""
}

// Valid reports whether the entry has anything to render at all.
func (m Media) Valid() bool {
	return m.DisplayURL() != ""
}

// Document is the response envelope of every gallery read and mutation:
// event folders under Gallery, the hero carousel under Slider.
type Document struct {
	Gallery map[string][]Media `json:"gallery"`
	Slider  []Media            `json:"slider"`
}

// EmptyDocument returns a document safe to render with no content.
func EmptyDocument() Document {
	return Document{Gallery: map[string][]Media{}, Slider: []Media{}}
}

// Credential is a signed direct-upload grant issued by the API.
type Credential struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
}

// StatusType classifies progress messages emitted during multi-step
// operations like batch uploads.
type StatusType string

const (
	StatusInfo    StatusType = "info"
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// Status is a single progress message. Clients typically render the
// latest one in a status slot.
type Status struct {
	Type    StatusType
	Message string
}

// DisplayName converts a folder key back to its human form, with
// underscores as spaces.
func DisplayName(folderKey string) string {
	return strings.ReplaceAll(folderKey, "_", " ")
}
