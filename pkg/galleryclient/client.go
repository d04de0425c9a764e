package galleryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

// CredentialError means the API refused to sign an upload, usually
// because the image host is not configured server-side.
type CredentialError struct {
	StatusCode int
	Message    string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("upload credential refused (%d): %s", e.StatusCode, e.Message)
}

// UploadError means the image host rejected a direct upload.
type UploadError struct {
	Filename   string
	StatusCode int
	Message    string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s failed (%d): %s", e.Filename, e.StatusCode, e.Message)
}

// File is one file queued for upload.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Client talks to the gallery API as an authenticated admin. The zero
// value is not usable; construct with New.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// UploadEndpoint overrides where direct uploads go. The default is
	// derived from the credential's cloud name.
	UploadEndpoint string

	// OnStatus, when set, receives progress messages during multi-step
	// operations. Calls happen on the caller's goroutine.
	OnStatus func(Status)

	// Confirm, when set, gates destructive operations. Returning false
	// aborts the delete without calling the API.
	Confirm func(prompt string) bool
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

func (c *Client) status(t StatusType, format string, args ...interface{}) {
	if c.OnStatus != nil {
		c.OnStatus(Status{Type: t, Message: fmt.Sprintf(format, args...)})
	}
}

func (c *Client) confirm(prompt string) bool {
	if c.Confirm == nil {
		return true
	}
	return c.Confirm(prompt)
}

// Load fetches the current gallery document. Any failure, network or
// malformed payload, yields an empty document so the gallery renders
// with no content rather than crashing the page.
func (c *Client) Load(ctx context.Context) Document {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/event-photos", nil)
	if err != nil {
		return EmptyDocument()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return EmptyDocument()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return EmptyDocument()
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return EmptyDocument()
	}
	if doc.Gallery == nil {
		doc.Gallery = map[string][]Media{}
	}
	if doc.Slider == nil {
		doc.Slider = []Media{}
	}
	return doc
}

// RequestUploadCredential asks the API to sign a direct upload into the
// given destination folder.
func (c *Client) RequestUploadCredential(ctx context.Context, folder string) (Credential, error) {
	url := c.baseURL + "/admin/upload-signature?folder=" + folder
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Credential{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Credential{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Credential{}, &CredentialError{StatusCode: resp.StatusCode, Message: readAPIError(resp.Body)}
	}

	var cred Credential
	if err := json.NewDecoder(resp.Body).Decode(&cred); err != nil {
		return Credential{}, err
	}
	return cred, nil
}

// UploadFile sends one file straight to the image host using a signed
// credential and returns the hosted media entry.
func (c *Client) UploadFile(ctx context.Context, cred Credential, folder string, file File) (Media, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", file.Name)
	if err != nil {
		return Media{}, err
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return Media{}, err
	}
	w.WriteField("api_key", cred.APIKey)
	w.WriteField("timestamp", strconv.FormatInt(cred.Timestamp, 10))
	w.WriteField("signature", cred.Signature)
	w.WriteField("folder", folder)
	if err := w.Close(); err != nil {
		return Media{}, err
	}

	endpoint := c.UploadEndpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cred.CloudName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return Media{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Media{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Media{}, &UploadError{Filename: file.Name, StatusCode: resp.StatusCode, Message: readAPIError(resp.Body)}
	}

	var result struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Media{}, err
	}
	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	return Media{URL: url, PublicID: result.PublicID}, nil
}

// UploadEventPhotos uploads files into an event folder one at a time
// and registers the survivors in one gallery mutation. A non-nil single
// takes precedence: the batch is ignored entirely, mirroring a form
// with separate single-file and multi-file pickers. Files with a
// non-image content type are dropped up front and reported through the
// status channel. Returns the refreshed document.
func (c *Client) UploadEventPhotos(ctx context.Context, eventName string, single *File, files []File) (Document, error) {
	return c.uploadBatch(ctx, eventName, false, single, files)
}

// UploadHeroImages uploads files into the hero slider, with the same
// single-over-batch precedence as UploadEventPhotos.
func (c *Client) UploadHeroImages(ctx context.Context, single *File, files []File) (Document, error) {
	return c.uploadBatch(ctx, "", true, single, files)
}

func (c *Client) uploadBatch(ctx context.Context, eventName string, hero bool, single *File, files []File) (Document, error) {
	if single != nil {
		files = []File{*single}
	}
	accepted := make([]File, 0, len(files))
	for _, f := range files {
		if strings.HasPrefix(f.ContentType, "image/") {
			accepted = append(accepted, f)
		}
	}
	if rejected := len(files) - len(accepted); rejected > 0 {
		c.status(StatusError, "%d file(s) rejected: not images", rejected)
	}
	if len(accepted) == 0 {
		return Document{}, fmt.Errorf("no image files to upload")
	}

	folder := "slider"
	if !hero {
		folder = "events/" + strings.ReplaceAll(strings.TrimSpace(eventName), " ", "_")
	}

	cred, err := c.RequestUploadCredential(ctx, folder)
	if err != nil {
		c.status(StatusError, "Could not get upload permission: %v", err)
		return Document{}, err
	}

	uploaded := make([]Media, 0, len(accepted))
	for i, f := range accepted {
		c.status(StatusInfo, "Uploading %d/%d...", i+1, len(accepted))
		m, err := c.UploadFile(ctx, cred, folder, f)
		if err != nil {
			c.status(StatusError, "Upload of %s failed: %v", f.Name, err)
			return Document{}, err
		}
		uploaded = append(uploaded, m)
	}

	body := map[string]interface{}{
		"uploaded":  uploadedPayload(uploaded),
		"eventName": eventName,
		"hero":      hero,
	}
	doc, err := c.mutate(ctx, http.MethodPost, body)
	if err != nil {
		return Document{}, err
	}
	c.status(StatusSuccess, "Uploaded %d file(s)", len(uploaded))
	return doc, nil
}

func uploadedPayload(media []Media) []map[string]string {
	out := make([]map[string]string, 0, len(media))
	for _, m := range media {
		out = append(out, map[string]string{"url": m.URL, "public_id": m.PublicID})
	}
	return out
}

// RenameEvent renames an event folder. Renaming onto an existing folder
// is rejected by the API with a conflict.
func (c *Client) RenameEvent(ctx context.Context, oldName, newName string) (Document, error) {
	return c.mutate(ctx, http.MethodPost, map[string]interface{}{
		"renameEvent": true,
		"oldName":     oldName,
		"newName":     newName,
	})
}

// AddYouTubeLinks splits raw on newlines and commas and posts each link
// independently, so one bad URL does not sink the rest. The final
// status reports how many succeeded.
func (c *Client) AddYouTubeLinks(ctx context.Context, eventName, raw string) (Document, error) {
	links := splitLinks(raw)
	if len(links) == 0 {
		return Document{}, fmt.Errorf("no links provided")
	}

	var (
		doc     Document
		lastErr error
		added   int
	)
	for _, link := range links {
		d, err := c.mutate(ctx, http.MethodPost, map[string]interface{}{
			"addYoutube": true,
			"eventName":  eventName,
			"url":        link,
		})
		if err != nil {
			lastErr = err
			continue
		}
		doc = d
		added++
	}

	if added == len(links) {
		c.status(StatusSuccess, "Added %d link(s)", added)
	} else {
		c.status(StatusError, "Added %d/%d link(s)", added, len(links))
	}
	if added == 0 {
		return Document{}, lastErr
	}
	return doc, nil
}

func splitLinks(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	links := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			links = append(links, s)
		}
	}
	return links
}

// DeleteEvent removes an entire event folder after confirmation.
func (c *Client) DeleteEvent(ctx context.Context, eventName string) (Document, error) {
	if !c.confirm(fmt.Sprintf("Delete the entire event %q and all its media?", DisplayName(eventName))) {
		return Document{}, ErrCancelled
	}
	return c.mutate(ctx, http.MethodDelete, map[string]interface{}{
		"deleteEvent": true,
		"eventName":   eventName,
	})
}

// DeleteItem removes a single item matched by URL, from an event folder
// or the hero slider, after confirmation.
func (c *Client) DeleteItem(ctx context.Context, eventName, url string, hero bool) (Document, error) {
	if !c.confirm("Delete this item?") {
		return Document{}, ErrCancelled
	}
	return c.mutate(ctx, http.MethodDelete, map[string]interface{}{
		"eventName": eventName,
		"hero":      hero,
		"url":       url,
	})
}

// ErrCancelled is returned when the confirmation callback declines a
// destructive operation.
var ErrCancelled = fmt.Errorf("operation cancelled")

// mutate sends an authenticated gallery mutation and decodes the
// refreshed document from the response.
func (c *Client) mutate(ctx context.Context, method string, body map[string]interface{}) (Document, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return Document{}, err
	}

	endpoint := c.baseURL + "/admin/event-photos"
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(raw))
	if err != nil {
		return Document{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("gallery update failed (%d): %s", resp.StatusCode, readAPIError(resp.Body))
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func readAPIError(r io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(data))
}
