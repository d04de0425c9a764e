package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bharatheeyaseva/backend/internal/config"
	"github.com/bharatheeyaseva/backend/internal/services"
	"github.com/gin-gonic/gin"
)

func mediaRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := services.NewMediaService(cfg)
	if err != nil {
		t.Fatalf("media service: %v", err)
	}
	h := NewMediaHandler(svc)
	r := gin.New()
	r.GET("/admin/upload-signature", h.GetUploadSignature)
	return r
}

func TestGetUploadSignature(t *testing.T) {
	r := mediaRouter(t, &config.Config{
		ImageHostCloudName: "cloud",
		ImageHostAPIKey:    "key",
		ImageHostAPISecret: "secret",
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/upload-signature?folder=events/X", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Timestamp int64  `json:"timestamp"`
		Signature string `json:"signature"`
		APIKey    string `json:"apiKey"`
		CloudName string `json:"cloudName"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Timestamp == 0 || len(resp.Signature) != 40 {
		t.Errorf("credential fields: %+v", resp)
	}
	if resp.APIKey != "key" || resp.CloudName != "cloud" {
		t.Errorf("credential identity: %+v", resp)
	}
}

func TestGetUploadSignatureMissingFolder(t *testing.T) {
	r := mediaRouter(t, &config.Config{ImageHostAPISecret: "secret", ImageHostAPIKey: "k", ImageHostCloudName: "c"})

	req := httptest.NewRequest(http.MethodGet, "/admin/upload-signature", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestGetUploadSignatureUnconfigured(t *testing.T) {
	r := mediaRouter(t, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/admin/upload-signature?folder=events/X", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status %d, want 503", w.Code)
	}
}
